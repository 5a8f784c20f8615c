package cmd

import (
	"fmt"

	"bnb-wallet/pkg/keystore"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var keystoreCmd = &cobra.Command{
	Use:   "keystore",
	Short: "Keystore 管理",
}

var keystoreNewCmd = &cobra.Command{
	Use:   "new",
	Short: "用密码加密私钥并保存为 Keystore 文件",
	Run: func(cmd *cobra.Command, args []string) {
		out, _ := cmd.Flags().GetString("out")
		light, _ := cmd.Flags().GetBool("light")

		privateKey, address, err := resolveKey(cmd, cfg)
		if err != nil {
			exitf("加载私钥失败: %v", err)
		}

		password, err := readSecret("设置 Keystore 密码: ")
		if err != nil {
			exitf("%v", err)
		}
		confirm, err := readSecret("再次输入密码: ")
		if err != nil {
			exitf("%v", err)
		}
		if password != confirm {
			exitf("两次密码不一致")
		}

		scryptN := keystore.StandardScryptN
		if light {
			scryptN = keystore.LightScryptN
		}
		encrypted, err := keystore.EncryptPrivateKey(privateKey, password, scryptN)
		if err != nil {
			exitf("加密失败: %v", err)
		}
		if err := encrypted.SaveToFile(out); err != nil {
			exitf("保存 Keystore 失败: %v", err)
		}

		color.Green("✅ Keystore 已保存: %s", out)
		fmt.Printf("Address: %s\n", address)
	},
}

func init() {
	rootCmd.AddCommand(keystoreCmd)
	keystoreCmd.AddCommand(keystoreNewCmd)

	keystoreNewCmd.Flags().String("out", "wallet.json", "输出文件")
	keystoreNewCmd.Flags().Bool("light", false, "使用较低的 scrypt 参数 (仅测试用)")
	keystoreNewCmd.Flags().String("private-key", "", "hex 私钥，不传则从终端读取")
	keystoreNewCmd.Flags().String("mnemonic", "", "BIP-39 助记词")
	keystoreNewCmd.Flags().String("path", "", "BIP-44 派生路径")
}
