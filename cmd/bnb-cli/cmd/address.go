package cmd

import (
	"fmt"

	"bnb-wallet/pkg/hdwallet"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "打印私钥 / Keystore / 助记词对应的地址",
	Run: func(cmd *cobra.Command, args []string) {
		_, address, err := resolveKey(cmd, cfg)
		if err != nil {
			exitf("加载私钥失败: %v", err)
		}
		fmt.Println(address)
	},
}

var mnemonicCmd = &cobra.Command{
	Use:   "mnemonic",
	Short: "生成新的 BIP-39 助记词并打印默认地址",
	Run: func(cmd *cobra.Command, args []string) {
		bits, _ := cmd.Flags().GetInt("bits")
		path, _ := cmd.Flags().GetString("path")

		mnemonic, err := hdwallet.GenerateMnemonic(bits)
		if err != nil {
			exitf("生成助记词失败: %v", err)
		}
		w, err := hdwallet.FromMnemonic(mnemonic, "")
		if err != nil {
			exitf("恢复钱包失败: %v", err)
		}
		address, err := w.Address(path)
		if err != nil {
			exitf("派生地址失败: %v", err)
		}

		color.Yellow("⚠️  请离线备份助记词，任何人拿到它都能转走资产")
		fmt.Printf("Mnemonic:  %s\n", mnemonic)
		fmt.Printf("Path:      %s\n", path)
		fmt.Printf("Address:   %s\n", address)
	},
}

func init() {
	rootCmd.AddCommand(addressCmd)
	addKeyFlags(addressCmd)

	rootCmd.AddCommand(mnemonicCmd)
	mnemonicCmd.Flags().Int("bits", 128, "熵长度: 128 (12 词) 或 256 (24 词)")
	mnemonicCmd.Flags().String("path", hdwallet.DefaultPath, "BIP-44 派生路径")
}
