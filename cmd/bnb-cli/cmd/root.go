package cmd

import (
	"os"

	"bnb-wallet/pkg/config"
	"bnb-wallet/pkg/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "bnb-cli",
	Short: "BNB Smart Chain 转账命令行工具",
	Long: `一个用 Go 语言编写的 BSC 钱包工具。
支持 BNB 转账、Etherscan gas 价格查询、余额查询以及 Keystore 管理。`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, cfg)

		level, _ := cmd.Flags().GetString("log-level")
		logger.Init(cfg.App.Env, level)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	SilenceUsage: true,
}

// Execute 将所有子命令添加到根命令并设置标志
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "配置文件路径 (默认 ./config.yaml 或 ./config/config.yaml)")
	pf.String("rpc-url", "", "BSC JSON-RPC 节点地址 (覆盖 bsc.rpc_url)")
	pf.String("network", "", "mainnet 或 testnet (覆盖 bsc.network)")
	pf.String("etherscan-key", "", "Etherscan API Key (覆盖 etherscan.api_key)")
	pf.String("log-level", "warn", "日志级别: debug, info, warn, error")
}

// 命令行参数优先于配置文件和环境变量
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("rpc-url") {
		c.Bsc.RpcUrl, _ = flags.GetString("rpc-url")
	}
	if flags.Changed("network") {
		c.Bsc.Network, _ = flags.GetString("network")
	}
	if flags.Changed("etherscan-key") {
		c.Etherscan.ApiKey, _ = flags.GetString("etherscan-key")
	}
}

func exitf(format string, args ...interface{}) {
	_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "❌ "+format+"\n", args...)
	os.Exit(1)
}
