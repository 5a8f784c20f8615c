package cmd

import (
	"fmt"

	"bnb-wallet/pkg/bnb"

	"github.com/spf13/cobra"
)

var chainIDCmd = &cobra.Command{
	Use:   "chain-id [network]",
	Short: "打印网络对应的 EIP-155 chain id",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		network := cfg.Bsc.Network
		if len(args) == 1 {
			network = args[0]
		}
		fmt.Println(bnb.ChainID(network))
	},
}

func init() {
	rootCmd.AddCommand(chainIDCmd)
}
