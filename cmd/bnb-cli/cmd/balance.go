package cmd

import (
	"fmt"

	"bnb-wallet/pkg/unit"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "查询地址 BNB 余额",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := rpcContext(cfg)
		defer cancel()

		chain, proxy, err := dialChain(ctx, cfg)
		if err != nil {
			exitf("连接节点失败: %v", err)
		}
		defer proxy.Close()

		wei, err := chain.BnbBalance(ctx, args[0])
		if err != nil {
			exitf("查询余额失败: %v", err)
		}
		bnbAmount, _ := unit.FromWei(wei, "ether")
		fmt.Printf("%s BNB (%s wei)\n", bnbAmount.String(), wei.String())
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
