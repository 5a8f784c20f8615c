package cmd

import (
	"context"
	"fmt"

	"bnb-wallet/pkg/unit"

	"github.com/spf13/cobra"
)

var gasPriceCmd = &cobra.Command{
	Use:   "gas-price",
	Short: "查询 Etherscan gas 价格 (失败时返回 50 mwei)",
	Run: func(cmd *cobra.Command, args []string) {
		tier, _ := cmd.Flags().GetString("tier")
		if tier == "" {
			tier = cfg.Gas.DefaultTier
		}

		wei := newOracle(cfg).GasPrice(context.Background(), tier, cfg.Etherscan.ApiKey)
		gwei, _ := unit.FromWei(wei, "gwei")

		fmt.Printf("Tier:  %s\n", tier)
		fmt.Printf("Wei:   %s (%s)\n", wei.String(), unit.ToHex(wei))
		fmt.Printf("Gwei:  %s\n", gwei.String())
	},
}

func init() {
	rootCmd.AddCommand(gasPriceCmd)
	gasPriceCmd.Flags().String("tier", "", "rapid, fast 或 standard")
}
