package cmd

import (
	"encoding/json"
	"fmt"

	"bnb-wallet/pkg/bnb"
	"bnb-wallet/pkg/unit"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "发送 BNB (签名并广播)",
	Long: `从指定私钥地址向 --to 发送 --amount BNB。
--gas-price 可以是 rapid/fast/standard (查询 Etherscan)，也可以是 hex wei 值 (直接使用)。`,
	Run: func(cmd *cobra.Command, args []string) {
		to, _ := cmd.Flags().GetString("to")
		amountStr, _ := cmd.Flags().GetString("amount")
		gasPrice, _ := cmd.Flags().GetString("gas-price")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if gasPrice == "" {
			gasPrice = cfg.Gas.DefaultTier
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			exitf("金额格式错误: %v", err)
		}

		privateKey, from, err := resolveKey(cmd, cfg)
		if err != nil {
			exitf("加载私钥失败: %v", err)
		}

		ctx, cancel := rpcContext(cfg)
		defer cancel()

		chain, proxy, err := dialChain(ctx, cfg)
		if err != nil {
			exitf("连接节点失败: %v", err)
		}
		defer proxy.Close()

		// 1. 构造交易并展示给用户确认
		utx, err := chain.BuildTransfer(ctx, privateKey, to, amount, cfg.Etherscan.ApiKey, gasPrice)
		if err != nil {
			exitf("构造交易失败: %v", err)
		}
		gasGwei := "?"
		if gp, err := unit.HexToBig(utx.GasPrice); err == nil {
			if d, err := unit.FromWei(gp, "gwei"); err == nil {
				gasGwei = d.String()
			}
		}

		fmt.Println("\n================ 待发送交易 ================")
		fmt.Printf("Network:    %s (ID: %d)\n", cfg.Bsc.Network, utx.ChainID)
		fmt.Printf("From:       %s\n", from)
		fmt.Printf("To:         %s\n", utx.To)
		fmt.Printf("Amount:     %s BNB\n", amount.String())
		fmt.Printf("Nonce:      %s\n", utx.Nonce)
		fmt.Printf("Gas:        %s\n", utx.Gas)
		fmt.Printf("GasPrice:   %s (%s gwei)\n", utx.GasPrice, gasGwei)
		fmt.Println("============================================")

		if dryRun {
			signed, err := bnb.SignRecord(utx, privateKey)
			if err != nil {
				exitf("签名失败: %v", err)
			}
			out, _ := json.MarshalIndent(signed, "", "  ")
			color.Yellow("\ndry-run: 已签名但未广播")
			fmt.Println(string(out))
			return
		}

		// 2. 签名并广播已展示的这笔交易 (不重新查询 nonce / gas price)
		txHash, err := chain.Submit(ctx, utx, privateKey)
		if err != nil {
			exitf("转账失败: %v", err)
		}
		color.Green("\n✅ 交易已广播!")
		fmt.Printf("TxHash: %s\n", txHash)
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)

	transferCmd.Flags().String("to", "", "收款地址")
	transferCmd.Flags().String("amount", "", "转账金额 (BNB)")
	transferCmd.Flags().String("gas-price", "", "rapid/fast/standard 或 hex wei (默认 gas.default_tier)")
	transferCmd.Flags().Bool("dry-run", false, "只构造并签名交易，不广播")
	addKeyFlags(transferCmd)

	_ = transferCmd.MarkFlagRequired("to")
	_ = transferCmd.MarkFlagRequired("amount")
}
