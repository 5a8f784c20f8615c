package request

import "github.com/shopspring/decimal"

// TransferRequest 热钱包转账，amount 单位为 BNB
type TransferRequest struct {
	To       string          `json:"to" binding:"required,eth_addr"`
	Amount   decimal.Decimal `json:"amount" binding:"gt=0"`
	GasPrice string          `json:"gas_price" binding:"gasprice"` // rapid/fast/standard 或 hex wei
}

type GasPriceQuery struct {
	Tier string `form:"tier" binding:"omitempty,oneof=rapid fast standard"`
}
