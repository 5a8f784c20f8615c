package response

import (
	"net/http"

	"bnb-wallet/pkg/errno"

	"github.com/gin-gonic/gin"
)

// Response is the {code,msg,data} envelope of every API reply.
type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
	Data    T      `json:"data"`
}

// empty 错误时 data 总是 {}，不是 null
type empty struct{}

type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Service string `json:"service"`
}

// GasPrice 金额统一用十进制字符串，避免 JSON number 丢精度
type GasPrice struct {
	Tier string `json:"tier"`
	Wei  string `json:"wei"`
	Gwei string `json:"gwei"`
}

type Network struct {
	Network string `json:"network"`
	ChainID int64  `json:"chain_id"`
	From    string `json:"from"` // 热钱包地址，只读模式为空
}

type Balance struct {
	Address string `json:"address"`
	Wei     string `json:"wei"`
	BNB     string `json:"bnb"`
}

type TxStatus struct {
	TxHash  string `json:"tx_hash"`
	Success bool   `json:"success"`
}

type Transfer struct {
	TxHash string `json:"tx_hash"`
}

// Success writes data under code 0.
func Success[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, Response[T]{
		Code:    errno.OK.Code,
		Message: errno.OK.Message,
		Data:    data,
	})
}

// Error maps err through errno.Decode; unknown errors become InternalServerError.
func Error(c *gin.Context, err error) {
	code, msg := errno.Decode(err)
	c.JSON(http.StatusOK, Response[empty]{
		Code:    code,
		Message: msg,
	})
}
