package handler

import (
	"context"
	"math/big"

	"bnb-wallet/internal/handler/request"
	"bnb-wallet/internal/handler/response"
	"bnb-wallet/pkg/errno"
	"bnb-wallet/pkg/unit"
	"bnb-wallet/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransferAPI is implemented by *service.TransferService.
type TransferAPI interface {
	From() string
	Transfer(ctx context.Context, to string, amount decimal.Decimal, gasPrice string) (string, error)
	GasPrice(ctx context.Context, tier string) (string, *big.Int)
	Network() (string, int64)
	Balance(ctx context.Context, address string) (*big.Int, error)
	TxStatus(ctx context.Context, txHash string) (bool, error)
}

type TransferHandler struct {
	svc TransferAPI
}

func NewTransferHandler(svc TransferAPI) *TransferHandler {
	return &TransferHandler{svc: svc}
}

// GasPrice GET /api/v1/gas-price?tier=
func (h *TransferHandler) GasPrice(c *gin.Context) {
	var q request.GasPriceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	tier, wei := h.svc.GasPrice(c.Request.Context(), q.Tier)
	gwei, _ := unit.FromWei(wei, "gwei")
	response.Success(c, response.GasPrice{
		Tier: tier,
		Wei:  wei.String(),
		Gwei: gwei.String(),
	})
}

// Network GET /api/v1/network
func (h *TransferHandler) Network(c *gin.Context) {
	network, chainID := h.svc.Network()
	response.Success(c, response.Network{
		Network: network,
		ChainID: chainID,
		From:    h.svc.From(),
	})
}

// Balance GET /api/v1/balance/:address
func (h *TransferHandler) Balance(c *gin.Context) {
	address := c.Param("address")
	wei, err := h.svc.Balance(c.Request.Context(), address)
	if err != nil {
		response.Error(c, err)
		return
	}

	bnbAmount, _ := unit.FromWei(wei, "ether")
	response.Success(c, response.Balance{
		Address: address,
		Wei:     wei.String(),
		BNB:     bnbAmount.String(),
	})
}

// TxStatus GET /api/v1/tx/:hash/status
func (h *TransferHandler) TxStatus(c *gin.Context) {
	txHash := c.Param("hash")
	ok, err := h.svc.TxStatus(c.Request.Context(), txHash)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, response.TxStatus{
		TxHash:  txHash,
		Success: ok,
	})
}

// Transfer POST /api/v1/transfer
func (h *TransferHandler) Transfer(c *gin.Context) {
	// 1. Bind & Validate
	var req request.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	// 2. 调用 Service
	txHash, err := h.svc.Transfer(c.Request.Context(), req.To, req.Amount, req.GasPrice)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, response.Transfer{TxHash: txHash})
}
