package server

import (
	"context"
	"math/big"
	"net/http"
	"testing"

	"bnb-wallet/internal/handler"
	"bnb-wallet/internal/service"
	"bnb-wallet/pkg/bnb"
	"bnb-wallet/pkg/errno"
	wtypes "bnb-wallet/pkg/wallet/types"

	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flowKey = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

// chainProxy 只实现转账路径会用到的节点调用
type chainProxy struct {
	sentRaw string
}

func (p *chainProxy) GetNetwork() string { return "mainnet" }
func (p *chainProxy) GetNonce(ctx context.Context, address string) (uint64, error) {
	return 7, nil
}
func (p *chainProxy) SendRawTransaction(ctx context.Context, rawTx string) (string, error) {
	p.sentRaw = rawTx
	return testHash, nil
}
func (p *chainProxy) GasPrice(ctx context.Context) (*big.Int, error) { return big.NewInt(1), nil }
func (p *chainProxy) BnbBalance(ctx context.Context, address string) (*big.Int, error) {
	return big.NewInt(0), nil
}
func (p *chainProxy) BlockNumber(ctx context.Context) (uint64, error) { return 1, nil }
func (p *chainProxy) GetTransactionByHash(ctx context.Context, txHash string) (*ethtypes.Transaction, bool, error) {
	return nil, false, nil
}
func (p *chainProxy) GetTransactionReceipt(ctx context.Context, txHash string) (*ethtypes.Receipt, error) {
	return nil, nil
}
func (p *chainProxy) ReceiptStatus(ctx context.Context, txHash string) (bool, error) {
	return true, nil
}

type countingOracle struct {
	calls int
	tier  string
}

func (o *countingOracle) GasPrice(ctx context.Context, tier, apiKey string) *big.Int {
	o.calls++
	o.tier = tier
	return big.NewInt(3_000_000_000)
}

type capturingSigner struct {
	got *wtypes.UnsignedTransaction
}

func (s *capturingSigner) Sign(tx *wtypes.UnsignedTransaction, privateKey string) (string, error) {
	cp := *tx
	s.got = &cp
	return "f86b07", nil
}

func newFlowRouter(t *testing.T) (*gin.Engine, *countingOracle, *capturingSigner) {
	t.Helper()
	oracle := &countingOracle{}
	signer := &capturingSigner{}
	chain := bnb.New(&chainProxy{}, oracle, signer)

	from, err := bnb.PrivateKeyToAddress(flowKey)
	require.NoError(t, err)
	svc := service.NewTransferService(chain, oracle, service.Options{
		PrivateKey:  flowKey,
		From:        from,
		ApiKey:      "k",
		DefaultTier: "standard",
	})

	gin.SetMode(gin.TestMode)
	return NewHTTPRouter(handler.NewTransferHandler(svc)), oracle, signer
}

func TestTransferFlow_HexGasPriceIsSignedAsGiven(t *testing.T) {
	r, oracle, signer := newFlowRouter(t)

	env := do(t, r, http.MethodPost, "/api/v1/transfer",
		`{"to":"`+testTo+`","amount":"1","gas_price":"0x10"}`)
	require.Equal(t, 0, env.Code, env.Msg)
	assert.Equal(t, 0, oracle.calls)
	require.NotNil(t, signer.got)
	assert.Equal(t, "0x10", signer.got.GasPrice)
}

func TestTransferFlow_PaddedHexGasPriceRejected(t *testing.T) {
	r, oracle, signer := newFlowRouter(t)

	env := do(t, r, http.MethodPost, "/api/v1/transfer",
		`{"to":"`+testTo+`","amount":"1","gas_price":" 0x10 "}`)
	assert.Equal(t, errno.ErrBind.Code, env.Code)
	assert.Equal(t, 0, oracle.calls, "a hex price must never fall through to the oracle")
	assert.Nil(t, signer.got, "nothing signed")
}

func TestTransferFlow_TierGoesThroughOracle(t *testing.T) {
	r, oracle, signer := newFlowRouter(t)

	env := do(t, r, http.MethodPost, "/api/v1/transfer",
		`{"to":"`+testTo+`","amount":"1","gas_price":"fast"}`)
	require.Equal(t, 0, env.Code, env.Msg)
	assert.Equal(t, 1, oracle.calls)
	assert.Equal(t, "fast", oracle.tier)
	assert.Equal(t, "0xb2d05e00", signer.got.GasPrice)
}
