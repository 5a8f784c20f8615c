package bnb

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	wtypes "bnb-wallet/pkg/wallet/types"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"
	testTo  = "0xabcabcabcabcabcabcabcabcabcabcabcabcabca"
)

func testFrom(t *testing.T) string {
	t.Helper()
	key, err := crypto.HexToECDSA(testKey)
	require.NoError(t, err)
	return crypto.PubkeyToAddress(key.PublicKey).Hex()
}

// fakeProxy 记录调用，不访问网络
type fakeProxy struct {
	network  string
	nonce    uint64
	nonceErr error
	sendErr  error
	sendRet  string

	calls     []string
	nonceAddr string
	sentRaw   string
}

func (p *fakeProxy) GetNetwork() string {
	p.calls = append(p.calls, "GetNetwork")
	return p.network
}

func (p *fakeProxy) GetNonce(ctx context.Context, address string) (uint64, error) {
	p.calls = append(p.calls, "GetNonce")
	p.nonceAddr = address
	return p.nonce, p.nonceErr
}

func (p *fakeProxy) SendRawTransaction(ctx context.Context, rawTx string) (string, error) {
	p.calls = append(p.calls, "SendRawTransaction")
	p.sentRaw = rawTx
	return p.sendRet, p.sendErr
}

func (p *fakeProxy) GasPrice(ctx context.Context) (*big.Int, error) {
	p.calls = append(p.calls, "GasPrice")
	return big.NewInt(123), nil
}

func (p *fakeProxy) BnbBalance(ctx context.Context, address string) (*big.Int, error) {
	p.calls = append(p.calls, "BnbBalance")
	return big.NewInt(42), nil
}

func (p *fakeProxy) BlockNumber(ctx context.Context) (uint64, error) {
	p.calls = append(p.calls, "BlockNumber")
	return 777, nil
}

func (p *fakeProxy) GetTransactionByHash(ctx context.Context, txHash string) (*ethtypes.Transaction, bool, error) {
	p.calls = append(p.calls, "GetTransactionByHash")
	return nil, false, errors.New("not found")
}

func (p *fakeProxy) GetTransactionReceipt(ctx context.Context, txHash string) (*ethtypes.Receipt, error) {
	p.calls = append(p.calls, "GetTransactionReceipt")
	return &ethtypes.Receipt{Status: ethtypes.ReceiptStatusSuccessful}, nil
}

func (p *fakeProxy) ReceiptStatus(ctx context.Context, txHash string) (bool, error) {
	p.calls = append(p.calls, "ReceiptStatus")
	return true, nil
}

type fakeOracle struct {
	price *big.Int
	calls int
	tier  string
	key   string
}

func (o *fakeOracle) GasPrice(ctx context.Context, tier string, apiKey string) *big.Int {
	o.calls++
	o.tier = tier
	o.key = apiKey
	return o.price
}

type recordingSigner struct {
	got *wtypes.UnsignedTransaction
	key string
	ret string
	err error
}

func (s *recordingSigner) Sign(tx *wtypes.UnsignedTransaction, privateKey string) (string, error) {
	cp := *tx
	s.got = &cp
	s.key = privateKey
	return s.ret, s.err
}

func TestTransfer_EndToEnd(t *testing.T) {
	proxy := &fakeProxy{network: "mainnet", nonce: 7, sendRet: "0xresult"}
	// oracle: SafeGasPrice "3" gwei -> 3000 mwei -> 3e9 wei
	oracle := &fakeOracle{price: big.NewInt(3_000_000_000)}
	signer := &recordingSigner{ret: "f86b07"}
	b := New(proxy, oracle, signer)

	res, err := b.Transfer(context.Background(), testKey, testTo, decimal.RequireFromString("0.01"), "api-key", "standard")
	require.NoError(t, err)

	assert.Equal(t, "0xresult", res)
	assert.Equal(t, 1, oracle.calls)
	assert.Equal(t, "standard", oracle.tier)
	assert.Equal(t, "api-key", oracle.key)

	require.NotNil(t, signer.got)
	assert.Equal(t, wtypes.UnsignedTransaction{
		Nonce:    "7",
		From:     testFrom(t),
		To:       testTo,
		Gas:      "0x76c0",
		GasPrice: "0xb2d05e00",
		Value:    "0x2386f26fc10000",
		ChainID:  56,
	}, *signer.got)
	assert.Equal(t, testKey, signer.key)

	assert.Equal(t, testFrom(t), proxy.nonceAddr)
	assert.Equal(t, "0xf86b07", proxy.sentRaw)
	assert.Equal(t, []string{"GetNonce", "GetNetwork", "SendRawTransaction"}, proxy.calls)
}

func TestTransfer_HexGasPriceBypassesOracle(t *testing.T) {
	proxy := &fakeProxy{network: "testnet", nonce: 1}
	oracle := &fakeOracle{price: big.NewInt(1)}
	signer := &recordingSigner{ret: "00"}
	b := New(proxy, oracle, signer)

	_, err := b.Transfer(context.Background(), testKey, testTo, decimal.NewFromInt(1), "k", "0x12a05f200")
	require.NoError(t, err)

	assert.Equal(t, 0, oracle.calls)
	assert.Equal(t, "0x12a05f200", signer.got.GasPrice)
	assert.Equal(t, int64(97), signer.got.ChainID)
}

func TestSubmit_SignsGivenTxWithoutRefetch(t *testing.T) {
	proxy := &fakeProxy{network: "mainnet", nonce: 3, sendRet: "0xhash"}
	oracle := &fakeOracle{price: big.NewInt(3_000_000_000)}
	signer := &recordingSigner{ret: "f86b03"}
	b := New(proxy, oracle, signer)
	ctx := context.Background()

	utx, err := b.BuildTransfer(ctx, testKey, testTo, decimal.NewFromInt(1), "k", "fast")
	require.NoError(t, err)
	assert.Equal(t, "3", utx.Nonce)

	// 构造之后链上 nonce 变化
	proxy.nonce = 4
	proxy.calls = nil
	oracle.calls = 0

	res, err := b.Submit(ctx, utx, testKey)
	require.NoError(t, err)
	assert.Equal(t, "0xhash", res)
	assert.Equal(t, *utx, *signer.got)
	assert.Equal(t, "0xf86b03", proxy.sentRaw)
	assert.Equal(t, []string{"SendRawTransaction"}, proxy.calls)
	assert.Equal(t, 0, oracle.calls)
}

func TestTransfer_DefaultTier(t *testing.T) {
	oracle := &fakeOracle{price: big.NewInt(5)}
	b := New(&fakeProxy{network: "mainnet"}, oracle, &recordingSigner{})

	_, err := b.Transfer(context.Background(), testKey, testTo, decimal.NewFromInt(1), "k", "")
	require.NoError(t, err)
	assert.Equal(t, "standard", oracle.tier)
}

func TestTransfer_MalformedKeyFailsBeforeNetwork(t *testing.T) {
	proxy := &fakeProxy{network: "mainnet"}
	oracle := &fakeOracle{price: big.NewInt(1)}
	signer := &recordingSigner{}
	b := New(proxy, oracle, signer)

	for _, key := range []string{"", "0x1234", "zz" + strings.Repeat("0", 62)} {
		_, err := b.Transfer(context.Background(), key, testTo, decimal.NewFromInt(1), "k", "fast")
		assert.ErrorIs(t, err, ErrInvalidPrivateKey)
	}
	assert.Empty(t, proxy.calls)
	assert.Equal(t, 0, oracle.calls)
	assert.Nil(t, signer.got)
}

func TestTransfer_ErrorsPropagateUnmodified(t *testing.T) {
	nonceErr := errors.New("rpc: nonce unavailable")
	b := New(&fakeProxy{nonceErr: nonceErr}, &fakeOracle{price: big.NewInt(1)}, &recordingSigner{})
	_, err := b.Transfer(context.Background(), testKey, testTo, decimal.NewFromInt(1), "k", "fast")
	assert.Same(t, nonceErr, err)

	signErr := errors.New("signer exploded")
	proxy := &fakeProxy{network: "mainnet"}
	b = New(proxy, &fakeOracle{price: big.NewInt(1)}, &recordingSigner{err: signErr})
	_, err = b.Transfer(context.Background(), testKey, testTo, decimal.NewFromInt(1), "k", "fast")
	assert.Same(t, signErr, err)
	assert.NotContains(t, proxy.calls, "SendRawTransaction")

	sendErr := errors.New("already known")
	b = New(&fakeProxy{network: "mainnet", sendErr: sendErr}, &fakeOracle{price: big.NewInt(1)}, &recordingSigner{})
	_, err = b.Transfer(context.Background(), testKey, testTo, decimal.NewFromInt(1), "k", "fast")
	assert.Same(t, sendErr, err)
}

func TestTransfer_RealSignature(t *testing.T) {
	proxy := &fakeProxy{network: "mainnet", nonce: 3, sendRet: "0xhash"}
	b := New(proxy, &fakeOracle{price: big.NewInt(3_000_000_000)}, nil)

	_, err := b.Transfer(context.Background(), "0x"+testKey, testTo, decimal.RequireFromString("0.01"), "k", "standard")
	require.NoError(t, err)

	raw, err := hexutil.Decode(proxy.sentRaw)
	require.NoError(t, err)
	tx := new(ethtypes.Transaction)
	require.NoError(t, tx.UnmarshalBinary(raw))

	assert.Equal(t, uint64(3), tx.Nonce())
	assert.Equal(t, uint64(30400), tx.Gas())
	assert.Equal(t, "3000000000", tx.GasPrice().String())
	assert.Equal(t, "10000000000000000", tx.Value().String())
	assert.Equal(t, common.HexToAddress(testTo), *tx.To())
	assert.Equal(t, int64(56), tx.ChainId().Int64())

	sender, err := ethtypes.Sender(ethtypes.NewEIP155Signer(big.NewInt(56)), tx)
	require.NoError(t, err)
	assert.Equal(t, testFrom(t), sender.Hex())
}

func TestBnb_ForwardsProxyOperations(t *testing.T) {
	proxy := &fakeProxy{network: "testnet"}
	b := New(proxy, nil, nil)
	ctx := context.Background()

	assert.Equal(t, "testnet", b.GetNetwork())

	n, err := b.BlockNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(777), n)

	bal, err := b.BnbBalance(ctx, testTo)
	require.NoError(t, err)
	assert.Equal(t, int64(42), bal.Int64())

	price, err := b.GasPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(123), price.Int64())

	ok, err := b.ReceiptStatus(ctx, "0x01")
	require.NoError(t, err)
	assert.True(t, ok)

	_, _, err = b.GetTransactionByHash(ctx, "0x01")
	assert.EqualError(t, err, "not found")

	assert.Equal(t, []string{"GetNetwork", "BlockNumber", "BnbBalance", "GasPrice", "ReceiptStatus", "GetTransactionByHash"}, proxy.calls)
}
