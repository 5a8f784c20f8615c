// Package bnb builds, signs and submits BNB transfers on Binance Smart Chain.
//
// Bnb owns the transfer flow only. Chain access goes through Proxy, signing
// through Signer and gas pricing through GasOracle; Bnb also forwards every
// Proxy operation unchanged.
package bnb

import (
	"context"
	"math/big"
	"strconv"

	"bnb-wallet/pkg/logger"
	"bnb-wallet/pkg/unit"
	wtypes "bnb-wallet/pkg/wallet/types"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// TransferGas is the fixed gas limit of a plain transfer (30400).
	TransferGas = "0x76c0"

	DefaultGasTier = "standard"
)

// GasOracle resolves a tier name to a wei gas price. It never fails.
type GasOracle interface {
	GasPrice(ctx context.Context, tier string, apiKey string) *big.Int
}

// Bnb is the transfer orchestrator. It is stateless; every call re-fetches
// nonce, gas price and network.
type Bnb struct {
	Proxy

	oracle GasOracle
	signer Signer
}

func New(proxy Proxy, oracle GasOracle, signer Signer) *Bnb {
	if signer == nil {
		signer = NewEIP155Signer()
	}
	return &Bnb{
		Proxy:  proxy,
		oracle: oracle,
		signer: signer,
	}
}

// ResolveGasPrice returns gasPrice verbatim when it is already a hex quantity.
// Otherwise gasPrice is a tier name looked up through the oracle, returned as hex.
func (b *Bnb) ResolveGasPrice(ctx context.Context, gasPrice, apiKey string) string {
	if gasPrice == "" {
		gasPrice = DefaultGasTier
	}
	if unit.IsHex(gasPrice) {
		return gasPrice
	}
	return unit.ToHex(b.oracle.GasPrice(ctx, gasPrice, apiKey))
}

// BuildTransfer assembles the unsigned transfer of amount (in BNB) from privateKey to to.
func (b *Bnb) BuildTransfer(ctx context.Context, privateKey, to string, amount decimal.Decimal, apiKey, gasPrice string) (*wtypes.UnsignedTransaction, error) {
	// 1. 先从私钥推导地址；私钥格式错误时不发起任何网络请求
	from, err := PrivateKeyToAddress(privateKey)
	if err != nil {
		return nil, err
	}

	// 2. 链上 nonce
	nonce, err := b.Proxy.GetNonce(ctx, from)
	if err != nil {
		return nil, err
	}

	// 3. gas price: hex 原样使用，否则按档位查询 oracle
	price := b.ResolveGasPrice(ctx, gasPrice, apiKey)

	// 4. ether -> wei -> hex
	wei, err := unit.ToWei(amount, "ether")
	if err != nil {
		return nil, err
	}

	// 5. 构造交易
	return &wtypes.UnsignedTransaction{
		Nonce:    strconv.FormatUint(nonce, 10),
		From:     from,
		To:       to,
		Gas:      TransferGas,
		GasPrice: price,
		Value:    unit.ToHex(wei),
		ChainID:  ChainID(b.Proxy.GetNetwork()),
	}, nil
}

// Transfer sends amount BNB to to and returns the broadcast result as is.
// gasPrice is either a tier name (rapid, fast, standard; empty means standard)
// or a hex wei price. apiKey is the Etherscan key used by the gas oracle.
// Errors other than gas oracle failures are returned unmodified.
func (b *Bnb) Transfer(ctx context.Context, privateKey, to string, amount decimal.Decimal, apiKey, gasPrice string) (string, error) {
	utx, err := b.BuildTransfer(ctx, privateKey, to, amount, apiKey, gasPrice)
	if err != nil {
		return "", err
	}
	return b.Submit(ctx, utx, privateKey)
}

// Submit signs utx exactly as given and broadcasts it. Nothing is re-fetched,
// so the broadcast tx is the one the caller built or showed to the user.
func (b *Bnb) Submit(ctx context.Context, utx *wtypes.UnsignedTransaction, privateKey string) (string, error) {
	logger.Info("签名 BNB 转账",
		zap.String("from", utx.From),
		zap.String("to", utx.To),
		zap.String("nonce", utx.Nonce),
		zap.String("gas_price", utx.GasPrice),
		zap.String("value", utx.Value),
		zap.Int64("chain_id", utx.ChainID))

	// 6. 签名
	raw, err := b.signer.Sign(utx, privateKey)
	if err != nil {
		return "", err
	}

	// 7. 广播，结果原样返回
	return b.Proxy.SendRawTransaction(ctx, "0x"+raw)
}
