package service

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"time"

	"bnb-wallet/pkg/bnb"
	"bnb-wallet/pkg/errno"
	"bnb-wallet/pkg/logger"
	"bnb-wallet/pkg/monitor"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Chain is the part of *bnb.Bnb the service drives.
type Chain interface {
	GetNetwork() string
	Transfer(ctx context.Context, privateKey, to string, amount decimal.Decimal, apiKey, gasPrice string) (string, error)
	BnbBalance(ctx context.Context, address string) (*big.Int, error)
	ReceiptStatus(ctx context.Context, txHash string) (bool, error)
}

type Options struct {
	PrivateKey  string // 热钱包私钥，空表示只读模式
	From        string
	ApiKey      string // Etherscan
	DefaultTier string
}

// TransferService 绑定热钱包 + Etherscan key 的转账服务
type TransferService struct {
	chain   Chain
	oracle  bnb.GasOracle
	opts    Options
	log     *zap.Logger
	nowFunc func() time.Time
}

func NewTransferService(chain Chain, oracle bnb.GasOracle, opts Options) *TransferService {
	if opts.DefaultTier == "" {
		opts.DefaultTier = bnb.DefaultGasTier
	}
	return &TransferService{
		chain:   chain,
		oracle:  oracle,
		opts:    opts,
		log:     logger.Named("transfer"),
		nowFunc: time.Now,
	}
}

// From returns the hot wallet address, or "" in read-only mode.
func (s *TransferService) From() string {
	return s.opts.From
}

// Transfer 从热钱包发送 BNB，gasPrice 可以是档位名、hex wei，或空 (使用默认档位)
func (s *TransferService) Transfer(ctx context.Context, to string, amount decimal.Decimal, gasPrice string) (string, error) {
	if s.opts.PrivateKey == "" {
		return "", errno.ErrWalletNotLoaded
	}
	if !common.IsHexAddress(to) {
		return "", errno.ErrInvalidAddress
	}
	if !amount.IsPositive() {
		return "", errno.ErrInvalidAmount
	}
	gasPrice = strings.TrimSpace(gasPrice)
	if gasPrice == "" {
		gasPrice = s.opts.DefaultTier
	}

	network := s.chain.GetNetwork()
	start := s.nowFunc()
	txHash, err := s.chain.Transfer(ctx, s.opts.PrivateKey, to, amount, s.opts.ApiKey, gasPrice)
	elapsed := s.nowFunc().Sub(start).Seconds()
	monitor.ObserveTransfer(network, err == nil, elapsed, amount.InexactFloat64())

	if err != nil {
		s.log.Error("transfer failed",
			zap.String("from", s.opts.From),
			zap.String("to", to),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return "", errno.ErrTransferFailed.WithMessage(err.Error())
	}

	s.log.Info("transfer broadcast",
		zap.String("network", network),
		zap.String("from", s.opts.From),
		zap.String("to", to),
		zap.String("amount", amount.String()),
		zap.String("tx_hash", txHash),
		zap.Float64("seconds", elapsed))
	return txHash, nil
}

// GasPrice returns the oracle price for tier; empty tier means the configured default.
func (s *TransferService) GasPrice(ctx context.Context, tier string) (string, *big.Int) {
	tier = strings.TrimSpace(tier)
	if tier == "" {
		tier = s.opts.DefaultTier
	}
	return tier, s.oracle.GasPrice(ctx, tier, s.opts.ApiKey)
}

func (s *TransferService) Network() (string, int64) {
	network := s.chain.GetNetwork()
	return network, bnb.ChainID(network)
}

func (s *TransferService) Balance(ctx context.Context, address string) (*big.Int, error) {
	if !common.IsHexAddress(address) {
		return nil, errno.ErrInvalidAddress
	}
	wei, err := s.chain.BnbBalance(ctx, address)
	if err != nil {
		return nil, errno.ErrRPC.WithMessage(err.Error())
	}
	return wei, nil
}

// TxStatus reports whether the mined transaction succeeded.
func (s *TransferService) TxStatus(ctx context.Context, txHash string) (bool, error) {
	if b, err := hexutil.Decode(txHash); err != nil || len(b) != common.HashLength {
		return false, errno.ErrInvalidTxHash
	}
	ok, err := s.chain.ReceiptStatus(ctx, txHash)
	if errors.Is(err, ethereum.NotFound) {
		return false, errno.ErrTxNotFound
	}
	if err != nil {
		return false, errno.ErrRPC.WithMessage(err.Error())
	}
	return ok, nil
}
