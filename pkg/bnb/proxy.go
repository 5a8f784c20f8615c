package bnb

import (
	"context"
	"errors"
	"math/big"

	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidHash    = errors.New("invalid transaction hash")
)

// Proxy is the blockchain side of Bnb. Every operation Bnb forwards is declared here.
type Proxy interface {
	// GetNetwork returns the network name, "mainnet" or "testnet".
	GetNetwork() string

	// GetNonce returns the pending transaction count of address.
	GetNonce(ctx context.Context, address string) (uint64, error)

	// SendRawTransaction broadcasts a 0x-prefixed signed transaction and returns its hash.
	SendRawTransaction(ctx context.Context, rawTx string) (string, error)

	// GasPrice returns the node's suggested gas price in wei.
	GasPrice(ctx context.Context) (*big.Int, error)

	// BnbBalance returns the latest balance of address in wei.
	BnbBalance(ctx context.Context, address string) (*big.Int, error)

	BlockNumber(ctx context.Context) (uint64, error)

	GetTransactionByHash(ctx context.Context, txHash string) (tx *ethtypes.Transaction, isPending bool, err error)

	GetTransactionReceipt(ctx context.Context, txHash string) (*ethtypes.Receipt, error)

	// ReceiptStatus reports whether the mined transaction succeeded.
	ReceiptStatus(ctx context.Context, txHash string) (bool, error)
}
