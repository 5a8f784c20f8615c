package bnb

import (
	"context"
	"fmt"
	"math/big"

	"bnb-wallet/pkg/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

// NodeProxy implements Proxy against a BSC JSON-RPC node.
type NodeProxy struct {
	rpcClient *rpc.Client
	client    *ethclient.Client
	network   string
}

// DialNode connects to rpcURL. network is reported by GetNetwork and picks the chain id.
func DialNode(ctx context.Context, rpcURL, network string) (*NodeProxy, error) {
	rc, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial bsc rpc: %w", err)
	}
	logger.Info("BSC RPC 已连接", zap.String("network", network))
	return NewNodeProxy(rc, network), nil
}

// NewNodeProxy wraps an existing rpc client.
func NewNodeProxy(rc *rpc.Client, network string) *NodeProxy {
	return &NodeProxy{
		rpcClient: rc,
		client:    ethclient.NewClient(rc),
		network:   network,
	}
}

func (p *NodeProxy) Close() {
	p.rpcClient.Close()
}

func (p *NodeProxy) GetNetwork() string {
	return p.network
}

func (p *NodeProxy) GetNonce(ctx context.Context, address string) (uint64, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return 0, err
	}
	return p.client.PendingNonceAt(ctx, addr)
}

func (p *NodeProxy) SendRawTransaction(ctx context.Context, rawTx string) (string, error) {
	var hash string
	if err := p.rpcClient.CallContext(ctx, &hash, "eth_sendRawTransaction", rawTx); err != nil {
		return "", err
	}
	return hash, nil
}

func (p *NodeProxy) GasPrice(ctx context.Context) (*big.Int, error) {
	return p.client.SuggestGasPrice(ctx)
}

func (p *NodeProxy) BnbBalance(ctx context.Context, address string) (*big.Int, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return nil, err
	}
	return p.client.BalanceAt(ctx, addr, nil)
}

func (p *NodeProxy) BlockNumber(ctx context.Context) (uint64, error) {
	return p.client.BlockNumber(ctx)
}

func (p *NodeProxy) GetTransactionByHash(ctx context.Context, txHash string) (*ethtypes.Transaction, bool, error) {
	hash, err := parseHash(txHash)
	if err != nil {
		return nil, false, err
	}
	return p.client.TransactionByHash(ctx, hash)
}

func (p *NodeProxy) GetTransactionReceipt(ctx context.Context, txHash string) (*ethtypes.Receipt, error) {
	hash, err := parseHash(txHash)
	if err != nil {
		return nil, err
	}
	return p.client.TransactionReceipt(ctx, hash)
}

func (p *NodeProxy) ReceiptStatus(ctx context.Context, txHash string) (bool, error) {
	receipt, err := p.GetTransactionReceipt(ctx, txHash)
	if err != nil {
		return false, err
	}
	return receipt.Status == ethtypes.ReceiptStatusSuccessful, nil
}

func parseAddress(address string) (common.Address, error) {
	if !common.IsHexAddress(address) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return common.HexToAddress(address), nil
}

func parseHash(txHash string) (common.Hash, error) {
	b, err := hexutil.Decode(txHash)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("%w: %q", ErrInvalidHash, txHash)
	}
	return common.BytesToHash(b), nil
}
