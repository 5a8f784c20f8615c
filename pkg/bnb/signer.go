package bnb

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"bnb-wallet/pkg/unit"
	wtypes "bnb-wallet/pkg/wallet/types"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

var ErrInvalidTransaction = errors.New("invalid transaction field")

// Signer turns an unsigned transaction into its signed, serialized form.
type Signer interface {
	// Sign returns the raw signed transaction as hex, without the 0x prefix.
	Sign(tx *wtypes.UnsignedTransaction, privateKey string) (string, error)
}

// EIP155Signer signs legacy transactions with EIP-155 replay protection.
type EIP155Signer struct{}

func NewEIP155Signer() *EIP155Signer {
	return &EIP155Signer{}
}

func (s *EIP155Signer) Sign(utx *wtypes.UnsignedTransaction, privateKey string) (string, error) {
	signed, err := SignTransaction(utx, privateKey)
	if err != nil {
		return "", err
	}
	raw, err := signed.MarshalBinary()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// SignRecord signs utx and returns the tx hash with the raw encoding, for offline use.
func SignRecord(utx *wtypes.UnsignedTransaction, privateKey string) (*wtypes.SignedTransaction, error) {
	signed, err := SignTransaction(utx, privateKey)
	if err != nil {
		return nil, err
	}
	raw, err := signed.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return &wtypes.SignedTransaction{
		TxHash: signed.Hash().Hex(),
		RawTx:  hex.EncodeToString(raw),
	}, nil
}

// SignTransaction builds the legacy tx from utx and signs it.
func SignTransaction(utx *wtypes.UnsignedTransaction, privateKey string) (*ethtypes.Transaction, error) {
	key, err := ParsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}

	legacy, err := ToLegacyTx(utx)
	if err != nil {
		return nil, err
	}

	signer := ethtypes.NewEIP155Signer(big.NewInt(utx.ChainID))
	return ethtypes.SignTx(ethtypes.NewTx(legacy), signer, key)
}

// ToLegacyTx parses the string fields of utx.
func ToLegacyTx(utx *wtypes.UnsignedTransaction) (*ethtypes.LegacyTx, error) {
	if utx.ChainID <= 0 {
		return nil, fmt.Errorf("%w: chainId %d", ErrInvalidTransaction, utx.ChainID)
	}

	nonce, err := strconv.ParseUint(strings.TrimSpace(utx.Nonce), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: nonce %q", ErrInvalidTransaction, utx.Nonce)
	}

	gas, err := unit.HexToBig(utx.Gas)
	if err != nil || !gas.IsUint64() {
		return nil, fmt.Errorf("%w: gas %q", ErrInvalidTransaction, utx.Gas)
	}
	gasPrice, err := unit.HexToBig(utx.GasPrice)
	if err != nil {
		return nil, fmt.Errorf("%w: gasPrice %q", ErrInvalidTransaction, utx.GasPrice)
	}
	value, err := unit.HexToBig(utx.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: value %q", ErrInvalidTransaction, utx.Value)
	}

	if !common.IsHexAddress(utx.To) {
		return nil, fmt.Errorf("%w: to %q", ErrInvalidTransaction, utx.To)
	}
	to := common.HexToAddress(utx.To)

	var data []byte
	if utx.Data != "" {
		data, err = hexutil.Decode(utx.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: data", ErrInvalidTransaction)
		}
	}

	return &ethtypes.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas.Uint64(),
		To:       &to,
		Value:    value,
		Data:     data,
	}, nil
}
