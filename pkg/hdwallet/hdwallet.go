// Package hdwallet derives BSC account keys from a BIP-39 mnemonic along a
// BIP-44 path. BSC uses Ethereum's coin type 60.
package hdwallet

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

// DefaultPath 是 BSC/ETH 第一个账户
const DefaultPath = "m/44'/60'/0'/0/0"

var (
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	ErrInvalidSeed     = errors.New("invalid seed")
	ErrInvalidPath     = errors.New("invalid derivation path")
)

// Wallet 持有 BIP-32 master key
type Wallet struct {
	master *hdkeychain.ExtendedKey
}

// GenerateMnemonic 生成随机助记词. bitSize: 128 (12 词) 或 256 (24 词)
func GenerateMnemonic(bitSize int) (string, error) {
	entropy, err := bip39.NewEntropy(bitSize)
	if err != nil {
		return "", fmt.Errorf("生成熵失败: %w", err)
	}
	return bip39.NewMnemonic(entropy)
}

// FromMnemonic 校验助记词并生成 master key. passphrase 可为空.
func FromMnemonic(mnemonic, passphrase string) (*Wallet, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	return FromSeed(bip39.NewSeed(mnemonic, passphrase))
}

// FromSeed 使用 BIP-39 种子生成 master key.
// chaincfg 只影响 xprv 的序列化前缀，对派生出的 secp256k1 私钥没有影响.
func FromSeed(seed []byte) (*Wallet, error) {
	if len(seed) < hdkeychain.MinSeedBytes || len(seed) > hdkeychain.MaxSeedBytes {
		return nil, ErrInvalidSeed
	}
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("生成主密钥失败: %w", err)
	}
	return &Wallet{master: master}, nil
}

// ParsePath 解析 m/44'/60'/0'/0/0 或 m/44h/60h/0h/0/0 形式的路径
func ParsePath(path string) ([]uint32, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "m" {
		return nil, nil
	}
	if !strings.HasPrefix(path, "m/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	segments := strings.Split(path[2:], "/")
	indexes := make([]uint32, 0, len(segments))
	for _, segment := range segments {
		hardened := false
		if strings.HasSuffix(segment, "'") || strings.HasSuffix(segment, "h") {
			hardened = true
			segment = segment[:len(segment)-1]
		}
		val, err := strconv.ParseUint(segment, 10, 31)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %q", ErrInvalidPath, segment)
		}
		index := uint32(val)
		if hardened {
			index += hdkeychain.HardenedKeyStart
		}
		indexes = append(indexes, index)
	}
	return indexes, nil
}

// PrivateKeyHex 派生 path 上的私钥, 返回不带 0x 的 hex
func (w *Wallet) PrivateKeyHex(path string) (string, error) {
	indexes, err := ParsePath(path)
	if err != nil {
		return "", err
	}

	key := w.master
	for _, index := range indexes {
		key, err = key.Derive(index)
		if err != nil {
			return "", fmt.Errorf("派生子密钥失败: %w", err)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(priv.Serialize()), nil
}

// Address 返回 path 上账户的 EIP-55 地址
func (w *Wallet) Address(path string) (string, error) {
	privHex, err := w.PrivateKeyHex(path)
	if err != nil {
		return "", err
	}
	key, err := crypto.HexToECDSA(privHex)
	if err != nil {
		return "", err
	}
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), nil
}
