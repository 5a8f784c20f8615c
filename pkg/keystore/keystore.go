// Package keystore stores a hot wallet private key encrypted with a password.
//
// The file layout follows the Ethereum keystore v3 shape, but with scrypt +
// AES-256-GCM and a SHA-256 MAC instead of aes-128-ctr + keccak.
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"bnb-wallet/pkg/bnb"

	"github.com/google/uuid"
	"golang.org/x/crypto/scrypt"
)

// EncryptedKeyJSON 保存加密后的私钥
type EncryptedKeyJSON struct {
	Address string     `json:"address"` // 明文地址，方便不解密就能识别
	Crypto  CryptoJSON `json:"crypto"`
	Id      string     `json:"id"`
	Version int        `json:"version"` // 3
}

type CryptoJSON struct {
	Cipher       string       `json:"cipher"`     // "aes-256-gcm"
	CipherText   string       `json:"ciphertext"` // hex
	CipherParams CipherParams `json:"cipherparams"`
	KDF          string       `json:"kdf"` // "scrypt"
	KDFParams    KDFParams    `json:"kdfparams"`
	MAC          string       `json:"mac"` // hex
}

type CipherParams struct {
	IV string `json:"iv"` // hex
}

type KDFParams struct {
	DKLen int    `json:"dklen"`
	N     int    `json:"n"`
	R     int    `json:"r"`
	P     int    `json:"p"`
	Salt  string `json:"salt"` // hex
}

const (
	// StandardScryptN 用于生产; LightScryptN 只适合测试和低配机器
	StandardScryptN = 262144
	LightScryptN    = 4096

	scryptR     = 8
	scryptP     = 1
	scryptDKLen = 32

	cipherName = "aes-256-gcm"
	kdfName    = "scrypt"
)

var (
	ErrMACMismatch       = errors.New("invalid password or corrupted keystore (MAC mismatch)")
	ErrUnsupportedCipher = errors.New("unsupported keystore cipher")
	ErrUnsupportedKDF    = errors.New("unsupported keystore kdf")
)

// EncryptPrivateKey encrypts a hex private key under password.
// scryptN is the scrypt cost, StandardScryptN unless you know better.
func EncryptPrivateKey(privateKey, password string, scryptN int) (*EncryptedKeyJSON, error) {
	address, err := bnb.PrivateKeyToAddress(privateKey)
	if err != nil {
		return nil, err
	}
	plain := []byte(strings.TrimPrefix(strings.TrimSpace(privateKey), "0x"))

	salt := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptDKLen)
	if err != nil {
		return nil, err
	}

	gcm, err := newGCM(derivedKey)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	ciphertext := gcm.Seal(nil, nonce, plain, nil)

	return &EncryptedKeyJSON{
		Address: address,
		Version: 3,
		Id:      uuid.NewString(),
		Crypto: CryptoJSON{
			Cipher:       cipherName,
			CipherText:   hex.EncodeToString(ciphertext),
			CipherParams: CipherParams{IV: hex.EncodeToString(nonce)},
			KDF:          kdfName,
			KDFParams: KDFParams{
				DKLen: scryptDKLen,
				N:     scryptN,
				R:     scryptR,
				P:     scryptP,
				Salt:  hex.EncodeToString(salt),
			},
			MAC: hex.EncodeToString(mac(derivedKey, ciphertext)),
		},
	}, nil
}

// DecryptPrivateKey returns the hex private key (without 0x) stored in keyJSON.
func DecryptPrivateKey(keyJSON *EncryptedKeyJSON, password string) (string, error) {
	c := keyJSON.Crypto
	if c.Cipher != cipherName {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedCipher, c.Cipher)
	}
	if c.KDF != kdfName {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedKDF, c.KDF)
	}

	salt, err := hex.DecodeString(c.KDFParams.Salt)
	if err != nil {
		return "", fmt.Errorf("invalid salt: %w", err)
	}
	nonce, err := hex.DecodeString(c.CipherParams.IV)
	if err != nil {
		return "", fmt.Errorf("invalid iv: %w", err)
	}
	ciphertext, err := hex.DecodeString(c.CipherText)
	if err != nil {
		return "", fmt.Errorf("invalid ciphertext: %w", err)
	}
	wantMAC, err := hex.DecodeString(c.MAC)
	if err != nil {
		return "", fmt.Errorf("invalid mac: %w", err)
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, c.KDFParams.N, c.KDFParams.R, c.KDFParams.P, c.KDFParams.DKLen)
	if err != nil {
		return "", err
	}
	if subtle.ConstantTimeCompare(wantMAC, mac(derivedKey, ciphertext)) != 1 {
		return "", ErrMACMismatch
	}

	gcm, err := newGCM(derivedKey)
	if err != nil {
		return "", err
	}
	if len(nonce) != gcm.NonceSize() {
		return "", fmt.Errorf("invalid iv length %d", len(nonce))
	}
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decryption failed: %w", err)
	}
	return string(plain), nil
}

// SaveToFile 保存到文件 (0600)
func (k *EncryptedKeyJSON) SaveToFile(filename string) error {
	data, err := json.MarshalIndent(k, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0600)
}

// LoadFromFile 从文件加载
func LoadFromFile(filename string) (*EncryptedKeyJSON, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var k EncryptedKeyJSON
	if err := json.Unmarshal(data, &k); err != nil {
		return nil, fmt.Errorf("parse keystore %s: %w", filename, err)
	}
	return &k, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func mac(derivedKey, ciphertext []byte) []byte {
	h := sha256.New()
	h.Write(derivedKey)
	h.Write(ciphertext)
	return h.Sum(nil)
}

