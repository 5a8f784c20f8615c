// Package keysource resolves the signing key of the hot wallet from config.
package keysource

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"bnb-wallet/pkg/bnb"
	"bnb-wallet/pkg/hdwallet"
	"bnb-wallet/pkg/keystore"
)

var ErrNoKeySource = errors.New("no private key source configured (private_key, keystore_path or mnemonic)")

// Source lists the ways a key can be supplied. The first non-empty one wins:
// PrivateKey, then KeystorePath (+Password), then Mnemonic (+Path).
type Source struct {
	PrivateKey   string
	KeystorePath string
	Password     string
	Mnemonic     string
	Passphrase   string
	Path         string
}

// Kind names the source Resolve would use, or "" when none is set.
func (s Source) Kind() string {
	switch {
	case strings.TrimSpace(s.PrivateKey) != "":
		return "private_key"
	case s.KeystorePath != "":
		return "keystore"
	case strings.TrimSpace(s.Mnemonic) != "":
		return "mnemonic"
	default:
		return ""
	}
}

// Resolve returns the hex private key and its address.
func Resolve(s Source) (privateKey string, address string, err error) {
	switch s.Kind() {
	case "private_key":
		privateKey = strings.TrimSpace(s.PrivateKey)

	case "keystore":
		if _, err := os.Stat(s.KeystorePath); err != nil {
			return "", "", fmt.Errorf("keystore %s: %w", s.KeystorePath, err)
		}
		enc, err := keystore.LoadFromFile(s.KeystorePath)
		if err != nil {
			return "", "", err
		}
		privateKey, err = keystore.DecryptPrivateKey(enc, s.Password)
		if err != nil {
			return "", "", fmt.Errorf("decrypt keystore %s: %w", s.KeystorePath, err)
		}

	case "mnemonic":
		w, err := hdwallet.FromMnemonic(s.Mnemonic, s.Passphrase)
		if err != nil {
			return "", "", err
		}
		path := s.Path
		if path == "" {
			path = hdwallet.DefaultPath
		}
		privateKey, err = w.PrivateKeyHex(path)
		if err != nil {
			return "", "", err
		}

	default:
		return "", "", ErrNoKeySource
	}

	address, err = bnb.PrivateKeyToAddress(privateKey)
	if err != nil {
		return "", "", err
	}
	return privateKey, address, nil
}
