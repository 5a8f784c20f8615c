package cmd

import (
	"testing"

	"bnb-wallet/pkg/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeyCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	addKeyFlags(c)
	c.Flags().String("rpc-url", "", "")
	c.Flags().String("network", "", "")
	c.Flags().String("etherscan-key", "", "")
	require.NoError(t, c.ParseFlags(args))
	return c
}

func walletConfig() *config.Config {
	c := &config.Config{}
	c.Wallet.KeystorePath = "/etc/bnb/wallet.json"
	c.Wallet.Password = "pw"
	c.Wallet.DerivationPath = "m/44'/60'/0'/0/0"
	return c
}

func TestKeySource_ConfigWhenNoFlags(t *testing.T) {
	src := keySource(newKeyCmd(t), walletConfig())
	assert.Equal(t, "keystore", src.Kind())
	assert.Equal(t, "/etc/bnb/wallet.json", src.KeystorePath)
	assert.Equal(t, "pw", src.Password)
}

func TestKeySource_FlagWins(t *testing.T) {
	src := keySource(newKeyCmd(t, "--private-key", "0xabc"), walletConfig())
	assert.Equal(t, "private_key", src.Kind())
	assert.Empty(t, src.KeystorePath)

	src = keySource(newKeyCmd(t, "--mnemonic", "abandon about", "--path", "m/44'/60'/0'/0/7"), walletConfig())
	assert.Equal(t, "mnemonic", src.Kind())
	assert.Equal(t, "m/44'/60'/0'/0/7", src.Path)
}

func TestApplyFlagOverrides(t *testing.T) {
	c := &config.Config{}
	c.Bsc.Network = "mainnet"
	c.Bsc.RpcUrl = "https://bsc-dataseed.binance.org"

	applyFlagOverrides(newKeyCmd(t, "--network", "testnet", "--etherscan-key", "K"), c)
	assert.Equal(t, "testnet", c.Bsc.Network)
	assert.Equal(t, "K", c.Etherscan.ApiKey)
	assert.Equal(t, "https://bsc-dataseed.binance.org", c.Bsc.RpcUrl, "unchanged flags keep config values")
}
