package bnb

const (
	MainnetChainID int64 = 56
	TestnetChainID int64 = 97
)

// ChainID maps a network name to its chain id.
// Only "testnet" maps to 97; every other name, known or not, maps to mainnet.
func ChainID(network string) int64 {
	switch network {
	case "mainnet":
		return MainnetChainID
	case "testnet":
		return TestnetChainID
	default:
		return MainnetChainID
	}
}
