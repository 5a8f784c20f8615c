package bnb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChainID(t *testing.T) {
	tests := []struct {
		network string
		want    int64
	}{
		{"mainnet", 56},
		{"testnet", 97},
		{"Testnet", 56},
		{"", 56},
		{"goerli", 56},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ChainID(tt.network), "ChainID(%q)", tt.network)
	}
}
