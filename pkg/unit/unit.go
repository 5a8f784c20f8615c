// Package unit converts between BNB denominations and between hex and
// decimal quantity strings.
//
// 1 ether = 1e3 finney = 1e6 szabo = 1e9 gwei = 1e12 mwei = 1e15 kwei = 1e18 wei.
package unit

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

// 各单位相对 wei 的 10 的幂
var exponents = map[string]int32{
	"wei":    0,
	"kwei":   3,
	"mwei":   6,
	"gwei":   9,
	"szabo":  12,
	"finney": 15,
	"ether":  18,
}

var (
	ErrUnknownUnit    = errors.New("unknown unit")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrInvalidHex     = errors.New("invalid hex quantity")
)

var hexPattern = regexp.MustCompile(`^(0x)?[a-fA-F0-9]+$`)

// IsHex reports whether s is an optional 0x prefix followed by at least one hex digit.
// Note that plain decimal digit strings such as "100" also satisfy it.
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// ToWei converts value expressed in unit into wei.
// Fractions below one wei are truncated.
func ToWei(value decimal.Decimal, unit string) (*big.Int, error) {
	exp, ok := exponents[strings.ToLower(unit)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUnit, unit)
	}
	if value.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return value.Shift(exp).Truncate(0).BigInt(), nil
}

// ToWeiString is ToWei for a decimal string such as "0.01".
func ToWeiString(value, unit string) (*big.Int, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", value, err)
	}
	return ToWei(d, unit)
}

// FromWei converts a wei amount into unit.
func FromWei(wei *big.Int, unit string) (decimal.Decimal, error) {
	exp, ok := exponents[strings.ToLower(unit)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownUnit, unit)
	}
	if wei == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromBigInt(wei, -exp), nil
}

// ToHex encodes a non-negative integer as a 0x-prefixed hex quantity without leading zeros.
func ToHex(v *big.Int) string {
	if v == nil {
		return "0x0"
	}
	return hexutil.EncodeBig(v)
}

// HexToBig parses a hex quantity with or without the 0x prefix.
// Leading zeros are accepted.
func HexToBig(s string) (*big.Int, error) {
	if !IsHex(s) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	digits := strings.TrimPrefix(s, "0x")
	v, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return v, nil
}
