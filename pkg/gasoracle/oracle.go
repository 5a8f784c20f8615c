// Package gasoracle resolves a gas price from the Etherscan v2 gas tracker.
//
// The lookup always queries BSC mainnet (chainid=56), whatever network the
// transaction is sent to. Every failure degrades to FallbackPrice.
package gasoracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bnb-wallet/pkg/logger"
	"bnb-wallet/pkg/monitor"
	"bnb-wallet/pkg/unit"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultEndpoint = "https://api.etherscan.io/v2/api"

	// 固定查询 BSC 主网的 gas tracker
	oracleChainID = "56"

	// 50 mwei (0.05 gwei)
	fallbackMwei = 50

	// gwei -> mwei
	mweiPerGwei = 1000
)

var (
	ErrBadStatus   = errors.New("gas oracle returned non-success status")
	ErrNoResult    = errors.New("gas oracle response has no result")
	ErrNoTierPrice = errors.New("gas oracle response has no price for tier")
)

// Tier is a named gas price aggressiveness level.
type Tier string

const (
	TierRapid    Tier = "rapid"
	TierFast     Tier = "fast"
	TierStandard Tier = "standard"
)

// Response is the gas tracker reply.
// Result stays raw because error replies put a plain string there.
type Response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// Prices holds the gwei prices as decimal strings.
type Prices struct {
	SafeGasPrice    string `json:"SafeGasPrice"`
	ProposeGasPrice string `json:"ProposeGasPrice"`
	FastGasPrice    string `json:"FastGasPrice"`
}

// Doer is the part of *http.Client the oracle needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// FallbackPrice returns 50 mwei in wei.
func FallbackPrice() *big.Int {
	wei, _ := unit.ToWei(decimal.NewFromInt(fallbackMwei), "mwei")
	return wei
}

// RequestURL builds the gas oracle URL for endpoint and apiKey.
func RequestURL(endpoint, apiKey string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse gas oracle endpoint: %w", err)
	}
	q := u.Query()
	q.Set("chainid", oracleChainID)
	q.Set("module", "gastracker")
	q.Set("action", "gasoracle")
	q.Set("apikey", apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// SelectGwei picks the gwei price for tier, following the per-tier fallback chain:
//
//	rapid    -> FastGasPrice, else ProposeGasPrice
//	fast     -> ProposeGasPrice, else SafeGasPrice
//	standard -> SafeGasPrice, else ProposeGasPrice (also for unknown tiers)
func SelectGwei(p Prices, tier Tier) (string, bool) {
	var first, second string
	switch tier {
	case TierRapid:
		first, second = p.FastGasPrice, p.ProposeGasPrice
	case TierFast:
		first, second = p.ProposeGasPrice, p.SafeGasPrice
	default:
		first, second = p.SafeGasPrice, p.ProposeGasPrice
	}
	if v := strings.TrimSpace(first); v != "" {
		return v, true
	}
	if v := strings.TrimSpace(second); v != "" {
		return v, true
	}
	return "", false
}

// GweiToWei converts a gwei decimal string to wei by way of mwei.
func GweiToWei(gwei string) (*big.Int, error) {
	g, err := decimal.NewFromString(gwei)
	if err != nil {
		return nil, fmt.Errorf("parse gwei price %q: %w", gwei, err)
	}
	mwei := g.Mul(decimal.NewFromInt(mweiPerGwei))
	return unit.ToWei(mwei, "mwei")
}

// PriceFor decodes a gas tracker reply and returns the wei price for tier.
func PriceFor(resp *Response, tier Tier) (*big.Int, error) {
	if resp.Status != "1" {
		return nil, fmt.Errorf("%w: status=%q message=%q", ErrBadStatus, resp.Status, resp.Message)
	}
	if len(resp.Result) == 0 || string(resp.Result) == "null" {
		return nil, ErrNoResult
	}
	var prices Prices
	if err := json.Unmarshal(resp.Result, &prices); err != nil {
		return nil, fmt.Errorf("decode gas oracle result: %w", err)
	}
	gwei, ok := SelectGwei(prices, tier)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoTierPrice, tier)
	}
	return GweiToWei(gwei)
}

// Lookup performs a single gas tracker request and returns the wei price for tier.
// No retry is attempted.
func Lookup(ctx context.Context, client Doer, endpoint string, tier Tier, apiKey string) (*big.Int, error) {
	reqURL, err := RequestURL(endpoint, apiKey)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		// url.Error 会带上完整 URL (含 apikey)，只保留底层错误
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("gas oracle request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gas oracle http status %d", res.StatusCode)
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode gas oracle response: %w", err)
	}
	return PriceFor(&resp, tier)
}

// GasPrice is Lookup that never fails: any error yields FallbackPrice.
func GasPrice(ctx context.Context, client Doer, endpoint string, tier Tier, apiKey string) *big.Int {
	price, err := Lookup(ctx, client, endpoint, tier, apiKey)
	if err != nil {
		return FallbackPrice()
	}
	return price
}

// Oracle binds an HTTP client and endpoint.
// It is safe for concurrent use and keeps no state between calls.
type Oracle struct {
	client   Doer
	endpoint string
}

// New creates an Oracle. An empty endpoint means DefaultEndpoint.
func New(client Doer, endpoint string) *Oracle {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Oracle{client: client, endpoint: endpoint}
}

// GasPrice returns the wei gas price for the tier name, or FallbackPrice on any failure.
func (o *Oracle) GasPrice(ctx context.Context, tier string, apiKey string) *big.Int {
	t := Tier(strings.TrimSpace(tier))
	if t == "" {
		t = TierStandard
	}

	price, err := Lookup(ctx, o.client, o.endpoint, t, apiKey)
	if err != nil {
		logger.Warn("gas oracle 查询失败, 使用 fallback 价格",
			zap.String("tier", string(t)),
			zap.Error(err))
		monitor.ObserveGasOracle(string(t), false)
		return FallbackPrice()
	}

	logger.Debug("gas oracle price", zap.String("tier", string(t)), zap.String("wei", price.String()))
	monitor.ObserveGasOracle(string(t), true)
	return price
}
