// Package pricer fetches current market data for the tracked assets from the
// CoinGecko public REST API and normalizes it into domain records.
package pricer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/coinwatchd/coinwatch/internal/domain"
)

// DefaultBaseURL is the public CoinGecko API root.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

const defaultTimeout = 10 * time.Second

// Failure kinds reported by FetchMarkets, matchable with errors.Is.
var (
	// ErrUnreachable means the liveness probe failed; no listing request was made.
	ErrUnreachable = errors.New("service unreachable")
	// ErrRateLimited means the primary request was throttled or denied (429/403).
	ErrRateLimited = errors.New("rate limited or access denied")
	// ErrUpstream means the upstream answered with an unexpected HTTP status.
	ErrUpstream = errors.New("upstream error")
	// ErrTransport means a network-level failure or an undecodable payload.
	ErrTransport = errors.New("transport error")
)

// marketRow is the subset of a CoinGecko /coins/markets element we consume.
// The 24h change is a pointer because upstream omits it for some assets.
type marketRow struct {
	ID        string   `json:"id"`
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Price     float64  `json:"current_price"`
	Volume24h float64  `json:"total_volume"`
	MarketCap float64  `json:"market_cap"`
	Change24h *float64 `json:"price_change_percentage_24h"`
}

// CoinGeckoPricer issues the listing requests. It holds no mutable state
// beyond its HTTP client; all snapshot mutation belongs to the caller.
type CoinGeckoPricer struct {
	baseURL string
	ids     []string
	client  *http.Client
	logger  *zap.Logger
}

// Option configures a CoinGeckoPricer.
type Option func(*CoinGeckoPricer)

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *CoinGeckoPricer) {
		p.client.Timeout = d
	}
}

// WithBaseURL points the pricer at a different API root.
func WithBaseURL(u string) Option {
	return func(p *CoinGeckoPricer) {
		p.baseURL = strings.TrimRight(u, "/")
	}
}

// NewCoinGeckoPricer creates a pricer for the given asset identifiers.
func NewCoinGeckoPricer(ids []string, logger *zap.Logger, opts ...Option) *CoinGeckoPricer {
	p := &CoinGeckoPricer{
		baseURL: DefaultBaseURL,
		ids:     ids,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchMarkets runs one fetch attempt: liveness probe, primary listing
// request, and at most one unfiltered alternate request if the primary is
// throttled or denied. Every failure path returns a classified error; the
// caller decides what to substitute.
func (p *CoinGeckoPricer) FetchMarkets(ctx context.Context) ([]domain.Coin, error) {
	if err := p.ping(ctx); err != nil {
		return nil, err
	}

	rows, status, err := p.listMarkets(ctx, p.marketsURL(true))
	if err == nil {
		return toCoins(rows), nil
	}

	if status != http.StatusTooManyRequests && status != http.StatusForbidden {
		return nil, err
	}

	// Throttled or denied: one alternate attempt without the id filter,
	// final for this cycle.
	p.logger.Warn("primary market request throttled, retrying without id filter",
		zap.Int("status", status))

	rows, _, err = p.listMarkets(ctx, p.marketsURL(false))
	if err != nil {
		return nil, errors.Wrapf(ErrRateLimited, "alternate request after status %d: %v", status, err)
	}
	return toCoins(rows), nil
}

// ping probes upstream liveness. Any 2xx passes.
func (p *CoinGeckoPricer) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/ping", nil)
	if err != nil {
		return errors.Wrap(ErrUnreachable, err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrap(ErrUnreachable, err.Error())
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Wrapf(ErrUnreachable, "ping returned status %d", resp.StatusCode)
	}
	return nil
}

// marketsURL builds the listing URL. filtered selects the curated id set with
// a page size of 50; unfiltered asks for the top N by market cap, N being the
// size of the curated set.
func (p *CoinGeckoPricer) marketsURL(filtered bool) string {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("order", "market_cap_desc")
	q.Set("page", "1")
	q.Set("sparkline", "false")
	q.Set("price_change_percentage", "24h")
	if filtered {
		q.Set("ids", strings.Join(p.ids, ","))
		q.Set("per_page", "50")
	} else {
		q.Set("per_page", strconv.Itoa(len(p.ids)))
	}
	return p.baseURL + "/coins/markets?" + q.Encode()
}

// listMarkets issues one listing request. On a non-2xx status it returns the
// status code alongside the error so the caller can classify throttling.
func (p *CoinGeckoPricer) listMarkets(ctx context.Context, u string) ([]marketRow, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, errors.Wrap(ErrTransport, err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, 0, errors.Wrap(ErrTransport, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, errors.Wrapf(ErrUpstream, "status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var rows []marketRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, resp.StatusCode, errors.Wrapf(ErrTransport, "decode markets response: %v", err)
	}
	if len(rows) == 0 {
		return nil, resp.StatusCode, errors.Wrap(ErrUpstream, "empty markets response")
	}
	return rows, resp.StatusCode, nil
}

func toCoins(rows []marketRow) []domain.Coin {
	coins := make([]domain.Coin, len(rows))
	for i, r := range rows {
		c := domain.Coin{
			ID:        r.ID,
			Name:      r.Name,
			Symbol:    strings.ToUpper(r.Symbol),
			Price:     r.Price,
			Volume24h: r.Volume24h,
			MarketCap: r.MarketCap,
		}
		if r.Change24h != nil {
			c.Change24h = *r.Change24h
		}
		coins[i] = c
	}
	return coins
}
