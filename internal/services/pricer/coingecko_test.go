package pricer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const marketsBody = `[
	{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":67240.12,"total_volume":31250000000,"market_cap":1326000000000,"price_change_percentage_24h":1.84},
	{"id":"tether","symbol":"usdt","name":"Tether","current_price":1.0,"total_volume":52100000000,"market_cap":112500000000,"price_change_percentage_24h":null}
]`

// upstreamStub simulates the CoinGecko endpoints with per-test knobs.
type upstreamStub struct {
	pingStatus    int
	primaryStatus int
	primaryBody   string
	altStatus     int
	altBody       string

	pingCalls    atomic.Int32
	primaryCalls atomic.Int32
	altCalls     atomic.Int32

	t *testing.T
}

func newUpstreamStub(t *testing.T) *upstreamStub {
	return &upstreamStub{
		pingStatus:    http.StatusOK,
		primaryStatus: http.StatusOK,
		primaryBody:   marketsBody,
		altStatus:     http.StatusOK,
		altBody:       marketsBody,
		t:             t,
	}
}

func (u *upstreamStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		u.pingCalls.Add(1)
		w.WriteHeader(u.pingStatus)
		fmt.Fprint(w, `{"gecko_says":"(V3) To the Moon!"}`)
	})
	mux.HandleFunc("/coins/markets", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(u.t, "usd", q.Get("vs_currency"))
		assert.Equal(u.t, "market_cap_desc", q.Get("order"))
		assert.Equal(u.t, "false", q.Get("sparkline"))
		assert.Equal(u.t, "24h", q.Get("price_change_percentage"))

		if q.Get("ids") != "" {
			u.primaryCalls.Add(1)
			assert.Equal(u.t, "50", q.Get("per_page"))
			w.WriteHeader(u.primaryStatus)
			fmt.Fprint(w, u.primaryBody)
			return
		}
		u.altCalls.Add(1)
		assert.Equal(u.t, "2", q.Get("per_page"))
		w.WriteHeader(u.altStatus)
		fmt.Fprint(w, u.altBody)
	})
	return mux
}

func newTestPricer(t *testing.T, u *upstreamStub) (*CoinGeckoPricer, *httptest.Server) {
	srv := httptest.NewServer(u.handler())
	t.Cleanup(srv.Close)
	p := NewCoinGeckoPricer([]string{"bitcoin", "tether"}, zap.NewNop(), WithBaseURL(srv.URL))
	return p, srv
}

func TestFetchMarketsMapsRecords(t *testing.T) {
	u := newUpstreamStub(t)
	p, _ := newTestPricer(t, u)

	coins, err := p.FetchMarkets(context.Background())
	require.NoError(t, err)
	require.Len(t, coins, 2)

	btc := coins[0]
	assert.Equal(t, "bitcoin", btc.ID)
	assert.Equal(t, "Bitcoin", btc.Name)
	assert.Equal(t, "BTC", btc.Symbol)
	assert.Equal(t, 67240.12, btc.Price)
	assert.Equal(t, 1.84, btc.Change24h)
	assert.Equal(t, 31250000000.0, btc.Volume24h)
	assert.Equal(t, 1326000000000.0, btc.MarketCap)

	// absent 24h change comes through as zero
	assert.Equal(t, "USDT", coins[1].Symbol)
	assert.Zero(t, coins[1].Change24h)

	assert.Equal(t, int32(1), u.pingCalls.Load())
	assert.Equal(t, int32(1), u.primaryCalls.Load())
	assert.Equal(t, int32(0), u.altCalls.Load())
}

func TestFetchMarketsPingFailureSkipsListing(t *testing.T) {
	u := newUpstreamStub(t)
	u.pingStatus = http.StatusServiceUnavailable
	p, _ := newTestPricer(t, u)

	_, err := p.FetchMarkets(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Equal(t, int32(0), u.primaryCalls.Load())
}

func TestFetchMarketsUnreachableHost(t *testing.T) {
	p := NewCoinGeckoPricer([]string{"bitcoin"}, zap.NewNop(), WithBaseURL("http://127.0.0.1:1"))

	_, err := p.FetchMarkets(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestFetchMarketsRateLimitedUsesAlternate(t *testing.T) {
	u := newUpstreamStub(t)
	u.primaryStatus = http.StatusTooManyRequests
	p, _ := newTestPricer(t, u)

	coins, err := p.FetchMarkets(context.Background())
	require.NoError(t, err)
	assert.Len(t, coins, 2)
	assert.Equal(t, int32(1), u.primaryCalls.Load())
	assert.Equal(t, int32(1), u.altCalls.Load())
}

func TestFetchMarketsForbiddenUsesAlternate(t *testing.T) {
	u := newUpstreamStub(t)
	u.primaryStatus = http.StatusForbidden
	p, _ := newTestPricer(t, u)

	_, err := p.FetchMarkets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), u.altCalls.Load())
}

func TestFetchMarketsAlternateFailureIsFinal(t *testing.T) {
	u := newUpstreamStub(t)
	u.primaryStatus = http.StatusTooManyRequests
	u.altStatus = http.StatusTooManyRequests
	p, _ := newTestPricer(t, u)

	_, err := p.FetchMarkets(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	// one alternate attempt, no further retries
	assert.Equal(t, int32(1), u.altCalls.Load())
}

func TestFetchMarketsServerErrorSkipsAlternate(t *testing.T) {
	u := newUpstreamStub(t)
	u.primaryStatus = http.StatusInternalServerError
	p, _ := newTestPricer(t, u)

	_, err := p.FetchMarkets(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, int32(0), u.altCalls.Load())
}

func TestFetchMarketsGarbledPayload(t *testing.T) {
	u := newUpstreamStub(t)
	u.primaryBody = `{"not":"a list"`
	p, _ := newTestPricer(t, u)

	_, err := p.FetchMarkets(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestFetchMarketsEmptyPayload(t *testing.T) {
	u := newUpstreamStub(t)
	u.primaryBody = `[]`
	p, _ := newTestPricer(t, u)

	_, err := p.FetchMarkets(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
}
