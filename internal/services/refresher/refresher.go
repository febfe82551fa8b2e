// Package refresher drives fetch cycles against the market-data client and
// the snapshot store: one immediate cycle on startup, then a fixed interval,
// plus an out-of-band manual trigger.
package refresher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/coinwatchd/coinwatch/internal/domain"
	"github.com/coinwatchd/coinwatch/internal/services/fallback"
	"github.com/coinwatchd/coinwatch/internal/storage/snapshotstore"
)

// DefaultInterval is how often a cycle runs when the config does not say.
const DefaultInterval = 30 * time.Second

// Fetcher is the market-data client contract the refresher drives.
type Fetcher interface {
	FetchMarkets(ctx context.Context) ([]domain.Coin, error)
}

// Refresher serializes all cycles through its Run goroutine, so the store
// sees exactly one writer and cycles never overlap.
type Refresher struct {
	fetcher  Fetcher
	store    *snapshotstore.Store
	interval time.Duration
	logger   *zap.Logger
	trigger  chan struct{}
}

// New creates a refresher. A non-positive interval falls back to DefaultInterval.
func New(fetcher Fetcher, store *snapshotstore.Store, interval time.Duration, logger *zap.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Refresher{
		fetcher:  fetcher,
		store:    store,
		interval: interval,
		logger:   logger,
		trigger:  make(chan struct{}, 1),
	}
}

// TriggerRefresh requests one out-of-band cycle. Triggers arriving while a
// cycle is running or already pending coalesce into a single pending cycle.
func (r *Refresher) TriggerRefresh() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Run executes cycles until ctx is cancelled: one immediately, then on every
// tick or manual trigger. On return it closes the store, so no cycle result
// can land after teardown.
func (r *Refresher) Run(ctx context.Context) error {
	defer r.store.Close()

	r.logger.Info("starting refresh loop", zap.Duration("interval", r.interval))
	r.runCycle(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("stopping refresh loop")
			return ctx.Err()
		case <-ticker.C:
			r.runCycle(ctx)
		case <-r.trigger:
			r.runCycle(ctx)
		}
	}
}

// runCycle is the single update path shared by startup, ticker and manual
// trigger: fetch, then exactly one store write.
func (r *Refresher) runCycle(ctx context.Context) {
	r.store.Begin()

	records, err := r.fetcher.FetchMarkets(ctx)
	if ctx.Err() != nil {
		// Teardown raced the fetch; drop the result.
		return
	}
	now := time.Now()

	if err != nil {
		r.logger.Warn("market fetch failed, serving fallback data", zap.Error(err))
		r.store.ApplyFallback(fallback.Coins(), now, fmt.Sprintf("%v (showing fallback data)", err))
		return
	}

	r.store.ApplySuccess(records, now)
	r.logger.Debug("market snapshot refreshed", zap.Int("records", len(records)))
}
