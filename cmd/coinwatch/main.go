// Command coinwatch runs the crypto market dashboard: it polls the CoinGecko
// public API on a fixed interval, keeps the latest snapshot in memory with a
// static fallback for upstream outages, and serves the dashboard over HTTP.
//
// Usage:
//
//	coinwatch --config coinwatch.yaml
//	coinwatch (uses CLI arguments)
//	coinwatch setup (interactive config wizard)
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/coinwatchd/coinwatch/config"
	"github.com/coinwatchd/coinwatch/internal/services/fallback"
	"github.com/coinwatchd/coinwatch/internal/services/pricer"
	"github.com/coinwatchd/coinwatch/internal/services/refresher"
	"github.com/coinwatchd/coinwatch/internal/setup"
	"github.com/coinwatchd/coinwatch/internal/storage/snapshotstore"
	"github.com/coinwatchd/coinwatch/internal/web"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := snapshotstore.New(fallback.Coins())

	opts := []pricer.Option{pricer.WithTimeout(cfg.HTTPTimeout)}
	if cfg.APIBaseURL != "" {
		opts = append(opts, pricer.WithBaseURL(cfg.APIBaseURL))
	}
	cg := pricer.NewCoinGeckoPricer(cfg.CoinIDs, logger.Named("pricer"), opts...)

	ref := refresher.New(cg, store, cfg.RefreshInterval, logger.Named("refresher"))
	srv := web.NewServer(cfg.ListenAddr, store, ref, logger.Named("web"))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ref.Run(ctx)
	})
	g.Go(func() error {
		if cfg.TLSDomain != "" {
			return srv.StartWithAutoTLS(ctx, cfg.TLSDomain, cfg.TLSCacheDir)
		}
		return srv.Start(ctx)
	})

	if err := g.Wait(); err != nil && !isShutdown(err) {
		logger.Fatal("coinwatch exited", zap.Error(err))
	}
	logger.Info("coinwatch stopped")
}

func isShutdown(err error) bool {
	return errors.Is(err, context.Canceled)
}
