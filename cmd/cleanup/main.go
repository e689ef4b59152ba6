package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/store"
)

// The retention sweep is never self-scheduled; this binary exists for an
// external scheduler (cron) to trigger it on demand.
func main() {
	days := flag.Int("days", 0, "age threshold in days (defaults to RETENTION_DAYS)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	threshold := *days
	if threshold <= 0 {
		threshold = cfg.Retention.Days
	}
	if threshold <= 0 {
		logger.Fatal("retention threshold must be positive", zap.Int("days", threshold))
	}

	ctx := context.Background()

	st, err := store.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init storage backend", zap.Error(err))
	}
	defer st.Close()

	removed, err := st.CleanupOldResolved(ctx, threshold)
	if err != nil {
		logger.Fatal("retention sweep failed", zap.Error(err))
	}
	logger.Info("retention sweep completed",
		zap.Int("days_old", threshold),
		zap.Int("removed", removed))
}
