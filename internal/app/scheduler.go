package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/riskibarqy/decksite-ingest/internal/platform/logging"
	"github.com/riskibarqy/decksite-ingest/internal/usecase"
)

type batchRunner interface {
	RunBatch(ctx context.Context) (usecase.BatchReport, error)
}

// StartIngestSchedule runs a batch every interval until ctx ends or the
// returned stop func is called. Overlapping ticks are skipped.
func StartIngestSchedule(ctx context.Context, runner batchRunner, interval, timeout time.Duration, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if interval <= 0 {
		return nil, fmt.Errorf("ingest schedule interval must be > 0")
	}
	if timeout <= 0 {
		timeout = interval
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			runCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			runScheduledBatch(runCtx, runner, logger)
		}),
		gocron.WithName("gatherling-scrape"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("register scrape job: %w", err)
	}

	sched.Start()
	logger.Info("ingest schedule started", "interval", interval)

	return sched.Shutdown, nil
}

func runScheduledBatch(ctx context.Context, runner batchRunner, logger *logging.Logger) {
	report, err := runner.RunBatch(ctx)
	switch {
	case errors.Is(err, usecase.ErrBatchRunning):
		logger.InfoContext(ctx, "scheduled scrape skipped", "reason", "batch already running")
	case err != nil:
		logger.ErrorContext(ctx, "scheduled scrape failed", "error_kind", usecase.ErrorKind(err), "error", err)
	default:
		logger.InfoContext(ctx, "scheduled scrape finished",
			"ingested", report.Ingested,
			"skipped", report.Skipped,
			"failed", report.Failed,
		)
	}
}
