// Command api serves the competition read API and the internal scrape job,
// and optionally runs the ingestion schedule in-process.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/riskibarqy/decksite-ingest/internal/app"
	"github.com/riskibarqy/decksite-ingest/internal/config"
	"github.com/riskibarqy/decksite-ingest/internal/observability"
	"github.com/riskibarqy/decksite-ingest/internal/platform/logging"
)

const (
	drainTimeout = 10 * time.Second
	flushTimeout = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.NewConsole(logging.LevelError).Error("load config", "error", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = serve(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Error("api exited", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// cleanup runs registered teardown funcs in reverse order.
type cleanup []func()

func (c *cleanup) add(fn func()) { *c = append(*c, fn) }

func (c cleanup) run() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

func serve(ctx context.Context, cfg config.Config, logger *logging.Logger) error {
	var teardown cleanup
	defer teardown.run()

	flushTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return err
	}
	teardown.add(func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		if err := flushTracing(flushCtx); err != nil {
			logger.Warn("flush traces", "error", err)
		}
	})

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return err
	}
	teardown.add(func() { _ = stopProfiler() })

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		return err
	}
	teardown.add(func() { _ = observability.StopPprofServer(pprofSrv, logger, flushTimeout) })

	container, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	teardown.add(func() { _ = container.Close() })

	srv, err := app.NewHTTPServer(container)
	if err != nil {
		return err
	}

	if cfg.IngestScheduleEnabled {
		stopSchedule, err := app.StartIngestSchedule(ctx, container.Ingestion, cfg.IngestScheduleInterval, cfg.IngestScheduleInterval, logger.Named("schedule"))
		if err != nil {
			return err
		}
		teardown.add(func() {
			if err := stopSchedule(); err != nil {
				logger.Warn("stop schedule", "error", err)
			}
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		return srv.Shutdown(drainCtx)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("http server stopped")
	return nil
}
