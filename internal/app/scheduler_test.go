package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/decksite-ingest/internal/platform/logging"
	"github.com/riskibarqy/decksite-ingest/internal/usecase"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
}

func (r *countingRunner) RunBatch(context.Context) (usecase.BatchReport, error) {
	r.calls.Add(1)
	return usecase.BatchReport{}, r.err
}

func TestStartIngestSchedule_RunsImmediately(t *testing.T) {
	runner := &countingRunner{}
	stop, err := StartIngestSchedule(context.Background(), runner, time.Hour, time.Second, logging.NewNop())
	if err != nil {
		t.Fatalf("start schedule: %v", err)
	}
	defer func() {
		if err := stop(); err != nil {
			t.Fatalf("stop schedule: %v", err)
		}
	}()

	deadline := time.Now().Add(2 * time.Second)
	for runner.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected the scrape job to run on start")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStartIngestSchedule_RejectsInvalidInterval(t *testing.T) {
	if _, err := StartIngestSchedule(context.Background(), &countingRunner{}, 0, 0, nil); err == nil {
		t.Fatalf("expected error for zero interval")
	}
}

func TestRunScheduledBatch_ToleratesErrors(t *testing.T) {
	for _, err := range []error{nil, usecase.ErrBatchRunning, errors.New("fetch failed")} {
		runner := &countingRunner{err: err}
		runScheduledBatch(context.Background(), runner, logging.NewNop())
		if runner.calls.Load() != 1 {
			t.Fatalf("expected one run for err=%v", err)
		}
	}
}
