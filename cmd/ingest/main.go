package main

import (
	"os"

	"github.com/riskibarqy/decksite-ingest/internal/platform/logging"
)

func main() {
	logger := logging.NewConsole(logging.LevelInfo)
	if err := newApp(logger).Run(os.Args); err != nil {
		logger.Error("ingest failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}
