package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/decksite-ingest/internal/config"
	"github.com/riskibarqy/decksite-ingest/internal/platform/logging"
)

// InitUptrace installs the global OpenTelemetry providers that export to
// Uptrace. Without UPTRACE_ENABLED or a DSN the global no-op providers stay
// in place. The returned shutdown flushes pending spans and is never nil.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	dsn := strings.TrimSpace(cfg.UptraceDSN)
	if !cfg.UptraceEnabled || dsn == "" {
		logger.Debug("tracing export off", "uptrace_enabled", cfg.UptraceEnabled, "dsn_set", dsn != "")
		return func(context.Context) error { return nil }, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(dsn),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(attribute.String("feed.base_url", cfg.GatherlingBaseURL)),
	)
	logger.Info("tracing export to uptrace", "service", cfg.ServiceName, "version", cfg.ServiceVersion, "env", cfg.AppEnv)

	return uptrace.Shutdown, nil
}
