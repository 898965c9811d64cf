package observability

import (
	"context"
	"errors"
	"strings"

	"github.com/riskibarqy/gameday-rotation/internal/config"
	"github.com/riskibarqy/gameday-rotation/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

func noopShutdown(context.Context) error { return nil }

// InitUptrace installs the global OpenTelemetry providers. The returned func
// flushes pending spans before shutting the exporters down.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	dsn := strings.TrimSpace(cfg.UptraceDSN)
	switch {
	case !cfg.UptraceEnabled:
		logger.Debug("uptrace disabled")
		return noopShutdown, nil
	case dsn == "":
		logger.Warn("uptrace enabled without dsn, tracing stays local")
		return noopShutdown, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(dsn),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(resourceAttributes(cfg)...),
	)
	logger.Info("uptrace enabled", "storage", cfg.StorageDriver, "environment", cfg.AppEnv)

	return func(ctx context.Context) error {
		return errors.Join(uptrace.ForceFlush(ctx), uptrace.Shutdown(ctx))
	}, nil
}

func resourceAttributes(cfg config.Config) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("gameday.storage_driver", cfg.StorageDriver),
		attribute.Int64("gameday.match_duration_seconds", int64(cfg.MatchDuration.Seconds())),
		attribute.Bool("gameday.redis_relay", cfg.RedisEnabled),
	}
}
