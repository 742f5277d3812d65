package observability

import (
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/scorequest/scorequest-backend/config"
)

const serviceName = "scorequest-backend"

// Observability bundles the logger, metrics registry and tracer that get
// threaded through the modules.
type Observability struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *OperationMetrics
	Tracer   trace.Tracer
}

// New builds the observability stack from config. Tracing uses whatever
// global otel provider the process has installed; without one it is a no-op.
func New(cfg config.ObservabilityConfig) *Observability {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})).With(
		slog.String("service", serviceName),
		slog.String("environment", cfg.Environment),
	)

	registry := prometheus.NewRegistry()

	return &Observability{
		Logger:   logger,
		Registry: registry,
		Metrics:  NewOperationMetrics(registry),
		Tracer:   otel.Tracer(serviceName),
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
