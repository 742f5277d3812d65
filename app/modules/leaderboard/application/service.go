package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	leaderboarddb "github.com/scorequest/scorequest-backend/app/modules/leaderboard/infrastructure/repositories"
	"github.com/scorequest/scorequest-backend/internal/eventbus"
	"github.com/scorequest/scorequest-backend/internal/eventutil"
)

const serviceName = "leaderboard"

// Metrics is the operation telemetry contract the service records against.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	repo        leaderboarddb.LeaderboardDB
	submissions SubmissionSource
	eventBus    eventbus.EventBus
	logger      *slog.Logger
	metrics     Metrics
	tracer      trace.Tracer
}

var _ Service = (*LeaderboardService)(nil)

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	repo leaderboarddb.LeaderboardDB,
	submissions SubmissionSource,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	metrics Metrics,
	tracer trace.Tracer,
) *LeaderboardService {
	return &LeaderboardService{
		repo:        repo,
		submissions: submissions,
		eventBus:    eventBus,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
	}
}

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[T any](
	s *LeaderboardService,
	ctx context.Context,
	operationName string,
	op func(ctx context.Context) (T, error),
) (result T, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("service", serviceName),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			span.RecordError(err)
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed",
			slog.String("operation", operationName),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	return result, nil
}

// publish marshals payload and publishes it on topic. Publish failures are
// logged, not returned: the materialized store already holds the result.
func (s *LeaderboardService) publish(ctx context.Context, topic string, payload any) {
	msg, err := eventutil.NewJSONMessage(payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build event message",
			slog.String("topic", topic),
			slog.Any("error", err),
		)
		return
	}
	if err := s.eventBus.Publish(topic, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			slog.String("topic", topic),
			slog.Any("error", err),
		)
	}
}
