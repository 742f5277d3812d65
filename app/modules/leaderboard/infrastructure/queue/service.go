package leaderboardqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	submissionservice "github.com/scorequest/scorequest-backend/app/modules/submission/application"
)

const recomputeWorkers = 4

// QueueService owns the durable recompute queue. It implements the
// recompute trigger the submission module fires after every write.
type QueueService struct {
	pool       *pgxpool.Pool
	client     *river.Client[pgx.Tx]
	recomputer Recomputer
	logger     *slog.Logger
}

var _ submissionservice.RecomputeTrigger = (*QueueService)(nil)

// NewQueueService connects to Postgres and builds the River client with the
// recompute worker registered. Call Start before enqueueing.
func NewQueueService(ctx context.Context, dsn string, recomputer Recomputer, logger *slog.Logger) (*QueueService, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewRecomputeWorker(recomputer, logger))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: recomputeWorkers},
		},
		Workers:     workers,
		JobTimeout:  time.Minute,
		MaxAttempts: 5,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create river client: %w", err)
	}

	return &QueueService{
		pool:       pool,
		client:     client,
		recomputer: recomputer,
		logger:     logger,
	}, nil
}

// Start begins processing queued recomputes.
func (q *QueueService) Start(ctx context.Context) error {
	if err := q.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start river client: %w", err)
	}
	q.logger.InfoContext(ctx, "Leaderboard recompute queue started")
	return nil
}

// Stop drains in-flight jobs and closes the pool.
func (q *QueueService) Stop(ctx context.Context) error {
	err := q.client.Stop(ctx)
	q.pool.Close()
	if err != nil {
		return fmt.Errorf("failed to stop river client: %w", err)
	}
	return nil
}

// EnqueueRecompute inserts a durable recompute job for the event. Duplicate
// inserts while one is pending coalesce into a single job.
func (q *QueueService) EnqueueRecompute(ctx context.Context, eventID uuid.UUID) error {
	res, err := q.client.Insert(ctx, RecomputeArgs{EventID: eventID}, nil)
	if err != nil {
		return fmt.Errorf("failed to enqueue recompute for event %s: %w", eventID, err)
	}
	q.logger.DebugContext(ctx, "Enqueued leaderboard recompute",
		slog.String("event_id", eventID.String()),
		slog.Bool("coalesced", res.UniqueSkippedAsDuplicate),
	)
	return nil
}

// TriggerRecompute durably enqueues a recompute, then attempts one
// synchronously so the common case is visible before the caller returns.
// The synchronous attempt is best effort: if it fails, the queued job
// still converges the leaderboard.
func (q *QueueService) TriggerRecompute(ctx context.Context, eventID uuid.UUID) error {
	if err := q.EnqueueRecompute(ctx, eventID); err != nil {
		return err
	}
	if _, err := q.recomputer.RecomputeEvent(ctx, eventID); err != nil {
		q.logger.WarnContext(ctx, "Synchronous recompute failed, queued job will retry",
			slog.String("event_id", eventID.String()),
			slog.Any("error", err),
		)
	}
	return nil
}
