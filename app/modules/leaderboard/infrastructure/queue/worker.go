package leaderboardqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/riverqueue/river"

	leaderboarddomain "github.com/scorequest/scorequest-backend/app/modules/leaderboard/domain"
)

// Recomputer is the recompute operation the worker drives.
type Recomputer interface {
	RecomputeEvent(ctx context.Context, eventID uuid.UUID) ([]leaderboarddomain.Standing, error)
}

// RecomputeWorker processes queued leaderboard recomputes.
type RecomputeWorker struct {
	river.WorkerDefaults[RecomputeArgs]
	recomputer Recomputer
	logger     *slog.Logger
}

func NewRecomputeWorker(recomputer Recomputer, logger *slog.Logger) *RecomputeWorker {
	return &RecomputeWorker{
		recomputer: recomputer,
		logger:     logger,
	}
}

func (w *RecomputeWorker) Work(ctx context.Context, job *river.Job[RecomputeArgs]) error {
	w.logger.InfoContext(ctx, "Processing queued leaderboard recompute",
		slog.String("event_id", job.Args.EventID.String()),
		slog.Int("attempt", job.Attempt),
	)
	if _, err := w.recomputer.RecomputeEvent(ctx, job.Args.EventID); err != nil {
		return fmt.Errorf("recompute for event %s: %w", job.Args.EventID, err)
	}
	return nil
}
