package leaderboardhandlers

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	leaderboardservice "github.com/scorequest/scorequest-backend/app/modules/leaderboard/application"
)

// Enqueuer inserts durable recompute jobs.
type Enqueuer interface {
	EnqueueRecompute(ctx context.Context, eventID uuid.UUID) error
}

// LeaderboardHandlers handles leaderboard command and changefeed messages.
type LeaderboardHandlers struct {
	leaderboardService leaderboardservice.Service
	enqueuer           Enqueuer
	logger             *slog.Logger
}

// NewLeaderboardHandlers creates a new instance of LeaderboardHandlers.
func NewLeaderboardHandlers(leaderboardService leaderboardservice.Service, enqueuer Enqueuer, logger *slog.Logger) Handlers {
	return &LeaderboardHandlers{
		leaderboardService: leaderboardService,
		enqueuer:           enqueuer,
		logger:             logger,
	}
}
