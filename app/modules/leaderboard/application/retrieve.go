package leaderboardservice

import (
	"context"

	"github.com/google/uuid"

	leaderboarddb "github.com/scorequest/scorequest-backend/app/modules/leaderboard/infrastructure/repositories"
)

// GetStandings returns the materialized standings for an event, ordered by
// rank. An event nobody has submitted to yields an empty slice.
func (s *LeaderboardService) GetStandings(ctx context.Context, eventID uuid.UUID) ([]leaderboarddb.LeaderboardEntry, error) {
	return withTelemetry(s, ctx, "GetStandings", func(ctx context.Context) ([]leaderboarddb.LeaderboardEntry, error) {
		return s.repo.GetEventStandings(ctx, eventID)
	})
}
