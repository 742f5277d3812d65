package leaderboarddb

import (
	"context"

	"github.com/google/uuid"
)

// LeaderboardDB handles leaderboard database operations.
type LeaderboardDB interface {
	// ReplaceEventStandings atomically swaps an event's standings for the
	// given set. Readers never observe a partially written leaderboard.
	ReplaceEventStandings(ctx context.Context, eventID uuid.UUID, entries []LeaderboardEntry) error
	// GetEventStandings returns an event's standings ordered by rank. An
	// event with no materialized standings yields an empty slice.
	GetEventStandings(ctx context.Context, eventID uuid.UUID) ([]LeaderboardEntry, error)
}
