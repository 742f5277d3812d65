package leaderboarddb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LeaderboardDBImpl handles database operations for leaderboards.
type LeaderboardDBImpl struct {
	DB *bun.DB
}

var _ LeaderboardDB = (*LeaderboardDBImpl)(nil)

// ReplaceEventStandings deletes the event's rows and inserts the new set in
// one transaction. Other events' rows are untouched.
func (db *LeaderboardDBImpl) ReplaceEventStandings(ctx context.Context, eventID uuid.UUID, entries []LeaderboardEntry) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NewDelete().
		Model((*LeaderboardEntry)(nil)).
		Where("event_id = ?", eventID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear standings for event %s: %w", eventID, err)
	}

	if len(entries) > 0 {
		_, err = tx.NewInsert().
			Model(&entries).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert standings for event %s: %w", eventID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit standings for event %s: %w", eventID, err)
	}
	return nil
}

// GetEventStandings returns the materialized standings ordered by rank.
func (db *LeaderboardDBImpl) GetEventStandings(ctx context.Context, eventID uuid.UUID) ([]LeaderboardEntry, error) {
	entries := make([]LeaderboardEntry, 0)
	err := db.DB.NewSelect().
		Model(&entries).
		Where("le.event_id = ?", eventID).
		Order("rank ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get standings for event %s: %w", eventID, err)
	}
	return entries, nil
}
