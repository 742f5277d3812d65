package leaderboarddb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LeaderboardEntry is one materialized standing row for an event.
type LeaderboardEntry struct {
	bun.BaseModel `bun:"table:leaderboard_entries,alias:le"`

	EventID        uuid.UUID `bun:"event_id,pk,type:uuid"`
	UserID         string    `bun:"user_id,pk,notnull"`
	TotalScore     int       `bun:"total_score,notnull"`
	GamesCompleted int       `bun:"games_completed,notnull"`
	Rank           int       `bun:"rank,notnull"`
	LastUpdated    time.Time `bun:"last_updated,notnull,default:current_timestamp"`
}
