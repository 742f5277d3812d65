package leaderboardevents

import (
	"time"

	"github.com/google/uuid"
)

// Command topics consumed by the leaderboard router.
const (
	RecomputeRequested    = "leaderboard.recompute.requested"
	GetStandingsRequested = "leaderboard.standings.get.requested"
)

// Event topics published by the leaderboard module.
const (
	LeaderboardUpdated   = "leaderboard.updated"
	GetStandingsResponse = "leaderboard.standings.get.response"
	OperationFailed      = "leaderboard.operation.failed"
)

type RecomputeRequestedPayload struct {
	EventID uuid.UUID `json:"event_id"`
	Reason  string    `json:"reason,omitempty"`
}

type GetStandingsRequestedPayload struct {
	EventID uuid.UUID `json:"event_id"`
}

// StandingView is the wire representation of one standing row.
type StandingView struct {
	UserID         string `json:"user_id"`
	TotalScore     int    `json:"total_score"`
	GamesCompleted int    `json:"games_completed"`
	Rank           int    `json:"rank"`
}

type LeaderboardUpdatedPayload struct {
	EventID      uuid.UUID      `json:"event_id"`
	Standings    []StandingView `json:"standings"`
	Participants int            `json:"participants"`
	ComputedAt   time.Time      `json:"computed_at"`
}

type GetStandingsResponsePayload struct {
	EventID   uuid.UUID      `json:"event_id"`
	Standings []StandingView `json:"standings"`
}

type OperationFailedPayload struct {
	EventID uuid.UUID `json:"event_id"`
	Reason  string    `json:"reason"`
}
