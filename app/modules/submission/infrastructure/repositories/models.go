package submissiondb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SubmissionStatus is the review state of a submission. Only approved
// submissions ever count toward standings.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
	StatusFlagged  SubmissionStatus = "flagged"
)

// Valid reports whether s is one of the known review states.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusFlagged:
		return true
	}
	return false
}

// Submission is one participant's attempt at one game. The (game_id, user_id)
// pair is unique; event_id is denormalized from the game for query
// convenience.
type Submission struct {
	bun.BaseModel `bun:"table:submissions,alias:s"`

	ID          uuid.UUID        `bun:"id,pk,type:uuid"`
	GameID      uuid.UUID        `bun:"game_id,notnull,type:uuid"`
	UserID      string           `bun:"user_id,notnull"`
	EventID     uuid.UUID        `bun:"event_id,notnull,type:uuid"`
	Score       int              `bun:"score,notnull,default:0"`
	Status      SubmissionStatus `bun:"status,notnull,default:'pending'"`
	SubmittedAt time.Time        `bun:"submitted_at,nullzero,notnull,default:current_timestamp"`
	ReviewedAt  time.Time        `bun:"reviewed_at,nullzero"`
	UpdatedAt   time.Time        `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeInsertHook = (*Submission)(nil)

func (s *Submission) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
