package submissiondb

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SubmissionDB is the storage contract for the submission store. The
// leaderboard engine only ever reads this table; mutations flow exclusively
// through the submission service.
type SubmissionDB interface {
	Create(ctx context.Context, submission *Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*Submission, error)
	// UpdateReview applies a review transition and returns both the previous
	// and the updated row so callers can decide whether standings changed.
	UpdateReview(ctx context.Context, id uuid.UUID, status SubmissionStatus, score *int, reviewedAt time.Time) (old *Submission, updated *Submission, err error)
	// Delete removes a submission and returns the deleted row; its event id
	// is what the recomputation trigger needs.
	Delete(ctx context.Context, id uuid.UUID) (*Submission, error)
	// ListByEvent returns an event's submissions, newest first, optionally
	// filtered by status (empty status means all).
	ListByEvent(ctx context.Context, eventID uuid.UUID, status SubmissionStatus) ([]Submission, error)
	// ListApprovedByEvent is the aggregator's sole read: every approved
	// submission for the event.
	ListApprovedByEvent(ctx context.Context, eventID uuid.UUID) ([]Submission, error)
}
