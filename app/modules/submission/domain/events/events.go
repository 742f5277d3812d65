package submissionevents

import (
	"time"

	"github.com/google/uuid"
)

// Command topics consumed by the submission module.
const (
	SubmitScoreRequested = "submission.submit.requested"
	ReviewRequested      = "submission.review.requested"
	WithdrawRequested    = "submission.withdraw.requested"
)

// Event topics published by the submission module. These form the explicit
// changefeed the leaderboard module listens on.
const (
	SubmissionCreated   = "submission.created"
	SubmissionReviewed  = "submission.reviewed"
	SubmissionWithdrawn = "submission.withdrawn"
	OperationFailed     = "submission.operation.failed"
)

// SubmitScoreRequestedPayload asks the module to record a participant's score
// for a game. AutoApprove is set by the game CRUD surface for games that skip
// organizer review.
type SubmitScoreRequestedPayload struct {
	GameID      uuid.UUID `json:"game_id"`
	UserID      string    `json:"user_id"`
	EventID     uuid.UUID `json:"event_id"`
	Score       int       `json:"score"`
	AutoApprove bool      `json:"auto_approve"`
}

// ReviewRequestedPayload carries an organizer review decision. Score is
// optional; nil leaves the submitted score untouched.
type ReviewRequestedPayload struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	Status       string    `json:"status"`
	Score        *int      `json:"score,omitempty"`
}

// WithdrawRequestedPayload removes a submission entirely (disqualification).
type WithdrawRequestedPayload struct {
	SubmissionID uuid.UUID `json:"submission_id"`
}

// SubmissionCreatedPayload is published after a submission row is inserted.
type SubmissionCreatedPayload struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	GameID       uuid.UUID `json:"game_id"`
	UserID       string    `json:"user_id"`
	EventID      uuid.UUID `json:"event_id"`
	Score        int       `json:"score"`
	Status       string    `json:"status"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// SubmissionReviewedPayload is published after a review transition. OldStatus
// and OldScore let consumers decide whether standings are affected.
type SubmissionReviewedPayload struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	EventID      uuid.UUID `json:"event_id"`
	UserID       string    `json:"user_id"`
	OldStatus    string    `json:"old_status"`
	NewStatus    string    `json:"new_status"`
	OldScore     int       `json:"old_score"`
	NewScore     int       `json:"new_score"`
	ReviewedAt   time.Time `json:"reviewed_at"`
}

// SubmissionWithdrawnPayload is published after a submission is deleted. The
// event id comes from the deleted row, so consumers recompute the right event.
type SubmissionWithdrawnPayload struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	EventID      uuid.UUID `json:"event_id"`
	UserID       string    `json:"user_id"`
	WasApproved  bool      `json:"was_approved"`
}

// OperationFailedPayload is published when a command could not be applied.
type OperationFailedPayload struct {
	Operation    string    `json:"operation"`
	SubmissionID uuid.UUID `json:"submission_id,omitempty"`
	EventID      uuid.UUID `json:"event_id,omitempty"`
	Reason       string    `json:"reason"`
}
