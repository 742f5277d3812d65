package submissionservice

import (
	"context"

	"github.com/google/uuid"

	submissiondb "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories"
)

// SubmitScoreInput carries everything needed to record a new submission.
type SubmitScoreInput struct {
	GameID  uuid.UUID
	UserID  string
	EventID uuid.UUID
	Score   int
	// AutoApprove is set by the game configuration for games without
	// organizer review; the submission lands directly in approved state.
	AutoApprove bool
}

// Service is the mutation and read surface of the submission store. Every
// mutation publishes a changefeed event and triggers recomputation for the
// affected event.
type Service interface {
	SubmitScore(ctx context.Context, input SubmitScoreInput) (*submissiondb.Submission, error)
	ReviewSubmission(ctx context.Context, id uuid.UUID, status submissiondb.SubmissionStatus, score *int) (*submissiondb.Submission, error)
	WithdrawSubmission(ctx context.Context, id uuid.UUID) (*submissiondb.Submission, error)
	GetSubmission(ctx context.Context, id uuid.UUID) (*submissiondb.Submission, error)
	ListEventSubmissions(ctx context.Context, eventID uuid.UUID, status submissiondb.SubmissionStatus) ([]submissiondb.Submission, error)
}

// RecomputeTrigger is implemented by the leaderboard module. TriggerRecompute
// must durably schedule a recomputation for the event before returning.
type RecomputeTrigger interface {
	TriggerRecompute(ctx context.Context, eventID uuid.UUID) error
}
