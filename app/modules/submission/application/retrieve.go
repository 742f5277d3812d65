package submissionservice

import (
	"context"

	"github.com/google/uuid"

	submissiondb "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories"
)

// GetSubmission fetches a single submission for the review surfaces.
func (s *SubmissionService) GetSubmission(ctx context.Context, id uuid.UUID) (*submissiondb.Submission, error) {
	return withTelemetry(s, ctx, "GetSubmission", func(ctx context.Context) (*submissiondb.Submission, error) {
		return s.repo.GetByID(ctx, id)
	})
}

// ListEventSubmissions lists an event's submissions, optionally filtered by
// status, for the organizer review queue.
func (s *SubmissionService) ListEventSubmissions(ctx context.Context, eventID uuid.UUID, status submissiondb.SubmissionStatus) ([]submissiondb.Submission, error) {
	return withTelemetry(s, ctx, "ListEventSubmissions", func(ctx context.Context) ([]submissiondb.Submission, error) {
		return s.repo.ListByEvent(ctx, eventID, status)
	})
}
