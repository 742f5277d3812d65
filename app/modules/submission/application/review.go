package submissionservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	submissionevents "github.com/scorequest/scorequest-backend/app/modules/submission/domain/events"
	submissiondb "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories"
)

// ReviewSubmission applies an organizer review decision. Recomputation is
// triggered only when the transition can affect standings: the submission
// was approved before, is approved now, or an approved score changed.
func (s *SubmissionService) ReviewSubmission(ctx context.Context, id uuid.UUID, status submissiondb.SubmissionStatus, score *int) (*submissiondb.Submission, error) {
	return withTelemetry(s, ctx, "ReviewSubmission", func(ctx context.Context) (*submissiondb.Submission, error) {
		if !status.Valid() {
			return nil, fmt.Errorf("invalid submission status %q", status)
		}
		if score != nil && *score < 0 {
			return nil, fmt.Errorf("score must be non-negative, got %d", *score)
		}

		old, updated, err := s.repo.UpdateReview(ctx, id, status, score, time.Now().UTC())
		if err != nil {
			s.publish(ctx, submissionevents.OperationFailed, submissionevents.OperationFailedPayload{
				Operation:    "review_submission",
				SubmissionID: id,
				Reason:       err.Error(),
			})
			return nil, err
		}

		s.logger.InfoContext(ctx, "Submission reviewed",
			slog.String("submission_id", id.String()),
			slog.String("event_id", updated.EventID.String()),
			slog.String("old_status", string(old.Status)),
			slog.String("new_status", string(updated.Status)),
		)

		s.publish(ctx, submissionevents.SubmissionReviewed, submissionevents.SubmissionReviewedPayload{
			SubmissionID: updated.ID,
			EventID:      updated.EventID,
			UserID:       updated.UserID,
			OldStatus:    string(old.Status),
			NewStatus:    string(updated.Status),
			OldScore:     old.Score,
			NewScore:     updated.Score,
			ReviewedAt:   updated.ReviewedAt,
		})

		if reviewAffectsStandings(old, updated) {
			if err := s.trigger.TriggerRecompute(ctx, updated.EventID); err != nil {
				return nil, fmt.Errorf("review stored but recompute trigger failed: %w", err)
			}
		}

		return updated, nil
	})
}

// reviewAffectsStandings reports whether a review transition changes the
// aggregator's input set for the event.
func reviewAffectsStandings(old, updated *submissiondb.Submission) bool {
	wasApproved := old.Status == submissiondb.StatusApproved
	isApproved := updated.Status == submissiondb.StatusApproved

	if wasApproved != isApproved {
		return true
	}
	return isApproved && old.Score != updated.Score
}
