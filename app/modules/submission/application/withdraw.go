package submissionservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	submissionevents "github.com/scorequest/scorequest-backend/app/modules/submission/domain/events"
	submissiondb "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories"
)

// WithdrawSubmission deletes a submission (disqualification). Recomputation
// is triggered with the deleted row's event id.
func (s *SubmissionService) WithdrawSubmission(ctx context.Context, id uuid.UUID) (*submissiondb.Submission, error) {
	return withTelemetry(s, ctx, "WithdrawSubmission", func(ctx context.Context) (*submissiondb.Submission, error) {
		deleted, err := s.repo.Delete(ctx, id)
		if err != nil {
			s.publish(ctx, submissionevents.OperationFailed, submissionevents.OperationFailedPayload{
				Operation:    "withdraw_submission",
				SubmissionID: id,
				Reason:       err.Error(),
			})
			return nil, err
		}

		s.logger.InfoContext(ctx, "Submission withdrawn",
			slog.String("submission_id", deleted.ID.String()),
			slog.String("event_id", deleted.EventID.String()),
			slog.String("user_id", deleted.UserID),
		)

		s.publish(ctx, submissionevents.SubmissionWithdrawn, submissionevents.SubmissionWithdrawnPayload{
			SubmissionID: deleted.ID,
			EventID:      deleted.EventID,
			UserID:       deleted.UserID,
			WasApproved:  deleted.Status == submissiondb.StatusApproved,
		})

		if err := s.trigger.TriggerRecompute(ctx, deleted.EventID); err != nil {
			return nil, fmt.Errorf("submission withdrawn but recompute trigger failed: %w", err)
		}

		return deleted, nil
	})
}
