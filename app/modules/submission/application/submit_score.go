package submissionservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	submissionevents "github.com/scorequest/scorequest-backend/app/modules/submission/domain/events"
	submissiondb "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories"
)

// SubmitScore records a participant's score for a game. The submission lands
// in pending state unless the game auto-approves; an approved insert triggers
// recomputation for its event.
func (s *SubmissionService) SubmitScore(ctx context.Context, input SubmitScoreInput) (*submissiondb.Submission, error) {
	return withTelemetry(s, ctx, "SubmitScore", func(ctx context.Context) (*submissiondb.Submission, error) {
		if input.Score < 0 {
			return nil, fmt.Errorf("score must be non-negative, got %d", input.Score)
		}
		if input.UserID == "" {
			return nil, fmt.Errorf("user id is required")
		}

		status := submissiondb.StatusPending
		if input.AutoApprove {
			status = submissiondb.StatusApproved
		}

		now := time.Now().UTC()
		submission := &submissiondb.Submission{
			GameID:      input.GameID,
			UserID:      input.UserID,
			EventID:     input.EventID,
			Score:       input.Score,
			Status:      status,
			SubmittedAt: now,
			UpdatedAt:   now,
		}

		if err := s.repo.Create(ctx, submission); err != nil {
			s.publish(ctx, submissionevents.OperationFailed, submissionevents.OperationFailedPayload{
				Operation: "submit_score",
				EventID:   input.EventID,
				Reason:    err.Error(),
			})
			return nil, err
		}

		s.logger.InfoContext(ctx, "Submission created",
			slog.String("submission_id", submission.ID.String()),
			slog.String("event_id", submission.EventID.String()),
			slog.String("user_id", submission.UserID),
			slog.String("status", string(submission.Status)),
		)

		s.publish(ctx, submissionevents.SubmissionCreated, submissionevents.SubmissionCreatedPayload{
			SubmissionID: submission.ID,
			GameID:       submission.GameID,
			UserID:       submission.UserID,
			EventID:      submission.EventID,
			Score:        submission.Score,
			Status:       string(submission.Status),
			SubmittedAt:  submission.SubmittedAt,
		})

		if err := s.trigger.TriggerRecompute(ctx, submission.EventID); err != nil {
			return nil, fmt.Errorf("submission stored but recompute trigger failed: %w", err)
		}

		return submission, nil
	})
}
