package submissionhandlers

import (
	"errors"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	submissionevents "github.com/scorequest/scorequest-backend/app/modules/submission/domain/events"
	submissiondb "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories"
	"github.com/scorequest/scorequest-backend/internal/eventutil"
)

// HandleReviewRequested handles the ReviewRequested command.
func (h *SubmissionHandlers) HandleReviewRequested(msg *message.Message) error {
	var payload submissionevents.ReviewRequestedPayload
	if err := eventutil.Unmarshal(msg, &payload); err != nil {
		h.logger.Error("Discarding malformed review command", slog.Any("error", err))
		return nil
	}

	h.logger.Info("Received ReviewRequested command",
		slog.String("message_uuid", msg.UUID),
		slog.String("submission_id", payload.SubmissionID.String()),
		slog.String("status", payload.Status),
	)

	_, err := h.submissionService.ReviewSubmission(
		msg.Context(),
		payload.SubmissionID,
		submissiondb.SubmissionStatus(payload.Status),
		payload.Score,
	)
	if err != nil {
		if errors.Is(err, submissiondb.ErrSubmissionNotFound) {
			h.logger.Warn("Review for unknown submission dropped",
				slog.String("submission_id", payload.SubmissionID.String()),
			)
			return nil
		}
		return err
	}
	return nil
}
