package submissionhandlers

import (
	"errors"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	submissionevents "github.com/scorequest/scorequest-backend/app/modules/submission/domain/events"
	submissiondb "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories"
	"github.com/scorequest/scorequest-backend/internal/eventutil"
)

// HandleWithdrawRequested handles the WithdrawRequested command.
func (h *SubmissionHandlers) HandleWithdrawRequested(msg *message.Message) error {
	var payload submissionevents.WithdrawRequestedPayload
	if err := eventutil.Unmarshal(msg, &payload); err != nil {
		h.logger.Error("Discarding malformed withdraw command", slog.Any("error", err))
		return nil
	}

	h.logger.Info("Received WithdrawRequested command",
		slog.String("message_uuid", msg.UUID),
		slog.String("submission_id", payload.SubmissionID.String()),
	)

	_, err := h.submissionService.WithdrawSubmission(msg.Context(), payload.SubmissionID)
	if err != nil {
		if errors.Is(err, submissiondb.ErrSubmissionNotFound) {
			// Already gone; withdrawing is idempotent from the caller's view.
			return nil
		}
		return err
	}
	return nil
}
