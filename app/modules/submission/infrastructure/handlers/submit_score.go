package submissionhandlers

import (
	"errors"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	submissionservice "github.com/scorequest/scorequest-backend/app/modules/submission/application"
	submissionevents "github.com/scorequest/scorequest-backend/app/modules/submission/domain/events"
	submissiondb "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories"
	"github.com/scorequest/scorequest-backend/internal/eventutil"
)

// HandleSubmitScoreRequested handles the SubmitScoreRequested command.
func (h *SubmissionHandlers) HandleSubmitScoreRequested(msg *message.Message) error {
	var payload submissionevents.SubmitScoreRequestedPayload
	if err := eventutil.Unmarshal(msg, &payload); err != nil {
		h.logger.Error("Discarding malformed submit command", slog.Any("error", err))
		return nil // malformed payloads are not retryable
	}

	h.logger.Info("Received SubmitScoreRequested command",
		slog.String("message_uuid", msg.UUID),
		slog.String("event_id", payload.EventID.String()),
		slog.String("user_id", payload.UserID),
	)

	_, err := h.submissionService.SubmitScore(msg.Context(), submissionservice.SubmitScoreInput{
		GameID:      payload.GameID,
		UserID:      payload.UserID,
		EventID:     payload.EventID,
		Score:       payload.Score,
		AutoApprove: payload.AutoApprove,
	})
	if err != nil {
		if errors.Is(err, submissiondb.ErrDuplicateSubmission) {
			// The failure event is already on the bus; retrying cannot succeed.
			h.logger.Warn("Duplicate submission rejected",
				slog.String("event_id", payload.EventID.String()),
				slog.String("user_id", payload.UserID),
			)
			return nil
		}
		return err
	}
	return nil
}
