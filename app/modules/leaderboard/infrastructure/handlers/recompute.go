package leaderboardhandlers

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	leaderboardevents "github.com/scorequest/scorequest-backend/app/modules/leaderboard/domain/events"
	"github.com/scorequest/scorequest-backend/internal/eventutil"
)

// HandleRecomputeRequested handles an explicit recompute command.
func (h *LeaderboardHandlers) HandleRecomputeRequested(msg *message.Message) error {
	var payload leaderboardevents.RecomputeRequestedPayload
	if err := eventutil.Unmarshal(msg, &payload); err != nil {
		h.logger.Error("Discarding malformed recompute command", slog.Any("error", err))
		return nil // malformed payloads are not retryable
	}

	h.logger.Info("Received RecomputeRequested command",
		slog.String("message_uuid", msg.UUID),
		slog.String("event_id", payload.EventID.String()),
		slog.String("reason", payload.Reason),
	)

	return h.enqueuer.EnqueueRecompute(msg.Context(), payload.EventID)
}

// submissionChange is the slice of every submission changefeed payload the
// leaderboard cares about.
type submissionChange struct {
	EventID uuid.UUID `json:"event_id"`
}

// HandleSubmissionChanged reacts to submission.created, submission.reviewed,
// and submission.withdrawn by enqueueing a recompute for the affected event.
func (h *LeaderboardHandlers) HandleSubmissionChanged(msg *message.Message) error {
	var payload submissionChange
	if err := eventutil.Unmarshal(msg, &payload); err != nil {
		h.logger.Error("Discarding malformed submission change event", slog.Any("error", err))
		return nil
	}
	if payload.EventID == uuid.Nil {
		h.logger.Warn("Submission change event without event id", slog.String("message_uuid", msg.UUID))
		return nil
	}

	return h.enqueuer.EnqueueRecompute(msg.Context(), payload.EventID)
}
