package leaderboardhandlers

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	leaderboardevents "github.com/scorequest/scorequest-backend/app/modules/leaderboard/domain/events"
	"github.com/scorequest/scorequest-backend/internal/eventutil"
)

// HandleGetStandingsRequested handles a standings query and replies on the
// response topic.
func (h *LeaderboardHandlers) HandleGetStandingsRequested(msg *message.Message) ([]*message.Message, error) {
	var payload leaderboardevents.GetStandingsRequestedPayload
	if err := eventutil.Unmarshal(msg, &payload); err != nil {
		h.logger.Error("Discarding malformed standings query", slog.Any("error", err))
		return nil, nil
	}

	entries, err := h.leaderboardService.GetStandings(msg.Context(), payload.EventID)
	if err != nil {
		return nil, err
	}

	standings := make([]leaderboardevents.StandingView, len(entries))
	for i, e := range entries {
		standings[i] = leaderboardevents.StandingView{
			UserID:         e.UserID,
			TotalScore:     e.TotalScore,
			GamesCompleted: e.GamesCompleted,
			Rank:           e.Rank,
		}
	}

	response, err := eventutil.NewResultMessage(msg, leaderboardevents.GetStandingsResponsePayload{
		EventID:   payload.EventID,
		Standings: standings,
	})
	if err != nil {
		return nil, err
	}
	return []*message.Message{response}, nil
}
