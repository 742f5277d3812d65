package leaderboardservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	leaderboarddomain "github.com/scorequest/scorequest-backend/app/modules/leaderboard/domain"
	leaderboardevents "github.com/scorequest/scorequest-backend/app/modules/leaderboard/domain/events"
	leaderboarddb "github.com/scorequest/scorequest-backend/app/modules/leaderboard/infrastructure/repositories"
)

// RecomputeEvent rebuilds an event's standings from its complete approved
// submission set and atomically replaces the materialized leaderboard. The
// operation is idempotent: recomputing an unchanged event writes the same
// rows and publishes no update.
func (s *LeaderboardService) RecomputeEvent(ctx context.Context, eventID uuid.UUID) ([]leaderboarddomain.Standing, error) {
	return withTelemetry(s, ctx, "RecomputeEvent", func(ctx context.Context) ([]leaderboarddomain.Standing, error) {
		approved, err := s.submissions.ListApprovedByEvent(ctx, eventID)
		if err != nil {
			s.publish(ctx, leaderboardevents.OperationFailed, leaderboardevents.OperationFailedPayload{
				EventID: eventID,
				Reason:  err.Error(),
			})
			return nil, err
		}

		input := make([]leaderboarddomain.ApprovedSubmission, len(approved))
		for i, sub := range approved {
			input[i] = leaderboarddomain.ApprovedSubmission{
				UserID: sub.UserID,
				GameID: sub.GameID,
				Score:  sub.Score,
			}
		}

		standings := leaderboarddomain.ComputeStandings(input)

		previous, err := s.repo.GetEventStandings(ctx, eventID)
		if err != nil {
			s.publish(ctx, leaderboardevents.OperationFailed, leaderboardevents.OperationFailedPayload{
				EventID: eventID,
				Reason:  err.Error(),
			})
			return nil, err
		}
		// The unchanged check reads outside the replace transaction, so a
		// concurrent recompute of the same event can suppress or duplicate
		// an update event. The materialized rows themselves stay correct.
		unchanged := standingsEqual(previous, standings)

		now := time.Now().UTC()
		entries := make([]leaderboarddb.LeaderboardEntry, len(standings))
		for i, st := range standings {
			entries[i] = leaderboarddb.LeaderboardEntry{
				EventID:        eventID,
				UserID:         st.UserID,
				TotalScore:     st.TotalScore,
				GamesCompleted: st.GamesCompleted,
				Rank:           st.Rank,
				LastUpdated:    now,
			}
		}

		if err := s.repo.ReplaceEventStandings(ctx, eventID, entries); err != nil {
			s.publish(ctx, leaderboardevents.OperationFailed, leaderboardevents.OperationFailedPayload{
				EventID: eventID,
				Reason:  err.Error(),
			})
			return nil, err
		}

		s.logger.InfoContext(ctx, "Recomputed event standings",
			slog.String("event_id", eventID.String()),
			slog.Int("participants", len(standings)),
			slog.Bool("unchanged", unchanged),
		)

		if !unchanged {
			s.publish(ctx, leaderboardevents.LeaderboardUpdated, leaderboardevents.LeaderboardUpdatedPayload{
				EventID:      eventID,
				Standings:    toStandingViews(standings),
				Participants: len(standings),
				ComputedAt:   now,
			})
		}

		return standings, nil
	})
}

func standingsEqual(previous []leaderboarddb.LeaderboardEntry, computed []leaderboarddomain.Standing) bool {
	if len(previous) != len(computed) {
		return false
	}
	prior := make([]leaderboarddomain.Standing, len(previous))
	for i, e := range previous {
		prior[i] = leaderboarddomain.Standing{
			UserID:         e.UserID,
			TotalScore:     e.TotalScore,
			GamesCompleted: e.GamesCompleted,
			Rank:           e.Rank,
		}
	}
	return leaderboarddomain.Fingerprint(prior) == leaderboarddomain.Fingerprint(computed)
}

func toStandingViews(standings []leaderboarddomain.Standing) []leaderboardevents.StandingView {
	views := make([]leaderboardevents.StandingView, len(standings))
	for i, st := range standings {
		views[i] = leaderboardevents.StandingView{
			UserID:         st.UserID,
			TotalScore:     st.TotalScore,
			GamesCompleted: st.GamesCompleted,
			Rank:           st.Rank,
		}
	}
	return views
}
