package leaderboarddomain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// ApprovedSubmission is the aggregator's input: one approved submission row.
type ApprovedSubmission struct {
	UserID string
	GameID uuid.UUID
	Score  int
}

// Standing is one participant's computed position within an event.
type Standing struct {
	UserID         string
	TotalScore     int
	GamesCompleted int
	Rank           int
}

// ComputeStandings turns an event's approved submissions into the full
// ordered standing. The result is deterministic for a fixed input set:
// participants are ordered by total score descending, then games completed
// descending, then user id ascending. Ranks are dense 1..N with no sharing;
// tied participants still receive distinct consecutive ranks.
func ComputeStandings(submissions []ApprovedSubmission) []Standing {
	if len(submissions) == 0 {
		return []Standing{}
	}

	type accumulator struct {
		total int
		games map[uuid.UUID]struct{}
	}

	byUser := make(map[string]*accumulator)
	for _, sub := range submissions {
		acc, ok := byUser[sub.UserID]
		if !ok {
			acc = &accumulator{games: make(map[uuid.UUID]struct{})}
			byUser[sub.UserID] = acc
		}
		acc.total += sub.Score
		acc.games[sub.GameID] = struct{}{}
	}

	standings := make([]Standing, 0, len(byUser))
	for userID, acc := range byUser {
		standings = append(standings, Standing{
			UserID:         userID,
			TotalScore:     acc.total,
			GamesCompleted: len(acc.games),
		})
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].TotalScore != standings[j].TotalScore {
			return standings[i].TotalScore > standings[j].TotalScore
		}
		if standings[i].GamesCompleted != standings[j].GamesCompleted {
			return standings[i].GamesCompleted > standings[j].GamesCompleted
		}
		return standings[i].UserID < standings[j].UserID
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings
}

// Fingerprint returns a stable hash of a standing set, used to detect
// unchanged recomputes before publishing update events.
func Fingerprint(standings []Standing) string {
	h := sha256.New()
	for _, s := range standings {
		fmt.Fprintf(h, "%s|%d|%d|%d\n", s.UserID, s.TotalScore, s.GamesCompleted, s.Rank)
	}
	return hex.EncodeToString(h.Sum(nil))
}
