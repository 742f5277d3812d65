package leaderboardqueue

import (
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// RecomputeArgs is the payload of a queued leaderboard recompute.
type RecomputeArgs struct {
	EventID uuid.UUID `json:"event_id"`
}

func (RecomputeArgs) Kind() string { return "leaderboard_recompute" }

// InsertOpts coalesces pending recomputes: while a job for an event is
// waiting or running, further inserts for the same event are no-ops. The
// state list must exclude completed and discarded, or an event's finished
// job would block new enqueues until the job cleaner removes it.
func (RecomputeArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRetryable,
				rivertype.JobStateRunning,
				rivertype.JobStateScheduled,
			},
		},
	}
}
