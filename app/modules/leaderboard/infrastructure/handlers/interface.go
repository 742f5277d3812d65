package leaderboardhandlers

import "github.com/ThreeDotsLabs/watermill/message"

// Handlers defines the interface for leaderboard message handlers.
type Handlers interface {
	// HandleRecomputeRequested enqueues a recompute for an explicit request.
	HandleRecomputeRequested(msg *message.Message) error

	// HandleSubmissionChanged enqueues a recompute whenever the submission
	// changefeed reports a write to an event's submissions.
	HandleSubmissionChanged(msg *message.Message) error

	// HandleGetStandingsRequested answers a standings query with a response
	// message.
	HandleGetStandingsRequested(msg *message.Message) ([]*message.Message, error)
}
