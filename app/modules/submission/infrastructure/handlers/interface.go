package submissionhandlers

import "github.com/ThreeDotsLabs/watermill/message"

// Handlers defines the interface for submission command handlers. The
// service publishes its own changefeed events, so these handlers produce no
// outgoing messages of their own.
type Handlers interface {
	// HandleSubmitScoreRequested records a new submission.
	HandleSubmitScoreRequested(msg *message.Message) error

	// HandleReviewRequested applies an organizer review decision.
	HandleReviewRequested(msg *message.Message) error

	// HandleWithdrawRequested deletes a submission.
	HandleWithdrawRequested(msg *message.Message) error
}
