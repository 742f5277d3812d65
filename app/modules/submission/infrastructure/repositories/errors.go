package submissiondb

import "errors"

// Sentinel errors for the repository layer.
// These are infrastructure-level errors that indicate database state, not business logic failures.
var (
	// ErrSubmissionNotFound indicates the requested submission does not exist.
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrDuplicateSubmission indicates the (game_id, user_id) pair already
	// has a submission; each participant gets at most one per game.
	ErrDuplicateSubmission = errors.New("submission already exists for this game and user")
)
