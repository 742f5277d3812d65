package submissionhandlers

import (
	"log/slog"

	submissionservice "github.com/scorequest/scorequest-backend/app/modules/submission/application"
)

// SubmissionHandlers handles submission command messages.
type SubmissionHandlers struct {
	submissionService submissionservice.Service
	logger            *slog.Logger
}

// NewSubmissionHandlers creates a new instance of SubmissionHandlers.
func NewSubmissionHandlers(submissionService submissionservice.Service, logger *slog.Logger) Handlers {
	return &SubmissionHandlers{
		submissionService: submissionService,
		logger:            logger,
	}
}
