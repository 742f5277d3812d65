package leaderboardservice

import (
	"context"

	"github.com/google/uuid"

	leaderboarddomain "github.com/scorequest/scorequest-backend/app/modules/leaderboard/domain"
	leaderboarddb "github.com/scorequest/scorequest-backend/app/modules/leaderboard/infrastructure/repositories"
	submissiondb "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories"
)

// Service defines the business operations of the leaderboard module.
type Service interface {
	RecomputeEvent(ctx context.Context, eventID uuid.UUID) ([]leaderboarddomain.Standing, error)
	GetStandings(ctx context.Context, eventID uuid.UUID) ([]leaderboarddb.LeaderboardEntry, error)
	ExportStandingsXLSX(ctx context.Context, eventID uuid.UUID) ([]byte, error)
	RenderStandingsChart(ctx context.Context, eventID uuid.UUID) ([]byte, error)
}

// SubmissionSource is the slice of the submission store the aggregator reads.
type SubmissionSource interface {
	ListApprovedByEvent(ctx context.Context, eventID uuid.UUID) ([]submissiondb.Submission, error)
}
