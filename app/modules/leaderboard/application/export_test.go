package leaderboardservice

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	leaderboarddb "github.com/scorequest/scorequest-backend/app/modules/leaderboard/infrastructure/repositories"
)

func seededRepo(eventID uuid.UUID) *FakeLeaderboardRepo {
	repo := NewFakeLeaderboardRepo()
	repo.Stored[eventID] = []leaderboarddb.LeaderboardEntry{
		{EventID: eventID, UserID: "alice", TotalScore: 50, GamesCompleted: 2, Rank: 1},
		{EventID: eventID, UserID: "bob", TotalScore: 20, GamesCompleted: 1, Rank: 2},
	}
	return repo
}

func TestExportStandingsXLSX(t *testing.T) {
	eventID := uuid.New()
	svc := newTestService(seededRepo(eventID), NewFakeSubmissionSource(), NewFakeEventBus())

	data, err := svc.ExportStandingsXLSX(context.Background(), eventID)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Leaderboard")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Rank", "User", "Total Score", "Games Completed"}, rows[0])
	assert.Equal(t, []string{"1", "alice", "50", "2"}, rows[1])
	assert.Equal(t, []string{"2", "bob", "20", "1"}, rows[2])
}

func TestExportStandingsXLSXEmptyEvent(t *testing.T) {
	svc := newTestService(NewFakeLeaderboardRepo(), NewFakeSubmissionSource(), NewFakeEventBus())

	data, err := svc.ExportStandingsXLSX(context.Background(), uuid.New())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Leaderboard")
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}

func TestRenderStandingsChart(t *testing.T) {
	eventID := uuid.New()
	svc := newTestService(seededRepo(eventID), NewFakeSubmissionSource(), NewFakeEventBus())

	data, err := svc.RenderStandingsChart(context.Background(), eventID)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}

func TestRenderStandingsChartEmptyEvent(t *testing.T) {
	svc := newTestService(NewFakeLeaderboardRepo(), NewFakeSubmissionSource(), NewFakeEventBus())

	_, err := svc.RenderStandingsChart(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrNoStandings)
}
