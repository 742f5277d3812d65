package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leaderboardservice "github.com/scorequest/scorequest-backend/app/modules/leaderboard/application"
	leaderboarddomain "github.com/scorequest/scorequest-backend/app/modules/leaderboard/domain"
	leaderboarddb "github.com/scorequest/scorequest-backend/app/modules/leaderboard/infrastructure/repositories"
	"github.com/scorequest/scorequest-backend/config"
)

type fakeLeaderboardService struct {
	standings []leaderboarddb.LeaderboardEntry
	xlsx      []byte
	chart     []byte
	err       error
}

func (f *fakeLeaderboardService) RecomputeEvent(ctx context.Context, eventID uuid.UUID) ([]leaderboarddomain.Standing, error) {
	return nil, f.err
}

func (f *fakeLeaderboardService) GetStandings(ctx context.Context, eventID uuid.UUID) ([]leaderboarddb.LeaderboardEntry, error) {
	return f.standings, f.err
}

func (f *fakeLeaderboardService) ExportStandingsXLSX(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	return f.xlsx, f.err
}

func (f *fakeLeaderboardService) RenderStandingsChart(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.chart, nil
}

func testServer(svc leaderboardservice.Service) *Server {
	cfg := &config.Config{}
	cfg.HTTP.Addr = ":0"
	cfg.HTTP.PublicRateLimit = 1000
	cfg.HTTP.PublicRateBurst = 1000
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(cfg, svc, nil, logger)
}

func TestGetLeaderboard(t *testing.T) {
	eventID := uuid.New()
	svc := &fakeLeaderboardService{
		standings: []leaderboarddb.LeaderboardEntry{
			{EventID: eventID, UserID: "alice", TotalScore: 50, GamesCompleted: 2, Rank: 1},
			{EventID: eventID, UserID: "bob", TotalScore: 20, GamesCompleted: 1, Rank: 2},
		},
	}
	srv := testServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/events/"+eventID.String()+"/leaderboard", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp leaderboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, eventID, resp.EventID)
	require.Len(t, resp.Standings, 2)
	assert.Equal(t, "alice", resp.Standings[0].UserID)
	assert.Equal(t, 1, resp.Standings[0].Rank)
}

func TestGetLeaderboardEmptyEvent(t *testing.T) {
	srv := testServer(&fakeLeaderboardService{})

	req := httptest.NewRequest(http.MethodGet, "/api/events/"+uuid.NewString()+"/leaderboard", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	// An unknown event is an empty leaderboard, not an error.
	require.Equal(t, http.StatusOK, rec.Code)

	var resp leaderboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Standings)
}

func TestGetLeaderboardInvalidEventID(t *testing.T) {
	srv := testServer(&fakeLeaderboardService{})

	req := httptest.NewRequest(http.MethodGet, "/api/events/not-a-uuid/leaderboard", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportLeaderboard(t *testing.T) {
	srv := testServer(&fakeLeaderboardService{xlsx: []byte("PK workbook")})

	req := httptest.NewRequest(http.MethodGet, "/api/events/"+uuid.NewString()+"/leaderboard.xlsx", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
}

func TestLeaderboardChartNoStandings(t *testing.T) {
	srv := testServer(&fakeLeaderboardService{err: leaderboardservice.ErrNoStandings})

	req := httptest.NewRequest(http.MethodGet, "/api/events/"+uuid.NewString()+"/leaderboard/chart.png", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	srv := testServer(&fakeLeaderboardService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiting(t *testing.T) {
	cfg := &config.Config{}
	cfg.HTTP.Addr = ":0"
	cfg.HTTP.PublicRateLimit = 1
	cfg.HTTP.PublicRateBurst = 2
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := NewServer(cfg, &fakeLeaderboardService{}, nil, logger)

	url := "/api/events/" + uuid.NewString() + "/leaderboard"
	var lastCode int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		srv.httpServer.Handler.ServeHTTP(rec, req)
		lastCode = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)

	// A different client keeps its own budget.
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
