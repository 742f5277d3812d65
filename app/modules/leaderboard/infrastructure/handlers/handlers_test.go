package leaderboardhandlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leaderboardservice "github.com/scorequest/scorequest-backend/app/modules/leaderboard/application"
	leaderboarddomain "github.com/scorequest/scorequest-backend/app/modules/leaderboard/domain"
	leaderboardevents "github.com/scorequest/scorequest-backend/app/modules/leaderboard/domain/events"
	leaderboarddb "github.com/scorequest/scorequest-backend/app/modules/leaderboard/infrastructure/repositories"
)

type fakeEnqueuer struct {
	enqueued []uuid.UUID
	err      error
}

func (f *fakeEnqueuer) EnqueueRecompute(ctx context.Context, eventID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, eventID)
	return nil
}

type fakeService struct {
	standings []leaderboarddb.LeaderboardEntry
	err       error
}

func (f *fakeService) RecomputeEvent(ctx context.Context, eventID uuid.UUID) ([]leaderboarddomain.Standing, error) {
	return nil, f.err
}

func (f *fakeService) GetStandings(ctx context.Context, eventID uuid.UUID) ([]leaderboarddb.LeaderboardEntry, error) {
	return f.standings, f.err
}

func (f *fakeService) ExportStandingsXLSX(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	return nil, f.err
}

func (f *fakeService) RenderStandingsChart(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	return nil, f.err
}

func testHandlers(svc leaderboardservice.Service, enq Enqueuer) Handlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLeaderboardHandlers(svc, enq, logger)
}

func jsonMessage(t *testing.T, payload any) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), data)
}

func TestHandleRecomputeRequested(t *testing.T) {
	eventID := uuid.New()
	enq := &fakeEnqueuer{}
	h := testHandlers(&fakeService{}, enq)

	msg := jsonMessage(t, leaderboardevents.RecomputeRequestedPayload{EventID: eventID, Reason: "manual"})
	require.NoError(t, h.HandleRecomputeRequested(msg))
	assert.Equal(t, []uuid.UUID{eventID}, enq.enqueued)
}

func TestHandleRecomputeRequestedMalformed(t *testing.T) {
	enq := &fakeEnqueuer{}
	h := testHandlers(&fakeService{}, enq)

	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	// Malformed payloads are dropped, not retried.
	require.NoError(t, h.HandleRecomputeRequested(msg))
	assert.Empty(t, enq.enqueued)
}

func TestHandleSubmissionChanged(t *testing.T) {
	eventID := uuid.New()
	enq := &fakeEnqueuer{}
	h := testHandlers(&fakeService{}, enq)

	// Any changefeed payload carrying an event_id queues a recompute.
	msg := jsonMessage(t, map[string]any{
		"submission_id": uuid.New(),
		"event_id":      eventID,
		"user_id":       "alice",
	})
	require.NoError(t, h.HandleSubmissionChanged(msg))
	assert.Equal(t, []uuid.UUID{eventID}, enq.enqueued)
}

func TestHandleSubmissionChangedMissingEventID(t *testing.T) {
	enq := &fakeEnqueuer{}
	h := testHandlers(&fakeService{}, enq)

	msg := jsonMessage(t, map[string]any{"user_id": "alice"})
	require.NoError(t, h.HandleSubmissionChanged(msg))
	assert.Empty(t, enq.enqueued)
}

func TestHandleGetStandingsRequested(t *testing.T) {
	eventID := uuid.New()
	svc := &fakeService{
		standings: []leaderboarddb.LeaderboardEntry{
			{EventID: eventID, UserID: "alice", TotalScore: 50, GamesCompleted: 2, Rank: 1},
		},
	}
	h := testHandlers(svc, &fakeEnqueuer{})

	msg := jsonMessage(t, leaderboardevents.GetStandingsRequestedPayload{EventID: eventID})
	out, err := h.HandleGetStandingsRequested(msg)
	require.NoError(t, err)
	require.Len(t, out, 1)

	var resp leaderboardevents.GetStandingsResponsePayload
	require.NoError(t, json.Unmarshal(out[0].Payload, &resp))
	assert.Equal(t, eventID, resp.EventID)
	require.Len(t, resp.Standings, 1)
	assert.Equal(t, "alice", resp.Standings[0].UserID)
	assert.Equal(t, 1, resp.Standings[0].Rank)
}

func TestHandleGetStandingsRequestedServiceError(t *testing.T) {
	h := testHandlers(&fakeService{err: assert.AnError}, &fakeEnqueuer{})

	msg := jsonMessage(t, leaderboardevents.GetStandingsRequestedPayload{EventID: uuid.New()})
	_, err := h.HandleGetStandingsRequested(msg)
	require.ErrorIs(t, err, assert.AnError)
}
