package leaderboardservice

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	leaderboarddb "github.com/scorequest/scorequest-backend/app/modules/leaderboard/infrastructure/repositories"
	submissiondb "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories"
)

// FakeLeaderboardRepo provides a programmable stub for leaderboarddb.LeaderboardDB.
type FakeLeaderboardRepo struct {
	trace []string

	// Stored mirrors the materialized table per event when no Func override
	// is set, so recompute tests can assert the replace semantics.
	Stored map[uuid.UUID][]leaderboarddb.LeaderboardEntry

	ReplaceEventStandingsFunc func(ctx context.Context, eventID uuid.UUID, entries []leaderboarddb.LeaderboardEntry) error
	GetEventStandingsFunc     func(ctx context.Context, eventID uuid.UUID) ([]leaderboarddb.LeaderboardEntry, error)
}

func NewFakeLeaderboardRepo() *FakeLeaderboardRepo {
	return &FakeLeaderboardRepo{
		trace:  []string{},
		Stored: make(map[uuid.UUID][]leaderboarddb.LeaderboardEntry),
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeLeaderboardRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeLeaderboardRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeLeaderboardRepo) ReplaceEventStandings(ctx context.Context, eventID uuid.UUID, entries []leaderboarddb.LeaderboardEntry) error {
	f.record("ReplaceEventStandings")
	if f.ReplaceEventStandingsFunc != nil {
		return f.ReplaceEventStandingsFunc(ctx, eventID, entries)
	}
	f.Stored[eventID] = entries
	return nil
}

func (f *FakeLeaderboardRepo) GetEventStandings(ctx context.Context, eventID uuid.UUID) ([]leaderboarddb.LeaderboardEntry, error) {
	f.record("GetEventStandings")
	if f.GetEventStandingsFunc != nil {
		return f.GetEventStandingsFunc(ctx, eventID)
	}
	return f.Stored[eventID], nil
}

// FakeSubmissionSource stubs the approved-submission read.
type FakeSubmissionSource struct {
	Approved map[uuid.UUID][]submissiondb.Submission
	ListErr  error
}

func NewFakeSubmissionSource() *FakeSubmissionSource {
	return &FakeSubmissionSource{Approved: make(map[uuid.UUID][]submissiondb.Submission)}
}

func (f *FakeSubmissionSource) ListApprovedByEvent(ctx context.Context, eventID uuid.UUID) ([]submissiondb.Submission, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Approved[eventID], nil
}

// FakeEventBus records published topics and payloads.
type FakeEventBus struct {
	Published map[string][]*message.Message
}

func NewFakeEventBus() *FakeEventBus {
	return &FakeEventBus{Published: make(map[string][]*message.Message)}
}

func (f *FakeEventBus) Publish(topic string, messages ...*message.Message) error {
	f.Published[topic] = append(f.Published[topic], messages...)
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch := make(chan *message.Message)
	close(ch)
	return ch, nil
}

func (f *FakeEventBus) Close() error { return nil }

// noopMetrics satisfies the Metrics interface for tests.
type noopMetrics struct{}

func (noopMetrics) RecordOperationAttempt(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationSuccess(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationFailure(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration) {
}
