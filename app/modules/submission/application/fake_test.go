package submissionservice

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	submissiondb "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories"
)

// FakeSubmissionRepo provides a programmable stub for submissiondb.SubmissionDB.
type FakeSubmissionRepo struct {
	trace []string

	CreateFunc              func(ctx context.Context, submission *submissiondb.Submission) error
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*submissiondb.Submission, error)
	UpdateReviewFunc        func(ctx context.Context, id uuid.UUID, status submissiondb.SubmissionStatus, score *int, reviewedAt time.Time) (*submissiondb.Submission, *submissiondb.Submission, error)
	DeleteFunc              func(ctx context.Context, id uuid.UUID) (*submissiondb.Submission, error)
	ListByEventFunc         func(ctx context.Context, eventID uuid.UUID, status submissiondb.SubmissionStatus) ([]submissiondb.Submission, error)
	ListApprovedByEventFunc func(ctx context.Context, eventID uuid.UUID) ([]submissiondb.Submission, error)
}

func NewFakeSubmissionRepo() *FakeSubmissionRepo {
	return &FakeSubmissionRepo{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeSubmissionRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeSubmissionRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeSubmissionRepo) Create(ctx context.Context, submission *submissiondb.Submission) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, submission)
	}
	return nil
}

func (f *FakeSubmissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*submissiondb.Submission, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	return nil, submissiondb.ErrSubmissionNotFound
}

func (f *FakeSubmissionRepo) UpdateReview(ctx context.Context, id uuid.UUID, status submissiondb.SubmissionStatus, score *int, reviewedAt time.Time) (*submissiondb.Submission, *submissiondb.Submission, error) {
	f.record("UpdateReview")
	if f.UpdateReviewFunc != nil {
		return f.UpdateReviewFunc(ctx, id, status, score, reviewedAt)
	}
	return nil, nil, submissiondb.ErrSubmissionNotFound
}

func (f *FakeSubmissionRepo) Delete(ctx context.Context, id uuid.UUID) (*submissiondb.Submission, error) {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil, submissiondb.ErrSubmissionNotFound
}

func (f *FakeSubmissionRepo) ListByEvent(ctx context.Context, eventID uuid.UUID, status submissiondb.SubmissionStatus) ([]submissiondb.Submission, error) {
	f.record("ListByEvent")
	if f.ListByEventFunc != nil {
		return f.ListByEventFunc(ctx, eventID, status)
	}
	return nil, nil
}

func (f *FakeSubmissionRepo) ListApprovedByEvent(ctx context.Context, eventID uuid.UUID) ([]submissiondb.Submission, error) {
	f.record("ListApprovedByEvent")
	if f.ListApprovedByEventFunc != nil {
		return f.ListApprovedByEventFunc(ctx, eventID)
	}
	return nil, nil
}

// FakeEventBus records published topics and payloads.
type FakeEventBus struct {
	Published  map[string][]*message.Message
	PublishErr error
}

func NewFakeEventBus() *FakeEventBus {
	return &FakeEventBus{Published: make(map[string][]*message.Message)}
}

func (f *FakeEventBus) Publish(topic string, messages ...*message.Message) error {
	if f.PublishErr != nil {
		return f.PublishErr
	}
	f.Published[topic] = append(f.Published[topic], messages...)
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch := make(chan *message.Message)
	close(ch)
	return ch, nil
}

func (f *FakeEventBus) Close() error { return nil }

// FakeTrigger records recompute trigger calls.
type FakeTrigger struct {
	Triggered  []uuid.UUID
	TriggerErr error
}

func (f *FakeTrigger) TriggerRecompute(ctx context.Context, eventID uuid.UUID) error {
	if f.TriggerErr != nil {
		return f.TriggerErr
	}
	f.Triggered = append(f.Triggered, eventID)
	return nil
}

// noopMetrics satisfies the Metrics interface for tests.
type noopMetrics struct{}

func (noopMetrics) RecordOperationAttempt(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationSuccess(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationFailure(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration) {
}
