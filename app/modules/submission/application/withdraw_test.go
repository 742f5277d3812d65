package submissionservice

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	submissionevents "github.com/scorequest/scorequest-backend/app/modules/submission/domain/events"
	submissiondb "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories"
)

func TestWithdrawSubmission(t *testing.T) {
	t.Run("withdraw deletes, publishes, and recomputes", func(t *testing.T) {
		deleted := reviewFixture(submissiondb.StatusApproved, 30)

		repo := NewFakeSubmissionRepo()
		repo.DeleteFunc = func(ctx context.Context, id uuid.UUID) (*submissiondb.Submission, error) {
			return deleted, nil
		}
		bus := NewFakeEventBus()
		trigger := &FakeTrigger{}
		svc := newTestService(repo, bus, trigger)

		got, err := svc.WithdrawSubmission(context.Background(), deleted.ID)
		require.NoError(t, err)
		assert.Equal(t, deleted.ID, got.ID)
		assert.Equal(t, []string{"Delete"}, repo.Trace())
		// The recompute uses the deleted row's event id, not anything the
		// caller supplied.
		assert.Equal(t, []uuid.UUID{deleted.EventID}, trigger.Triggered)
		assert.Len(t, bus.Published[submissionevents.SubmissionWithdrawn], 1)
	})

	t.Run("withdraw of missing submission publishes failure", func(t *testing.T) {
		repo := NewFakeSubmissionRepo()
		bus := NewFakeEventBus()
		trigger := &FakeTrigger{}
		svc := newTestService(repo, bus, trigger)

		_, err := svc.WithdrawSubmission(context.Background(), uuid.New())
		require.ErrorIs(t, err, submissiondb.ErrSubmissionNotFound)
		assert.Empty(t, trigger.Triggered)
		assert.Len(t, bus.Published[submissionevents.OperationFailed], 1)
	})

	t.Run("pending withdrawal still recomputes", func(t *testing.T) {
		deleted := reviewFixture(submissiondb.StatusPending, 5)

		repo := NewFakeSubmissionRepo()
		repo.DeleteFunc = func(ctx context.Context, id uuid.UUID) (*submissiondb.Submission, error) {
			return deleted, nil
		}
		trigger := &FakeTrigger{}
		svc := newTestService(repo, NewFakeEventBus(), trigger)

		_, err := svc.WithdrawSubmission(context.Background(), deleted.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{deleted.EventID}, trigger.Triggered)
	})
}
