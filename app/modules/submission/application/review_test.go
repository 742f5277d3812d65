package submissionservice

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	submissionevents "github.com/scorequest/scorequest-backend/app/modules/submission/domain/events"
	submissiondb "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories"
)

func reviewFixture(status submissiondb.SubmissionStatus, score int) *submissiondb.Submission {
	return &submissiondb.Submission{
		ID:      uuid.New(),
		GameID:  uuid.New(),
		UserID:  "alice",
		EventID: uuid.New(),
		Score:   score,
		Status:  status,
	}
}

func TestReviewSubmission(t *testing.T) {
	tests := []struct {
		name          string
		oldStatus     submissiondb.SubmissionStatus
		oldScore      int
		newStatus     submissiondb.SubmissionStatus
		newScore      *int
		wantRecompute bool
	}{
		{
			name:          "approval triggers recompute",
			oldStatus:     submissiondb.StatusPending,
			oldScore:      10,
			newStatus:     submissiondb.StatusApproved,
			wantRecompute: true,
		},
		{
			name:          "revoking approval triggers recompute",
			oldStatus:     submissiondb.StatusApproved,
			oldScore:      10,
			newStatus:     submissiondb.StatusRejected,
			wantRecompute: true,
		},
		{
			name:          "rejecting a pending submission does not recompute",
			oldStatus:     submissiondb.StatusPending,
			oldScore:      10,
			newStatus:     submissiondb.StatusRejected,
			wantRecompute: false,
		},
		{
			name:          "flagging a pending submission does not recompute",
			oldStatus:     submissiondb.StatusPending,
			oldScore:      10,
			newStatus:     submissiondb.StatusFlagged,
			wantRecompute: false,
		},
		{
			name:          "score correction on approved submission recomputes",
			oldStatus:     submissiondb.StatusApproved,
			oldScore:      10,
			newStatus:     submissiondb.StatusApproved,
			newScore:      intPtr(15),
			wantRecompute: true,
		},
		{
			name:          "unchanged approved score does not recompute",
			oldStatus:     submissiondb.StatusApproved,
			oldScore:      10,
			newStatus:     submissiondb.StatusApproved,
			newScore:      intPtr(10),
			wantRecompute: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := reviewFixture(tt.oldStatus, tt.oldScore)

			repo := NewFakeSubmissionRepo()
			repo.UpdateReviewFunc = func(ctx context.Context, id uuid.UUID, status submissiondb.SubmissionStatus, score *int, reviewedAt time.Time) (*submissiondb.Submission, *submissiondb.Submission, error) {
				updated := *old
				updated.Status = status
				if score != nil {
					updated.Score = *score
				}
				updated.ReviewedAt = reviewedAt
				return old, &updated, nil
			}
			bus := NewFakeEventBus()
			trigger := &FakeTrigger{}
			svc := newTestService(repo, bus, trigger)

			got, err := svc.ReviewSubmission(context.Background(), old.ID, tt.newStatus, tt.newScore)
			require.NoError(t, err)
			assert.Equal(t, tt.newStatus, got.Status)
			assert.Len(t, bus.Published[submissionevents.SubmissionReviewed], 1)

			if tt.wantRecompute {
				assert.Equal(t, []uuid.UUID{old.EventID}, trigger.Triggered)
			} else {
				assert.Empty(t, trigger.Triggered)
			}
		})
	}
}

func TestReviewSubmissionValidation(t *testing.T) {
	svc := newTestService(NewFakeSubmissionRepo(), NewFakeEventBus(), &FakeTrigger{})

	_, err := svc.ReviewSubmission(context.Background(), uuid.New(), "bogus", nil)
	require.Error(t, err)

	_, err = svc.ReviewSubmission(context.Background(), uuid.New(), submissiondb.StatusApproved, intPtr(-5))
	require.Error(t, err)
}

func TestReviewSubmissionNotFound(t *testing.T) {
	repo := NewFakeSubmissionRepo()
	bus := NewFakeEventBus()
	trigger := &FakeTrigger{}
	svc := newTestService(repo, bus, trigger)

	_, err := svc.ReviewSubmission(context.Background(), uuid.New(), submissiondb.StatusApproved, nil)
	require.ErrorIs(t, err, submissiondb.ErrSubmissionNotFound)
	assert.Len(t, bus.Published[submissionevents.OperationFailed], 1)
	assert.Empty(t, trigger.Triggered)
}

func intPtr(v int) *int { return &v }
