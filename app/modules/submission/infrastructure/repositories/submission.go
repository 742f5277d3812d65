package submissiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

const pgUniqueViolation = "23505"

// SubmissionDBImpl handles database operations for submissions.
type SubmissionDBImpl struct {
	DB *bun.DB
}

var _ SubmissionDB = (*SubmissionDBImpl)(nil)

// Create inserts a new submission, enforcing the (game_id, user_id)
// uniqueness via the table's unique index.
func (db *SubmissionDBImpl) Create(ctx context.Context, submission *Submission) error {
	_, err := db.DB.NewInsert().Model(submission).Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.Field('C') == pgUniqueViolation {
			return ErrDuplicateSubmission
		}
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

// GetByID fetches a single submission.
func (db *SubmissionDBImpl) GetByID(ctx context.Context, id uuid.UUID) (*Submission, error) {
	submission := new(Submission)
	err := db.DB.NewSelect().
		Model(submission).
		Where("s.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return submission, nil
}

// UpdateReview applies a status (and optionally score) change inside one
// transaction and returns the row before and after the transition.
func (db *SubmissionDBImpl) UpdateReview(ctx context.Context, id uuid.UUID, status SubmissionStatus, score *int, reviewedAt time.Time) (*Submission, *Submission, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	old := new(Submission)
	err = tx.NewSelect().
		Model(old).
		Where("s.id = ?", id).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrSubmissionNotFound
		}
		return nil, nil, fmt.Errorf("failed to fetch submission for review: %w", err)
	}

	updated := *old
	updated.Status = status
	if score != nil {
		updated.Score = *score
	}
	updated.ReviewedAt = reviewedAt
	updated.UpdatedAt = reviewedAt

	_, err = tx.NewUpdate().
		Model(&updated).
		Column("status", "score", "reviewed_at", "updated_at").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update submission review: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit review transaction: %w", err)
	}

	return old, &updated, nil
}

// Delete removes a submission and returns the deleted row.
func (db *SubmissionDBImpl) Delete(ctx context.Context, id uuid.UUID) (*Submission, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deleted := new(Submission)
	err = tx.NewSelect().
		Model(deleted).
		Where("s.id = ?", id).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to fetch submission for delete: %w", err)
	}

	_, err = tx.NewDelete().
		Model((*Submission)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to delete submission: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit delete transaction: %w", err)
	}

	return deleted, nil
}

// ListByEvent returns submissions for an event, newest first. An empty status
// returns all of them.
func (db *SubmissionDBImpl) ListByEvent(ctx context.Context, eventID uuid.UUID, status SubmissionStatus) ([]Submission, error) {
	var submissions []Submission
	q := db.DB.NewSelect().
		Model(&submissions).
		Where("s.event_id = ?", eventID).
		Order("submitted_at DESC")
	if status != "" {
		q = q.Where("s.status = ?", status)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list submissions for event %s: %w", eventID, err)
	}
	return submissions, nil
}

// ListApprovedByEvent returns the aggregator's input set for one event.
func (db *SubmissionDBImpl) ListApprovedByEvent(ctx context.Context, eventID uuid.UUID) ([]Submission, error) {
	var submissions []Submission
	err := db.DB.NewSelect().
		Model(&submissions).
		Where("s.event_id = ?", eventID).
		Where("s.status = ?", StatusApproved).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved submissions for event %s: %w", eventID, err)
	}
	return submissions, nil
}
