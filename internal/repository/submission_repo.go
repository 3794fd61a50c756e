package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/elevatemedia/invoicer/internal/db"
	"github.com/elevatemedia/invoicer/internal/domain"
)

// SubmissionRepo is a SQLite implementation of SubmissionRepository
type SubmissionRepo struct {
	db *db.DB
}

// NewSubmissionRepo creates a new SubmissionRepo
func NewSubmissionRepo(database *db.DB) *SubmissionRepo {
	return &SubmissionRepo{db: database}
}

// Record inserts a submission outcome into the log
func (r *SubmissionRepo) Record(ctx context.Context, sub *domain.Submission) error {
	query := `
		INSERT INTO submissions (id, client_name, variant, endpoint, recipient, submitted_at, ok, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		sub.ID,
		sub.ClientName,
		string(sub.Variant),
		sub.Endpoint,
		sub.Recipient,
		sub.SubmittedAt.Format(timeLayout),
		sub.OK,
		sub.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}

	return nil
}

// ListRecent returns the most recent submissions, newest first
func (r *SubmissionRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Submission, error) {
	query := `
		SELECT id, client_name, variant, endpoint, recipient, submitted_at, ok, error
		FROM submissions
		ORDER BY submitted_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

// ListByClient returns all submissions for a client, newest first
func (r *SubmissionRepo) ListByClient(ctx context.Context, clientName string) ([]*domain.Submission, error) {
	query := `
		SELECT id, client_name, variant, endpoint, recipient, submitted_at, ok, error
		FROM submissions
		WHERE client_name = ?
		ORDER BY submitted_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, clientName)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

// DeleteAll clears the submission log
func (r *SubmissionRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM submissions"); err != nil {
		return fmt.Errorf("failed to clear submissions: %w", err)
	}
	return nil
}

func scanSubmissions(rows *sql.Rows) ([]*domain.Submission, error) {
	var subs []*domain.Submission
	for rows.Next() {
		sub := &domain.Submission{}
		var variant, submittedAt string

		err := rows.Scan(
			&sub.ID,
			&sub.ClientName,
			&variant,
			&sub.Endpoint,
			&sub.Recipient,
			&submittedAt,
			&sub.OK,
			&sub.Error,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}

		sub.Variant = domain.FormVariant(variant)
		if sub.SubmittedAt, err = parseTime(submittedAt); err != nil {
			return nil, fmt.Errorf("failed to parse submitted_at: %w", err)
		}

		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read submissions: %w", err)
	}

	return subs, nil
}
