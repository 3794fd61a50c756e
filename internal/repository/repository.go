package repository

import (
	"context"

	"github.com/elevatemedia/invoicer/internal/domain"
)

// SubmissionRepository manages the invoice submission log
type SubmissionRepository interface {
	Record(ctx context.Context, sub *domain.Submission) error
	ListRecent(ctx context.Context, limit int) ([]*domain.Submission, error)
	ListByClient(ctx context.Context, clientName string) ([]*domain.Submission, error)
	DeleteAll(ctx context.Context) error
}
