package repository

import (
	"context"
	"time"

	"github.com/payam/backend/internal/model"
)

// SubmissionRepository defines the persistence interface for contact
// submissions. It is defined here (in repository) to avoid an import cycle
// with service.
type SubmissionRepository interface {
	// Save inserts a new submission and populates ID and timestamps.
	Save(ctx context.Context, sub *model.Submission) error

	// List returns submissions ordered and filtered per opts.
	List(ctx context.Context, opts model.SubmissionListOptions) ([]*model.Submission, error)

	// UpdateStatus sets the status and review metadata of one submission.
	// reviewedBy/reviewedAt must both be nil or both be set. Returns
	// ErrNotFound when id does not exist.
	UpdateStatus(ctx context.Context, id string, status model.Status, reviewedBy *string, reviewedAt *time.Time) error
}
