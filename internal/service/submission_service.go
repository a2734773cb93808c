package service

import (
	"context"

	"github.com/payam/backend/internal/model"
)

// SubmissionService defines the business logic for contact submissions and
// the admin review workflow.
type SubmissionService interface {
	// Submit stores a new contact submission as pending. The sub.ID and
	// timestamps will be populated by the implementation.
	Submit(ctx context.Context, sub *model.Submission) error

	// List returns submissions according to the given sort/filter options.
	List(ctx context.Context, opts model.SubmissionListOptions) ([]*model.Submission, error)

	// UpdateStatus transitions one submission. When status is reviewed,
	// reviewed_by is set to actorID and reviewed_at to the current time;
	// when pending, both are cleared.
	UpdateStatus(ctx context.Context, id string, status model.Status, actorID string) error
}
