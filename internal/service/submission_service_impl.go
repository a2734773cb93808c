package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/payam/backend/internal/model"
	"github.com/payam/backend/internal/repository"
)

// submissionServiceImpl is the production implementation of SubmissionService.
type submissionServiceImpl struct {
	repo repository.SubmissionRepository
	now  func() time.Time
}

// NewSubmissionService creates a SubmissionService backed by the given repository.
func NewSubmissionService(repo repository.SubmissionRepository) SubmissionService {
	return &submissionServiceImpl{repo: repo, now: time.Now}
}

// Submit stores a new submission. Status is forced to pending and
// review metadata left empty regardless of what the caller set.
func (s *submissionServiceImpl) Submit(ctx context.Context, sub *model.Submission) error {
	sub.Status = model.StatusPending
	sub.ReviewedBy = nil
	sub.ReviewedAt = nil
	return s.repo.Save(ctx, sub)
}

// List returns submissions according to the given sort/filter options.
func (s *submissionServiceImpl) List(ctx context.Context, opts model.SubmissionListOptions) ([]*model.Submission, error) {
	return s.repo.List(ctx, opts)
}

// UpdateStatus transitions one submission and keeps the review-metadata
// invariant: reviewed_by/reviewed_at are set iff status is reviewed.
func (s *submissionServiceImpl) UpdateStatus(ctx context.Context, id string, status model.Status, actorID string) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}

	var reviewedBy *string
	var reviewedAt *time.Time
	if status == model.StatusReviewed {
		if actorID == "" {
			return &ValidationError{Field: "actor", Reason: "reviewer identity required"}
		}
		now := s.now().UTC()
		reviewedBy = &actorID
		reviewedAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, id, status, reviewedBy, reviewedAt); err != nil {
		return err
	}
	slog.Info("submission status updated", "submission_id", id, "status", status, "actor", actorID)
	return nil
}
