package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/payam/backend/internal/model"
	"github.com/payam/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// mockSubmissionRepository — in-memory stub for testing
// ---------------------------------------------------------------------------

type mockSubmissionRepository struct {
	saveFunc         func(ctx context.Context, sub *model.Submission) error
	listFunc         func(ctx context.Context, opts model.SubmissionListOptions) ([]*model.Submission, error)
	updateStatusFunc func(ctx context.Context, id string, status model.Status, reviewedBy *string, reviewedAt *time.Time) error
}

func (m *mockSubmissionRepository) Save(ctx context.Context, sub *model.Submission) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubmissionRepository) List(ctx context.Context, opts model.SubmissionListOptions) ([]*model.Submission, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockSubmissionRepository) UpdateStatus(ctx context.Context, id string, status model.Status, reviewedBy *string, reviewedAt *time.Time) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status, reviewedBy, reviewedAt)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Submit tests
// ---------------------------------------------------------------------------

func TestSubmissionService_Submit_ForcesPendingStatus(t *testing.T) {
	var saved *model.Submission
	mock := &mockSubmissionRepository{
		saveFunc: func(ctx context.Context, sub *model.Submission) error {
			saved = sub
			return nil
		},
	}
	svc := NewSubmissionService(mock)

	reviewer := "sneaky"
	now := time.Now()
	sub := &model.Submission{
		Name:       "Ali Rezaei",
		Email:      "ali@example.com",
		Subject:    "Hello",
		Message:    "Hi there",
		Status:     model.StatusReviewed,
		ReviewedBy: &reviewer,
		ReviewedAt: &now,
	}
	if err := svc.Submit(context.Background(), sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved == nil {
		t.Fatal("expected Save to be called")
	}
	if saved.Status != model.StatusPending {
		t.Errorf("expected status=pending, got %q", saved.Status)
	}
	if saved.ReviewedBy != nil || saved.ReviewedAt != nil {
		t.Error("expected review metadata to be cleared on submit")
	}
}

func TestSubmissionService_Submit_RepositoryError(t *testing.T) {
	wantErr := errors.New("db down")
	mock := &mockSubmissionRepository{
		saveFunc: func(ctx context.Context, sub *model.Submission) error { return wantErr },
	}
	svc := NewSubmissionService(mock)

	err := svc.Submit(context.Background(), &model.Submission{Email: "a@b.co", Message: "x"})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected repository error to propagate, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateStatus tests
// ---------------------------------------------------------------------------

func TestSubmissionService_UpdateStatus_ReviewedSetsMetadata(t *testing.T) {
	var gotStatus model.Status
	var gotBy *string
	var gotAt *time.Time
	mock := &mockSubmissionRepository{
		updateStatusFunc: func(ctx context.Context, id string, status model.Status, reviewedBy *string, reviewedAt *time.Time) error {
			gotStatus, gotBy, gotAt = status, reviewedBy, reviewedAt
			return nil
		},
	}
	svc := NewSubmissionService(mock)

	if err := svc.UpdateStatus(context.Background(), "sub-1", model.StatusReviewed, "admin-42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotStatus != model.StatusReviewed {
		t.Errorf("expected status=reviewed, got %q", gotStatus)
	}
	if gotBy == nil || *gotBy != "admin-42" {
		t.Errorf("expected reviewed_by=admin-42, got %v", gotBy)
	}
	if gotAt == nil {
		t.Error("expected reviewed_at to be set")
	}
}

// TestSubmissionService_UpdateStatus_PendingClearsMetadata verifies the
// round-trip half: transitioning back to pending nulls both review fields.
func TestSubmissionService_UpdateStatus_PendingClearsMetadata(t *testing.T) {
	var gotBy *string
	var gotAt *time.Time
	mock := &mockSubmissionRepository{
		updateStatusFunc: func(ctx context.Context, id string, status model.Status, reviewedBy *string, reviewedAt *time.Time) error {
			gotBy, gotAt = reviewedBy, reviewedAt
			return nil
		},
	}
	svc := NewSubmissionService(mock)

	if err := svc.UpdateStatus(context.Background(), "sub-1", model.StatusPending, "admin-42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBy != nil {
		t.Errorf("expected reviewed_by=nil, got %v", *gotBy)
	}
	if gotAt != nil {
		t.Errorf("expected reviewed_at=nil, got %v", *gotAt)
	}
}

func TestSubmissionService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	called := false
	mock := &mockSubmissionRepository{
		updateStatusFunc: func(ctx context.Context, id string, status model.Status, reviewedBy *string, reviewedAt *time.Time) error {
			called = true
			return nil
		},
	}
	svc := NewSubmissionService(mock)

	err := svc.UpdateStatus(context.Background(), "sub-1", model.Status("archived"), "admin-42")
	if _, ok := AsValidation(err); !ok {
		t.Errorf("expected validation error, got %v", err)
	}
	if called {
		t.Error("expected repository not to be touched for an invalid status")
	}
}

func TestSubmissionService_UpdateStatus_ReviewedRequiresActor(t *testing.T) {
	svc := NewSubmissionService(&mockSubmissionRepository{})

	err := svc.UpdateStatus(context.Background(), "sub-1", model.StatusReviewed, "")
	if _, ok := AsValidation(err); !ok {
		t.Errorf("expected validation error for missing actor, got %v", err)
	}
}

func TestSubmissionService_UpdateStatus_NotFound(t *testing.T) {
	mock := &mockSubmissionRepository{
		updateStatusFunc: func(ctx context.Context, id string, status model.Status, reviewedBy *string, reviewedAt *time.Time) error {
			return repository.ErrNotFound
		},
	}
	svc := NewSubmissionService(mock)

	err := svc.UpdateStatus(context.Background(), "missing", model.StatusPending, "admin-42")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
