package repository

import (
	"context"

	"github.com/payam/backend/internal/model"
)

// ProfileRepository handles persistence for account profiles.
type ProfileRepository interface {
	// Create inserts a new profile and populates ID and timestamps.
	// Returns ErrDuplicateEmail when the email is already registered.
	Create(ctx context.Context, p *model.Profile) error

	// FindByEmail returns the profile with the given email, or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)

	// FindByID returns the profile with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Profile, error)
}
