package service

import (
	"context"

	"github.com/payam/backend/internal/model"
)

// AuthService defines the business logic for account sign-up and sign-in.
type AuthService interface {
	// SignIn verifies email/password and returns the matching profile.
	// Returns *ValidationError before any store access when the email is
	// malformed or the password empty, and ErrInvalidCredentials when the
	// account is unknown or the password wrong.
	SignIn(ctx context.Context, email, password string) (*model.Profile, error)

	// SignUp creates a new profile. Returns *ValidationError for malformed
	// input and ErrEmailTaken when the email is registered already. It does
	// not create a session.
	SignUp(ctx context.Context, email, password, fullName string) (*model.Profile, error)

	// Profile returns the profile for an authenticated identity, used when
	// restoring a persisted session.
	Profile(ctx context.Context, id string) (*model.Profile, error)
}
