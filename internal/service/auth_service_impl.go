package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/payam/backend/internal/model"
	"github.com/payam/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 6
	minFullNameLen = 2
)

// authServiceImpl is the production implementation of AuthService.
type authServiceImpl struct {
	profiles    repository.ProfileRepository
	adminEmails map[string]bool
}

// NewAuthService creates an AuthService backed by the given repository.
// Sign-ups whose email appears in adminEmails are created as administrators.
func NewAuthService(profiles repository.ProfileRepository, adminEmails []string) AuthService {
	set := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		set[strings.ToLower(e)] = true
	}
	return &authServiceImpl{profiles: profiles, adminEmails: set}
}

// SignIn validates inputs locally, then verifies the password against the
// stored bcrypt hash. Unknown email and wrong password both map to
// ErrInvalidCredentials.
func (s *authServiceImpl) SignIn(ctx context.Context, email, password string) (*model.Profile, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !validEmail(email) {
		return nil, &ValidationError{Field: "email", Reason: "malformed email address"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "password required"}
	}

	p, err := s.profiles.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	slog.Info("sign-in", "profile_id", p.ID, "is_admin", p.IsAdmin)
	return p, nil
}

// SignUp validates inputs locally, hashes the password and creates the
// profile. It issues no session; the caller decides what happens next.
func (s *authServiceImpl) SignUp(ctx context.Context, email, password, fullName string) (*model.Profile, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	fullName = strings.TrimSpace(fullName)
	if !validEmail(email) {
		return nil, &ValidationError{Field: "email", Reason: "malformed email address"}
	}
	if len([]rune(password)) < minPasswordLen {
		return nil, &ValidationError{Field: "password", Reason: "password must be at least 6 characters"}
	}
	if len([]rune(fullName)) < minFullNameLen {
		return nil, &ValidationError{Field: "full_name", Reason: "name must be at least 2 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := &model.Profile{
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
		IsAdmin:      s.adminEmails[email],
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	slog.Info("new profile created", "profile_id", p.ID, "is_admin", p.IsAdmin)
	return p, nil
}

// Profile returns the profile behind an authenticated identity.
func (s *authServiceImpl) Profile(ctx context.Context, id string) (*model.Profile, error) {
	return s.profiles.FindByID(ctx, id)
}

// validEmail reports whether addr is a plain well-formed address.
// mail.ParseAddress accepts display names ("A <a@b.c>"); those are rejected.
func validEmail(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}
