package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when creating a profile with an email that is
// already registered.
var ErrDuplicateEmail = errors.New("email already registered")
