package service

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned by SignIn when the email is unknown or
// the password does not match. The two cases are deliberately not
// distinguished.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken is returned by SignUp when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// ValidationError reports a locally-rejected input before any remote call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// AsValidation returns the ValidationError wrapped in err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
