package domain

import (
	"errors"
	"fmt"
)

// Closed set of error kinds surfaced to callers. Platform-specific failures
// are translated into one of these exactly once, inside the platform client
// that observed them; services and handlers only match on the results.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrAccountCreation    = errors.New("error creating user account")
	ErrUnexpected         = errors.New("unexpected error")
	ErrBankNotFound       = errors.New("bank account link not found")
	ErrBankAlreadyLinked  = errors.New("bank account already linked")
)

// PlatformError carries an unclassified failure reported by one of the
// external platforms. Code is the HTTP-equivalent status the platform
// returned; Message is its own description, passed through verbatim.
type PlatformError struct {
	Platform string
	Code     int
	Message  string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("%s_ERROR: %s", e.Platform, e.Message)
}

// ValidationError is the field-level variant of PlatformError, raised when a
// platform rejects a request with per-field messages (e.g. a malformed
// customer profile).
type ValidationError struct {
	Platform string
	Message  string
	Fields   map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s_VALIDATION_ERROR: %s", e.Platform, e.Message)
}

// AsPlatformError unwraps err to a *PlatformError when one is present.
func AsPlatformError(err error) (*PlatformError, bool) {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
