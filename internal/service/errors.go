package service

import (
	"errors"
	"fmt"
)

// ValidationError marks failures the client can fix. Handlers render it as a
// 400 with an "errors" body.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func newValidationError(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")

	// ErrForbidden means the caller is authenticated but not allowed to touch
	// the resource, e.g. editing someone else's recipe.
	ErrForbidden = errors.New("forbidden")
)
