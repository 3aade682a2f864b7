package clients

import (
	"errors"
	"fmt"
)

// ErrValidation tags every required-field failure so handlers can map the
// whole class to one status code with errors.Is.
var ErrValidation = errors.New("invalid client payload")

var (
	ErrNameRequired   = fmt.Errorf("%w: name is required", ErrValidation)
	ErrEmailRequired  = fmt.Errorf("%w: email is required", ErrValidation)
	ErrPhoneRequired  = fmt.Errorf("%w: phone is required", ErrValidation)
	ErrStatusRequired = fmt.Errorf("%w: status is required", ErrValidation)

	// ErrDuplicateEmail is returned when the unique index on email rejects an
	// insert or update.
	ErrDuplicateEmail = errors.New("client with this email already exists")

	// ErrClientNotFound is returned when no client matches the lookup.
	ErrClientNotFound = errors.New("client not found")
)
