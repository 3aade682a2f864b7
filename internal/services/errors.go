package services

import (
	"errors"
	"fmt"
)

// ErrValidation tags required-field failures for errors.Is mapping at the
// HTTP boundary.
var ErrValidation = errors.New("invalid service payload")

var (
	ErrNameRequired         = fmt.Errorf("%w: name is required", ErrValidation)
	ErrCategoryRequired     = fmt.Errorf("%w: category is required", ErrValidation)
	ErrBillingModelRequired = fmt.Errorf("%w: billing model is required", ErrValidation)
	ErrNegativePrice        = fmt.Errorf("%w: base price must not be negative", ErrValidation)

	// ErrServiceNotFound is returned when no service matches the lookup.
	ErrServiceNotFound = errors.New("service not found")
)
