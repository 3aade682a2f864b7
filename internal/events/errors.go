package events

import (
	"errors"
	"fmt"
)

// ErrValidation tags every payload failure, including the date-order
// invariant, for errors.Is mapping at the HTTP boundary.
var ErrValidation = errors.New("invalid event payload")

var (
	ErrTitleRequired     = fmt.Errorf("%w: title is required", ErrValidation)
	ErrTypeRequired      = fmt.Errorf("%w: type is required", ErrValidation)
	ErrStartDateRequired = fmt.Errorf("%w: startDate is required", ErrValidation)
	ErrEndDateRequired   = fmt.Errorf("%w: endDate is required", ErrValidation)
	ErrEndBeforeStart    = fmt.Errorf("%w: startDate must not be after endDate", ErrValidation)

	// ErrRefNotFound tags dangling clientId/serviceId references rejected at
	// creation time.
	ErrRefNotFound        = errors.New("referenced entity not found")
	ErrClientRefNotFound  = fmt.Errorf("%w: client does not exist", ErrRefNotFound)
	ErrServiceRefNotFound = fmt.Errorf("%w: service does not exist", ErrRefNotFound)

	// ErrEventNotFound is returned when no event matches the lookup.
	ErrEventNotFound = errors.New("event not found")
)
