package migrate

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrSourceRequired is returned when no source repository is provided
	ErrSourceRequired = errors.New("source repository is required")

	// ErrDestinationRequired is returned when no destination repository is provided
	ErrDestinationRequired = errors.New("destination repository is required")
)
