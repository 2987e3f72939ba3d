package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Store errors
	ErrStoreUnavailable = fmt.Errorf("store unavailable")
	ErrPersistence      = fmt.Errorf("persistence failed")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrTrackNotFound    = fmt.Errorf("track not found")

	// Input validation errors
	ErrValidation  = fmt.Errorf("invalid input")
	ErrBulkLimit   = fmt.Errorf("%w: bulk selection limit exceeded", ErrValidation)
	ErrInvalidFlag = fmt.Errorf("invalid flag value")
)
