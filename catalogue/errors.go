package catalogue

import "errors"

var (
	// ErrPageLimit is returned when a category listing keeps yielding pages past the configured bound.
	ErrPageLimit = errors.New("listing page limit exceeded")

	// ErrNotFound is returned when an addressed entity does not exist in the catalogue.
	ErrNotFound = errors.New("not found")
)
