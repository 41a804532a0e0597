package dac

import (
	"errors"
	"fmt"
)

// Catalog-specific errors.
var (
	// ErrNoInitials indicates the discipline index listed no institute
	// initials, usually a sign the page layout changed.
	ErrNoInitials = errors.New("dac: discipline index listed no institute initials")

	// ErrNoCourses indicates the catalog index listed no programs.
	ErrNoCourses = errors.New("dac: catalog index listed no programs")
)

// StatusError reports a non-OK response from the catalog host.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("dac: unexpected status %d fetching %s", e.StatusCode, e.URL)
}

// IsNotFound checks if the error indicates a missing catalog page.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == 404
	}
	return false
}
