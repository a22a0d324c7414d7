package common

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. Handlers map these to HTTP codes; services
// wrap them with fmt.Errorf("...: %w", err) so errors.Is still matches.
var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicate           = errors.New("duplicate entry")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// ContentRejectedError is returned when the classifier declines a tag. It
// carries the classifier's stated reason for the caller to display.
type ContentRejectedError struct {
	Reason string
}

func (e *ContentRejectedError) Error() string {
	return fmt.Sprintf("content rejected: %s", e.Reason)
}

// AsContentRejected unwraps err into a *ContentRejectedError if there is one.
func AsContentRejected(err error) (*ContentRejectedError, bool) {
	var rejected *ContentRejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}
