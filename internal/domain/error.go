package domain

import (
	"errors"
	"fmt"
)

var (
	// Common domain errors
	ErrNotFound          = errors.New("entity not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrCredentialMissing = errors.New("credential not configured")
	ErrTableUnknown      = errors.New("unknown table")
	ErrPollDeadline      = errors.New("job did not reach a terminal state in time")
	ErrBusy              = errors.New("too many jobs in flight")
	ErrRateLimited       = errors.New("rate limit exceeded")
)

// VendorError carries a vendor's HTTP status code and message text so the
// caller can surface them verbatim. Never retried.
type VendorError struct {
	Vendor  string
	Status  int
	Message string
}

func (e *VendorError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s error %d: %s", e.Vendor, e.Status, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Vendor, e.Message)
}
