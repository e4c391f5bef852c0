package storage

import "errors"

// Sentinel errors returned by Store operations. Callers match them with
// errors.Is to drive form validation messages.
var (
	ErrNotFound    = errors.New("not found")
	ErrExists      = errors.New("already exists")
	ErrSelfLink    = errors.New("cannot link a note to itself")
	ErrLinkExists  = errors.New("link already exists")
	ErrEmptyReason = errors.New("link reason is required")
)
