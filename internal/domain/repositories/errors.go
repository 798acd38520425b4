package repositories

import "errors"

// Not-found lookups are unrecoverable caller errors for the request that
// issued them; services wrap these with the offending identifier.
var (
	ErrSessionNotFound = errors.New("imaging session not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrScanNotFound    = errors.New("scan not found")
)
