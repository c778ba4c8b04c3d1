package store

import "errors"

// Domain-level store error sentinels.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrMissingEmail     = errors.New("email is required")
	ErrMissingLinkID    = errors.New("link id is required")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrConflict         = errors.New("concurrent update, giving up")
)
