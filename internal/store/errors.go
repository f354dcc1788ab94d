package store

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrCapacityExceeded    = errors.New("daily capacity exceeded")
	ErrIdempotencyConflict = errors.New("idempotency key conflict")
)
