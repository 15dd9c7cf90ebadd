package domain

import (
	"errors"
)

// Sentinel errors for the failure taxonomy - match with errors.Is().
//
// ErrUnavailable covers outbound collaborator failures (voice provider or
// market-data call); callers degrade the response rather than propagate.
// ErrConfig covers missing credentials, fatal only at session-start time.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrUnavailable = errors.New("service unavailable")
	ErrConfig      = errors.New("configuration missing")
)
