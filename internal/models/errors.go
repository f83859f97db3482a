package models

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for upstream classifications. Each one maps to a distinct
// HTTP status in the handlers, so they must never be collapsed into a
// generic error on the way up.
var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrNotFound        = errors.New("user not found")
	ErrForbidden       = errors.New("access forbidden")
	ErrMalformed       = errors.New("malformed upstream response")
)

// RateLimitedError is returned when GitHub reports an exhausted quota.
// ResetAt tells the caller when a retry can succeed.
type RateLimitedError struct {
	ResetAt time.Time
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// RateInfo carries the residual quota observed on an upstream call.
type RateInfo struct {
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
}
