// Package common defines sentinel errors shared across the blocnotes client
// layers. Callers should match these values with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// Auth errors: no owner identity is resolvable, or the persisted
	// session has passed its expiry.
	ErrorUnauthorized   = errors.New("unauthorized")
	ErrorSessionExpired = errors.New("session expired")
)
