// Package common defines shared constants and sentinel errors used across
// client and server layers of userbook. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	ErrStore    = errors.New("store error")

	// Request-level errors.
	ErrValidation    = errors.New("validation error")
	ErrInvalidAction = errors.New("invalid action")

	// Client transport errors.
	ErrUnavailable = errors.New("server unavailable")
)

// Kind is the machine-readable error category reported in the "error"
// field of every failed response envelope.
type Kind string

const (
	KindNone          Kind = ""
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindStore         Kind = "store"
	KindInvalidAction Kind = "invalid_action"
)

// KindOf classifies err. Anything unrecognised is reported as a store
// failure, the only opaque category.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrInvalidAction):
		return KindInvalidAction
	default:
		return KindStore
	}
}

// Err maps a kind received over the wire back to its sentinel.
func (k Kind) Err() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindInvalidAction:
		return ErrInvalidAction
	case KindNone:
		return nil
	default:
		return ErrStore
	}
}
