package client

import (
	"github.com/dmitrijs2005/userbook/internal/common"
)

// APIError is a failure reported by the server inside the envelope.
type APIError struct {
	Status  int
	Kind    common.Kind
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "request failed"
	}
	return e.Message
}

// Unwrap maps the wire kind back to its sentinel. Failures without a kind,
// such as rate limiting, count as store failures.
func (e *APIError) Unwrap() error {
	if err := e.Kind.Err(); err != nil {
		return err
	}
	return common.ErrStore
}
