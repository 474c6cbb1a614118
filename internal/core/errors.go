package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeUnknownSession  = "unknown_session"
	ErrCodeMalformedIntent = "malformed_intent"
	ErrCodeBadRequest      = "bad_request"
)

var (
	// ErrUnknownSession means an intent referenced a session no longer in the
	// world; per policy it is dropped silently.
	ErrUnknownSession = errors.New("unknown session")
	// ErrMalformedIntent means an inbound payload failed shape validation.
	ErrMalformedIntent = errors.New("malformed intent")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}
