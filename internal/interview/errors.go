package interview

import (
	"errors"
	"fmt"
)

// Kind categorizes interview errors for propagation to the connection.
type Kind string

const (
	// KindInvalidState marks an operation invoked before required
	// initialization, or an event received in a state that does not accept it.
	KindInvalidState Kind = "invalid_state"
	// KindUpstream marks a failed inference call or a payload missing a
	// required field.
	KindUpstream Kind = "upstream"
	// KindProtocol marks a malformed inbound event.
	KindProtocol Kind = "protocol"
)

// Error is the single error shape surfaced to the connection. All kinds end
// the session; none are retried.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewInvalidState creates an invalid state error.
func NewInvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// NewUpstream creates an upstream error wrapping the inference failure.
func NewUpstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// NewProtocol creates a protocol error for a malformed inbound event.
func NewProtocol(message string) *Error {
	return &Error{Kind: KindProtocol, Message: message}
}

// KindOf returns the kind of the provided error, or an empty kind when the
// error is not an interview error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
