package question

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a request outcome.
type Kind int

const (
	KindNone Kind = iota
	KindMalformedInput
	KindInvalidValue
	KindNotFound
	KindStoreFailure
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMalformedInput:
		return "malformed_input"
	case KindInvalidValue:
		return "invalid_value"
	case KindNotFound:
		return "not_found"
	case KindStoreFailure:
		return "store_failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Status maps a kind onto its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindNone:
		return http.StatusOK
	case KindMalformedInput:
		return http.StatusBadRequest
	case KindInvalidValue:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a typed core failure. Field names the offending payload key, if any.
type Error struct {
	Kind  Kind
	Field string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func malformed(field, format string, args ...any) *Error {
	return &Error{Kind: KindMalformedInput, Field: field, Err: fmt.Errorf(format, args...)}
}

func invalid(field, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidValue, Field: field, Err: fmt.Errorf(format, args...)}
}

func notFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Err: fmt.Errorf(format, args...)}
}

func storeFailure(op string, err error) *Error {
	return &Error{Kind: KindStoreFailure, Err: fmt.Errorf("%s: %w", op, err)}
}

// KindOf classifies err. Errors that are not core errors are store faults.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStoreFailure
}

// StatusFor returns the HTTP status for err (200 when err is nil).
func StatusFor(err error) int {
	return KindOf(err).Status()
}
