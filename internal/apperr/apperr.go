// Package apperr carries the error kinds the engine surfaces to its callers.
// Handlers map kinds to HTTP statuses; nothing below the handler layer knows
// about status codes.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindConflict
	KindRateLimited
	KindUnavailable
)

// Error is the one error shape crossing layer boundaries. Entity is set for
// KindNotFound and names the nesting depth where resolution failed
// ("post", "comment", "reply" or "user").
type Error struct {
	Kind    Kind
	Entity  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NotFound(entity string) error {
	return &Error{Kind: KindNotFound, Entity: entity, Message: entity + " not found"}
}

func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

func RateLimited(msg string) error {
	return &Error{Kind: KindRateLimited, Message: msg}
}

// Unavailable wraps a persistence-layer failure (connectivity, timeout).
// The engine never retries these; retry policy belongs to the caller.
func Unavailable(err error) error {
	return &Error{Kind: KindUnavailable, Message: "storage unavailable", Err: err}
}

// KindOf reports the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a NotFound for the given entity.
func IsNotFound(err error, entity string) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == KindNotFound && ae.Entity == entity
}
