package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInternal           = errors.New("internal error")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("invalid or expired token")
	ErrConflict           = errors.New("conflict")
)

// Error is a domain error with a message that is safe to show to clients.
// Kind is one of the sentinels above and is what errors.Is matches against.
type Error struct {
	Kind   error
	Msg    string
	Fields map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Msg
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Msg + " (" + strings.Join(parts, "; ") + ")"
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NewInvalidArgument(msg string) error {
	return &Error{Kind: ErrInvalidArgument, Msg: msg}
}

// NewValidation reports a rejected input with one message per offending field.
func NewValidation(msg string, fields map[string]string) error {
	return &Error{Kind: ErrInvalidArgument, Msg: msg, Fields: fields}
}

func NewNotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

func NewAlreadyExists(msg string) error {
	return &Error{Kind: ErrAlreadyExists, Msg: msg}
}

func NewConflict(msg string) error {
	return &Error{Kind: ErrConflict, Msg: msg}
}

func WrapInternal(err error, context string) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, context, err)
}

// Message returns the client-facing text of err and whether err carried one.
func Message(err error) (string, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Msg, true
	}
	return "", false
}

// Fields returns per-field validation messages carried by err, if any.
func Fields(err error) map[string]string {
	var de *Error
	if errors.As(err, &de) {
		return de.Fields
	}
	return nil
}

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
