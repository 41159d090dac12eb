package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies expected, caller-recoverable failures.
type ErrorKind string

const (
	KindNotFound           ErrorKind = "not_found"
	KindValidation         ErrorKind = "validation"
	KindInvalidTransition  ErrorKind = "invalid_transition"
	KindIncompleteChildren ErrorKind = "incomplete_children"
	KindConflict           ErrorKind = "conflict"
	KindNotEmpty           ErrorKind = "not_empty"
	KindDependentExists    ErrorKind = "dependent_exists"
)

// Error is a structured domain error. Messages embed the offending
// identifiers so callers can render them verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// IsKind reports whether err is a domain Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var derr *Error
	if !errors.As(err, &derr) {
		return false
	}
	return derr.Kind == kind
}

// KindOf returns the kind of a domain error, or "" for other errors.
func KindOf(err error) ErrorKind {
	var derr *Error
	if !errors.As(err, &derr) {
		return ""
	}
	return derr.Kind
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NotEmptyf(format string, args ...any) *Error {
	return &Error{Kind: KindNotEmpty, Message: fmt.Sprintf(format, args...)}
}

func DependentExistsf(format string, args ...any) *Error {
	return &Error{Kind: KindDependentExists, Message: fmt.Sprintf(format, args...)}
}

// InvalidTransitionError names both endpoints of a rejected status change.
func InvalidTransitionError(entity string, from, to string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("invalid %s status transition: %s -> %s", entity, from, to),
	}
}

// IncompleteChildrenError enumerates the children blocking a completion.
func IncompleteChildrenError(what string, names, statuses []string) *Error {
	parts := make([]string, 0, len(names))
	for i, name := range names {
		status := ""
		if i < len(statuses) {
			status = statuses[i]
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", name, status))
	}
	return &Error{
		Kind:    KindIncompleteChildren,
		Message: fmt.Sprintf("cannot complete: %s not completed: %s", what, strings.Join(parts, ", ")),
	}
}
