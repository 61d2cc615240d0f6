// Package diag defines the error taxonomy used across parsing and
// generation: malformed input, unsupported-but-recognized constructs, and
// internal inconsistencies.
package diag

import (
	"errors"
	"fmt"
)

// Category classifies a diagnostic.
type Category int

const (
	// Malformed marks input that violates a structural invariant of the
	// schema. Fatal to the enclosing type/entity, never to the run once
	// the registry is built.
	Malformed Category = iota
	// Unsupported marks a well-formed construct the generator
	// deliberately does not handle.
	Unsupported
	// Internal marks a violated generator invariant. Never caught at
	// entity boundaries.
	Internal
)

func (c Category) String() string {
	switch c {
	case Malformed:
		return "malformed input"
	case Unsupported:
		return "unsupported"
	case Internal:
		return "internal error"
	}
	return "unknown"
}

// Error is a categorized diagnostic.
type Error struct {
	Category Category
	Message  string
}

func (e *Error) Error() string {
	return e.Category.String() + ": " + e.Message
}

// Malformedf builds a Malformed diagnostic.
func Malformedf(format string, args ...interface{}) *Error {
	return &Error{Category: Malformed, Message: fmt.Sprintf(format, args...)}
}

// Unsupportedf builds an Unsupported diagnostic.
func Unsupportedf(format string, args ...interface{}) *Error {
	return &Error{Category: Unsupported, Message: fmt.Sprintf(format, args...)}
}

// Internalf builds an Internal diagnostic.
func Internalf(format string, args ...interface{}) *Error {
	return &Error{Category: Internal, Message: fmt.Sprintf(format, args...)}
}

func is(err error, c Category) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Category == c
	}
	return false
}

// IsMalformed reports whether err (possibly wrapped) is a Malformed
// diagnostic.
func IsMalformed(err error) bool { return is(err, Malformed) }

// IsUnsupported reports whether err (possibly wrapped) is an Unsupported
// diagnostic.
func IsUnsupported(err error) bool { return is(err, Unsupported) }

// IsInternal reports whether err (possibly wrapped) is an Internal
// diagnostic.
func IsInternal(err error) bool { return is(err, Internal) }

// Recoverable reports whether err may be caught at a per-entity boundary.
// Internal errors and unclassified errors escalate.
func Recoverable(err error) bool {
	return IsMalformed(err) || IsUnsupported(err)
}
