package model

import (
	"fmt"
	"strings"
)

type Error struct {
	Type   ErrorType
	Title  string
	Detail string
	Causes []ErrorCause
}

func (e Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s: %s: %s", e.Type, e.Title, e.Detail))

	for _, cause := range e.Causes {
		sb.WriteRune('\n')
		sb.WriteString(cause.String())
	}

	return sb.String()
}

type ErrorType int

const (
	ErrorConfiguration ErrorType = iota + 1 // A local invariant of an element is violated by a mutation.
	ErrorConflict                           // An element is already contained or a stored entity conflicts.
	ErrorNotFound
	ErrorTypeMismatch // An insertion received a variant, the target collection does not accept.
	ErrorValidation
)

func MapErrorType(s string) ErrorType {
	switch s {
	case "CONFIGURATION":
		return ErrorConfiguration
	case "CONFLICT":
		return ErrorConflict
	case "NOT_FOUND":
		return ErrorNotFound
	case "TYPE_MISMATCH":
		return ErrorTypeMismatch
	case "VALIDATION":
		return ErrorValidation
	default:
		return 0
	}
}

func (v ErrorType) String() string {
	switch v {
	case ErrorConfiguration:
		return "CONFIGURATION"
	case ErrorConflict:
		return "CONFLICT"
	case ErrorNotFound:
		return "NOT_FOUND"
	case ErrorTypeMismatch:
		return "TYPE_MISMATCH"
	case ErrorValidation:
		return "VALIDATION"
	default:
		return "UNKNOWN"
	}
}

// A cause of a validation [Error] like a missing ID or a dangling reference.
type ErrorCause struct {
	Pointer string // A pointer, locating the invalid element or document property.
	Type    string // Type indicator.
	Detail  string // Human-readable, detailed information about the cause.
}

func (e ErrorCause) String() string {
	return fmt.Sprintf("%s: %s: %s", e.Type, e.Pointer, e.Detail)
}

func newConfigurationError(title string, format string, a ...any) error {
	return Error{
		Type:   ErrorConfiguration,
		Title:  title,
		Detail: fmt.Sprintf(format, a...),
	}
}
