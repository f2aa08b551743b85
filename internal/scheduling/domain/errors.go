package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies scheduling failures so callers can branch on them
// without parsing messages.
type ErrorKind string

const (
	KindInvalidTask          ErrorKind = "invalid_task"
	KindNoSlotFound          ErrorKind = "no_slot_found"
	KindDependencyUnresolved ErrorKind = "dependency_unresolved"
	KindShuffleInfeasible    ErrorKind = "shuffle_infeasible"
	KindTimezone             ErrorKind = "timezone_error"
)

// ScheduleError is a structured scheduling failure. The engine never panics;
// every failure surfaces as one of these values.
type ScheduleError struct {
	Kind    ErrorKind
	Message string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewScheduleError creates a ScheduleError with a formatted message.
func NewScheduleError(kind ErrorKind, format string, args ...any) *ScheduleError {
	return &ScheduleError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from an error chain, or "" if the error is
// not a ScheduleError.
func KindOf(err error) ErrorKind {
	var se *ScheduleError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrGroupNotFound = errors.New("group not found")
)
