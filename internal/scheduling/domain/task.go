package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the task lifecycle state.
type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusCompleted
	StatusCancelled
	StatusRescheduled
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusRescheduled:
		return "rescheduled"
	default:
		return "unknown"
	}
}

var statusValues = map[string]Status{
	"pending":     StatusPending,
	"in_progress": StatusInProgress,
	"completed":   StatusCompleted,
	"cancelled":   StatusCancelled,
	"rescheduled": StatusRescheduled,
}

// ParseStatus creates a Status from its string form. Unknown strings map to
// pending so imported snapshots never hide tasks from the engine.
func ParseStatus(s string) Status {
	if v, ok := statusValues[s]; ok {
		return v
	}
	return StatusPending
}

// Task is the scheduling-relevant snapshot of a task. The engine treats it
// as an immutable value; placements are reported back to the caller, never
// written into the snapshot.
type Task struct {
	ID             uuid.UUID
	Title          string
	DurationMin    int // estimated minutes, must be positive to schedule
	Priority       int // 1 = highest, 5 = lowest
	EnergyLevel    int // 1-5, informational only
	ScheduledStart *time.Time
	ScheduledEnd   *time.Time
	DueDate        *time.Time
	Locked         bool
	GroupID        *uuid.UUID
	DependsOn      []uuid.UUID
	Status         Status
}

// Duration returns the estimated duration.
func (t Task) Duration() time.Duration {
	return time.Duration(t.DurationMin) * time.Minute
}

// IsScheduled reports whether the task has a placement.
func (t Task) IsScheduled() bool {
	return t.ScheduledStart != nil && t.ScheduledEnd != nil
}

// OccupiesTime reports whether the task's interval still blocks other work.
// Completed and cancelled tasks no longer occupy time.
func (t Task) OccupiesTime() bool {
	if !t.IsScheduled() {
		return false
	}
	return t.Status != StatusCompleted && t.Status != StatusCancelled
}

// Movable reports whether the task may be displaced by a shuffle.
func (t Task) Movable() bool {
	return !t.Locked
}

// TaskGroup carries the group-level scheduling overrides. Parent groups are
// organizational only; the hierarchy carries no scheduling semantics.
type TaskGroup struct {
	ID                  uuid.UUID
	Name                string
	ParentGroupID       *uuid.UUID
	Priority            *int
	AutoScheduleEnabled bool
	AutoScheduleHours   WeekHours
}

// Slot is an absolute placement interval.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Duration returns the slot length.
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Overlaps reports whether two slots share any time.
func (s Slot) Overlaps(other Slot) bool {
	return s.Start.Before(other.End) && s.End.After(other.Start)
}
