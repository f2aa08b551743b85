package domain

import (
	"context"

	"github.com/google/uuid"
)

// Profile is the slice of a user's settings the engine consumes. Absent
// fields get the documented defaults: UTC and full-day awake hours.
type Profile struct {
	UserID     uuid.UUID
	Timezone   string
	AwakeHours WeekHours
}

// TaskRepository surfaces the task snapshot the engine schedules against and
// accepts the placements the caller decides to keep. The engine itself never
// writes; persistence and its consistency guarantees belong to the caller.
type TaskRepository interface {
	// ListActive returns every task of the user that can participate in
	// scheduling, including already placed ones.
	ListActive(ctx context.Context, userID uuid.UUID) ([]Task, error)
	Get(ctx context.Context, id uuid.UUID) (Task, error)
	// SaveSlot records a placement for a task.
	SaveSlot(ctx context.Context, id uuid.UUID, slot Slot) error
}

// GroupRepository surfaces group override hours.
type GroupRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]TaskGroup, error)
}

// ProfileRepository surfaces the user's timezone and awake hours.
type ProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (Profile, error)
}
