package services

import (
	"time"

	"github.com/sundial-app/sundial/internal/scheduling/domain"
)

// DefaultNearestSlotDays is the horizon lower-stakes callers use when
// placing a continuation of an overrun task.
const DefaultNearestSlotDays = 7

// FindNearestSlot is the conservative sibling of Schedule: a plain
// first-fit walk over the working-hours windows with no dependency gate, no
// due-date bypass, and no shuffle authorization. It returns NoSlotFound when
// the caller-supplied day count runs out.
func FindNearestSlot(
	task domain.Task,
	allTasks []domain.Task,
	searchStart time.Time,
	workingHours domain.WeekHours,
	maxDays int,
	timezone string,
) (*domain.Slot, error) {
	if task.DurationMin <= 0 {
		return nil, domain.NewScheduleError(domain.KindInvalidTask,
			"task %q has no positive duration", task.Title)
	}
	if maxDays <= 0 {
		maxDays = DefaultNearestSlotDays
	}

	projector, err := domain.NewProjector(timezone)
	if err != nil {
		return nil, err
	}
	resolver, err := domain.NewWindowResolver(projector, workingHours, domain.ModeNow, searchStart)
	if err != nil {
		return nil, err
	}

	sc := &searchContext{
		projector: projector,
		index:     domain.NewConflictIndex(allTasks, task.ID),
		tasks:     tasksByID(allTasks),
	}
	out := findSlot(task, resolver, sc, searchOptions{
		horizonDays: maxDays,
		enforceDue:  true,
	})
	if out.slot == nil {
		return nil, domain.NewScheduleError(domain.KindNoSlotFound,
			"no slot within %d days; most limiting: %s", maxDays, out.limiting)
	}
	return out.slot, nil
}
