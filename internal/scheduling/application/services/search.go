package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sundial-app/sundial/internal/scheduling/domain"
)

// HorizonDays caps how far forward any search walks before declaring
// failure. It is the engine's sole bound on work performed.
const HorizonDays = 30

// limitingConstraint names the constraint that rejected the most candidate
// positions, for diagnostic feedback when a search fails.
type limitingConstraint int

const (
	limitNone limitingConstraint = iota
	limitHours
	limitConflicts
	limitDueDate
	limitDependencies
)

func (l limitingConstraint) String() string {
	switch l {
	case limitHours:
		return "working hours"
	case limitConflicts:
		return "conflicts with existing tasks"
	case limitDueDate:
		return "due date"
	case limitDependencies:
		return "unfinished prerequisites"
	default:
		return "no capacity"
	}
}

// searchContext bundles the immutable snapshot one search runs over.
type searchContext struct {
	projector *domain.Projector
	index     *domain.ConflictIndex
	tasks     map[uuid.UUID]domain.Task
	deps      domain.DependencyMap
}

// searchOptions tunes one findSlot invocation.
type searchOptions struct {
	horizonDays int
	enforceDue  bool
	// shuffleBound authorizes a shuffle handoff when > 0: a window whose
	// earliest feasible position is blocked solely by movable intervals of
	// numeric priority greater than the bound reports that position instead
	// of walking on.
	shuffleBound int
	useDeps      bool
}

// blockedPosition is a first-fit position occupied only by displaceable
// tasks, handed to the shuffle resolver.
type blockedPosition struct {
	slot     domain.Slot
	blockers []domain.BusyInterval
}

// searchOutcome is the result of one findSlot walk. Exactly one of slot and
// blocked is set on success; both nil means the horizon was exhausted.
// dueConstrained and unresolved are hard facts about why candidates were
// rejected, while limiting is a purely diagnostic majority vote.
type searchOutcome struct {
	slot    *domain.Slot
	blocked *blockedPosition
	// dueConstrained reports that at least one candidate was rejected by
	// the due-date ceiling; it authorizes the soft-deadline retry.
	dueConstrained bool
	// unresolved reports an incomplete prerequisite with no placement, a
	// hard infeasibility no retry can lift.
	unresolved bool
	limiting   limitingConstraint
}

// findSlot walks candidate windows in order and returns the first gap of at
// least the task's duration that satisfies the dependency gate and, when
// enforced, the due-date ceiling.
func findSlot(task domain.Task, resolver *domain.WindowResolver, sc *searchContext, opts searchOptions) searchOutcome {
	dur := task.Duration()
	var hoursSkips, conflictWindows, dueRejections, depSkips int
	floor, unresolved := dependencyFloor(task, sc, opts)

	for day := 0; day <= opts.horizonDays; day++ {
		win, ok := resolver.WindowOn(day)
		if !ok {
			hoursSkips++
			continue
		}

		if unresolved {
			// An unscheduled, incomplete prerequisite conservatively pushes
			// the candidate past the current day, every day, until the
			// horizon runs out.
			depSkips++
			continue
		}
		cursor := win.Start
		if floor.After(cursor) {
			cursor = floor
		}
		if !cursor.Before(win.End) {
			depSkips++
			continue
		}

		firstFeasible := cursor
		found := false
		var slot domain.Slot
		dueHit := false

		busy := sc.index.Overlapping(cursor, win.End)
		for _, b := range busy {
			if b.Start.Sub(cursor) >= dur {
				candidate := domain.Slot{Start: cursor, End: cursor.Add(dur)}
				if violatesDue(task, candidate, opts) {
					dueHit = true
				} else {
					slot, found = candidate, true
					break
				}
			}
			if b.End.After(cursor) {
				cursor = b.End
			}
		}
		if !found && cursor.Before(win.End) && win.End.Sub(cursor) >= dur {
			candidate := domain.Slot{Start: cursor, End: cursor.Add(dur)}
			if violatesDue(task, candidate, opts) {
				dueHit = true
			} else {
				slot, found = candidate, true
			}
		}

		if found {
			return searchOutcome{slot: &slot}
		}
		if dueHit {
			dueRejections++
			continue
		}
		conflictWindows++

		if opts.shuffleBound > 0 {
			candidate := domain.Slot{Start: firstFeasible, End: firstFeasible.Add(dur)}
			if candidate.End.After(win.End) || violatesDue(task, candidate, opts) {
				continue
			}
			blockers := sc.index.Overlapping(candidate.Start, candidate.End)
			if len(blockers) > 0 && allDisplaceable(blockers, opts.shuffleBound) {
				return searchOutcome{blocked: &blockedPosition{slot: candidate, blockers: blockers}}
			}
		}
	}

	return searchOutcome{
		dueConstrained: dueRejections > 0,
		unresolved:     unresolved,
		limiting:       pickLimiting(hoursSkips, conflictWindows, dueRejections, depSkips),
	}
}

// dependencyFloor computes the earliest start the task's prerequisites
// allow. unresolved means an incomplete prerequisite has no placement at
// all, so no candidate start can be confirmed.
func dependencyFloor(task domain.Task, sc *searchContext, opts searchOptions) (floor time.Time, unresolved bool) {
	if !opts.useDeps {
		return time.Time{}, false
	}
	prereqs := sc.deps.Prerequisites(task.ID)
	if prereqs == nil {
		prereqs = task.DependsOn
	}
	for _, pid := range prereqs {
		p, ok := sc.tasks[pid]
		if !ok {
			unresolved = true
			continue
		}
		if p.Status == domain.StatusCompleted {
			continue
		}
		if p.ScheduledEnd == nil {
			unresolved = true
			continue
		}
		if p.ScheduledEnd.After(floor) {
			floor = *p.ScheduledEnd
		}
	}
	return floor, unresolved
}

func violatesDue(task domain.Task, slot domain.Slot, opts searchOptions) bool {
	return opts.enforceDue && task.DueDate != nil && slot.End.After(*task.DueDate)
}

func allDisplaceable(blockers []domain.BusyInterval, bound int) bool {
	for _, b := range blockers {
		if !b.Movable || b.Priority <= bound {
			return false
		}
	}
	return true
}

func pickLimiting(hours, conflicts, due, deps int) limitingConstraint {
	// Conflicts and due-date pressure are more actionable diagnostics than
	// skipped days, so ties break toward them.
	best, kind := 0, limitNone
	for _, c := range []struct {
		n int
		k limitingConstraint
	}{
		{conflicts, limitConflicts},
		{due, limitDueDate},
		{deps, limitDependencies},
		{hours, limitHours},
	} {
		if c.n > best {
			best, kind = c.n, c.k
		}
	}
	return kind
}
