package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// BusyInterval is one occupied stretch of a user's time, tagged with enough
// of the occupying task's identity for displacement decisions.
type BusyInterval struct {
	TaskID   uuid.UUID
	Start    time.Time
	End      time.Time
	Priority int
	Movable  bool
}

// Overlaps reports whether the interval shares time with [start, end).
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && b.End.After(start)
}

// ConflictIndex holds the sorted occupied intervals derived from a task
// snapshot. It is the only structure the search engine consults for
// conflicts, and the shuffle resolver mutates a clone of it while it plans
// displacements.
type ConflictIndex struct {
	intervals []BusyInterval
}

// NewConflictIndex builds the index from the full task set, excluding the
// task being placed and any task that no longer occupies time.
func NewConflictIndex(tasks []Task, exclude uuid.UUID) *ConflictIndex {
	ix := &ConflictIndex{}
	for _, t := range tasks {
		if t.ID == exclude || !t.OccupiesTime() {
			continue
		}
		ix.intervals = append(ix.intervals, BusyInterval{
			TaskID:   t.ID,
			Start:    *t.ScheduledStart,
			End:      *t.ScheduledEnd,
			Priority: t.Priority,
			Movable:  t.Movable(),
		})
	}
	ix.sort()
	return ix
}

// Overlapping returns the intervals that intersect [start, end), in start
// order.
func (ix *ConflictIndex) Overlapping(start, end time.Time) []BusyInterval {
	var out []BusyInterval
	for _, b := range ix.intervals {
		if !b.Start.Before(end) {
			break
		}
		if b.Overlaps(start, end) {
			out = append(out, b)
		}
	}
	return out
}

// Remove drops a task's interval from the index.
func (ix *ConflictIndex) Remove(taskID uuid.UUID) {
	for i, b := range ix.intervals {
		if b.TaskID == taskID {
			ix.intervals = append(ix.intervals[:i], ix.intervals[i+1:]...)
			return
		}
	}
}

// Insert adds an interval, keeping the index sorted.
func (ix *ConflictIndex) Insert(b BusyInterval) {
	ix.intervals = append(ix.intervals, b)
	ix.sort()
}

// Clone returns an independent copy for tentative shuffle planning.
func (ix *ConflictIndex) Clone() *ConflictIndex {
	cp := &ConflictIndex{intervals: make([]BusyInterval, len(ix.intervals))}
	copy(cp.intervals, ix.intervals)
	return cp
}

// Len returns the number of occupied intervals.
func (ix *ConflictIndex) Len() int { return len(ix.intervals) }

func (ix *ConflictIndex) sort() {
	sort.Slice(ix.intervals, func(i, j int) bool {
		return ix.intervals[i].Start.Before(ix.intervals[j].Start)
	})
}
