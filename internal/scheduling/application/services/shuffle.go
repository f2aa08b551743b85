package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sundial-app/sundial/internal/scheduling/domain"
)

// ShuffledTask records one displacement the engine performed to make room.
// The caller, not the engine, persists the new slot.
type ShuffledTask struct {
	TaskID  uuid.UUID
	Title   string
	NewSlot domain.Slot
}

// shuffleResolver displaces movable, strictly-lower-priority tasks forward
// so a higher-priority request can take their slot. It plans against a clone
// of the conflict index; the attempt is all-or-nothing and the caller's
// snapshot is never touched.
type shuffleResolver struct {
	sc          *searchContext
	userHours   domain.WeekHours
	groups      map[uuid.UUID]domain.TaskGroup
	horizonDays int
	rootBound   int // the requester's priority; nothing at or above it is ever displaced
	budget      int
	moves       []ShuffledTask
	feedback    []string
}

func newShuffleResolver(
	sc *searchContext,
	userHours domain.WeekHours,
	groups map[uuid.UUID]domain.TaskGroup,
	horizonDays int,
	requesterPriority int,
) *shuffleResolver {
	return &shuffleResolver{
		sc:          sc,
		userHours:   userHours,
		groups:      groups,
		horizonDays: horizonDays,
		rootBound:   requesterPriority,
	}
}

func errCannotFreeSlot() error {
	return domain.NewScheduleError(domain.KindShuffleInfeasible, "cannot free required slot")
}

// resolve places the requester at the blocked position and reschedules every
// displaced task after its own original end. Recursion depth is bounded by
// the task count, which guarantees termination.
func (r *shuffleResolver) resolve(requester domain.Task, pos *blockedPosition) ([]ShuffledTask, []string, error) {
	scratch := r.sc.index.Clone()
	r.budget = len(r.sc.tasks) + 1
	if err := r.place(requester, pos.slot, pos.blockers, scratch); err != nil {
		return nil, nil, err
	}
	return r.moves, r.feedback, nil
}

// place claims a slot for a task and displaces whatever movable work was
// occupying it.
func (r *shuffleResolver) place(t domain.Task, slot domain.Slot, blockers []domain.BusyInterval, scratch *domain.ConflictIndex) error {
	r.budget--
	if r.budget < 0 {
		return errCannotFreeSlot()
	}

	scratch.Remove(t.ID)
	scratch.Insert(domain.BusyInterval{
		TaskID:   t.ID,
		Start:    slot.Start,
		End:      slot.End,
		Priority: t.Priority,
		Movable:  t.Movable(),
	})

	for _, b := range blockers {
		displaced, ok := r.sc.tasks[b.TaskID]
		if !ok || !b.Movable || b.Priority <= r.rootBound {
			return errCannotFreeSlot()
		}
		scratch.Remove(displaced.ID)
		if err := r.reschedule(displaced, b.End, scratch); err != nil {
			return err
		}
	}
	return nil
}

// reschedule finds a new home for a displaced task, searching forward from
// its original end so no task ever moves backward. The displaced task keeps
// its own due date, dependencies, and group hours.
func (r *shuffleResolver) reschedule(t domain.Task, notBefore time.Time, scratch *domain.ConflictIndex) error {
	hours := domain.EffectiveHours(r.userHours, r.groupOf(t))
	resolver, err := domain.NewWindowResolver(r.sc.projector, hours, domain.ModeNow, notBefore)
	if err != nil {
		return errCannotFreeSlot()
	}

	sc := &searchContext{projector: r.sc.projector, index: scratch, tasks: r.sc.tasks, deps: r.sc.deps}
	opts := searchOptions{
		horizonDays:  r.horizonDays,
		enforceDue:   true,
		useDeps:      true,
		shuffleBound: max(t.Priority, r.rootBound),
	}

	out := findSlot(t, resolver, sc, opts)
	if out.slot == nil && out.blocked == nil && out.dueConstrained {
		// The due date is a soft deadline; better to land past it than to
		// fail the whole shuffle.
		opts.enforceDue = false
		out = findSlot(t, resolver, sc, opts)
		if out.slot != nil || out.blocked != nil {
			r.feedback = append(r.feedback, "moved \""+t.Title+"\" past its due date")
		}
	}

	switch {
	case out.slot != nil:
		scratch.Insert(domain.BusyInterval{
			TaskID:   t.ID,
			Start:    out.slot.Start,
			End:      out.slot.End,
			Priority: t.Priority,
			Movable:  t.Movable(),
		})
		r.moves = append(r.moves, ShuffledTask{TaskID: t.ID, Title: t.Title, NewSlot: *out.slot})
		return nil
	case out.blocked != nil:
		if err := r.place(t, out.blocked.slot, out.blocked.blockers, scratch); err != nil {
			return err
		}
		r.moves = append(r.moves, ShuffledTask{TaskID: t.ID, Title: t.Title, NewSlot: out.blocked.slot})
		return nil
	default:
		return errCannotFreeSlot()
	}
}

func (r *shuffleResolver) groupOf(t domain.Task) *domain.TaskGroup {
	if t.GroupID == nil {
		return nil
	}
	if g, ok := r.groups[*t.GroupID]; ok {
		return &g
	}
	return nil
}
