package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sundial-app/sundial/internal/scheduling/domain"
)

// Request is one scheduling invocation: the task to place plus the complete
// snapshot of the owner's world. The engine retains nothing between calls;
// all durability belongs to the caller.
type Request struct {
	Mode         domain.Mode
	Task         domain.Task
	AllTasks     []domain.Task
	Group        *domain.TaskGroup
	Groups       []domain.TaskGroup
	AwakeHours   domain.WeekHours
	Timezone     string
	Dependencies domain.DependencyMap
	// Now is the current instant, supplied explicitly so the engine stays
	// deterministic under test. Zero means the wall clock.
	Now time.Time
}

// Result is a successful placement. Feedback is never empty; it carries at
// least a confirmation line plus a notice per displacement or degradation.
type Result struct {
	Slot          domain.Slot
	Feedback      []string
	ShuffledTasks []ShuffledTask
}

// UnifiedScheduler is the engine facade: availability resolution, conflict
// indexing, slot search, and (in asap mode) shuffle displacement. It is
// purely computational and never mutates its inputs.
type UnifiedScheduler struct {
	horizonDays int
	logger      *slog.Logger
}

// NewUnifiedScheduler creates the engine with the standard 30-day horizon.
func NewUnifiedScheduler(logger *slog.Logger) *UnifiedScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UnifiedScheduler{horizonDays: HorizonDays, logger: logger}
}

// Schedule finds a placement for the request's task. All failures come back
// as *domain.ScheduleError values; nothing is retried internally.
func (s *UnifiedScheduler) Schedule(ctx context.Context, req Request) (*Result, error) {
	if req.Task.DurationMin <= 0 {
		return nil, domain.NewScheduleError(domain.KindInvalidTask,
			"task %q has no positive duration", req.Task.Title)
	}

	projector, err := domain.NewProjector(req.Timezone)
	if err != nil {
		return nil, err
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	deps := req.Dependencies
	if deps == nil {
		deps = domain.BuildDependencyMap(req.AllTasks)
	}
	if deps.HasCycle(req.Task.ID) {
		return nil, domain.NewScheduleError(domain.KindDependencyUnresolved,
			"task %q is part of a dependency cycle", req.Task.Title)
	}

	hours := domain.EffectiveHours(req.AwakeHours, req.Group)
	resolver, err := domain.NewWindowResolver(projector, hours, req.Mode, now)
	if err != nil {
		return nil, err
	}

	sc := &searchContext{
		projector: projector,
		index:     domain.NewConflictIndex(req.AllTasks, req.Task.ID),
		tasks:     tasksByID(req.AllTasks),
		deps:      deps,
	}
	opts := searchOptions{
		horizonDays: s.horizonDays,
		enforceDue:  true,
		useDeps:     true,
	}
	if req.Mode.AllowsShuffle() {
		opts.shuffleBound = req.Task.Priority
	}

	out := findSlot(req.Task, resolver, sc, opts)

	pastDue := false
	if out.slot == nil && out.blocked == nil && out.dueConstrained {
		// The due date is soft: retry the same horizon without the ceiling
		// and say so if that lands something.
		opts.enforceDue = false
		out = findSlot(req.Task, resolver, sc, opts)
		if out.slot == nil && out.blocked == nil {
			return nil, s.noSlot(limitDueDate)
		}
		pastDue = true
	}

	switch {
	case out.slot != nil:
		res := s.success(req, *out.slot, nil, projector)
		if pastDue {
			res.Feedback = append(res.Feedback, "scheduled past due date")
		}
		return res, nil

	case out.blocked != nil:
		shuffler := newShuffleResolver(sc, req.AwakeHours, groupsByID(req.Groups), s.horizonDays, req.Task.Priority)
		moves, notes, err := shuffler.resolve(req.Task, out.blocked)
		if err != nil {
			return nil, err
		}
		res := s.success(req, out.blocked.slot, moves, projector)
		if pastDue {
			res.Feedback = append(res.Feedback, "scheduled past due date")
		}
		for _, m := range moves {
			res.Feedback = append(res.Feedback, fmt.Sprintf(
				"moved %q to %s to make room", m.Title, formatSlot(m.NewSlot, projector)))
		}
		res.Feedback = append(res.Feedback, notes...)
		return res, nil

	default:
		if out.unresolved {
			return nil, domain.NewScheduleError(domain.KindDependencyUnresolved,
				"a prerequisite of %q is neither completed nor scheduled", req.Task.Title)
		}
		return nil, s.noSlot(out.limiting)
	}
}

func (s *UnifiedScheduler) success(req Request, slot domain.Slot, moves []ShuffledTask, p *domain.Projector) *Result {
	s.logger.Debug("task placed",
		"task_id", req.Task.ID,
		"mode", string(req.Mode),
		"start", slot.Start,
		"shuffled", len(moves),
	)
	return &Result{
		Slot:          slot,
		ShuffledTasks: moves,
		Feedback: []string{fmt.Sprintf("scheduled %q for %s",
			req.Task.Title, formatSlot(slot, p))},
	}
}

func (s *UnifiedScheduler) noSlot(limiting limitingConstraint) error {
	return domain.NewScheduleError(domain.KindNoSlotFound,
		"no slot within %d days; most limiting: %s", s.horizonDays, limiting)
}

func formatSlot(slot domain.Slot, p *domain.Projector) string {
	loc := p.Location()
	return fmt.Sprintf("%s-%s",
		slot.Start.In(loc).Format("Mon Jan 2 15:04"),
		slot.End.In(loc).Format("15:04"))
}

func tasksByID(tasks []domain.Task) map[uuid.UUID]domain.Task {
	m := make(map[uuid.UUID]domain.Task, len(tasks))
	for _, t := range tasks {
		m[t.ID] = t
	}
	return m
}

func groupsByID(groups []domain.TaskGroup) map[uuid.UUID]domain.TaskGroup {
	m := make(map[uuid.UUID]domain.TaskGroup, len(groups))
	for _, g := range groups {
		m[g.ID] = g
	}
	return m
}
