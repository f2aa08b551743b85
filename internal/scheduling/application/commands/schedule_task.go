package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sundial-app/sundial/internal/scheduling/application/services"
	"github.com/sundial-app/sundial/internal/scheduling/domain"
)

// ScheduleTaskCommand asks for one task to be placed.
type ScheduleTaskCommand struct {
	UserID uuid.UUID
	TaskID uuid.UUID
	Mode   domain.Mode
	// Now overrides the clock for deterministic runs; zero means wall clock.
	Now time.Time
}

// ScheduleTaskHandler assembles the engine's snapshot from the
// repositories, runs the unified scheduler, and writes the resulting
// placements back. It is the persistence boundary the engine itself stays
// out of; callers needing cross-request consistency serialize per user here.
type ScheduleTaskHandler struct {
	tasks     domain.TaskRepository
	groups    domain.GroupRepository
	profiles  domain.ProfileRepository
	scheduler *services.UnifiedScheduler
	logger    *slog.Logger
}

// NewScheduleTaskHandler creates a new ScheduleTaskHandler.
func NewScheduleTaskHandler(
	tasks domain.TaskRepository,
	groups domain.GroupRepository,
	profiles domain.ProfileRepository,
	scheduler *services.UnifiedScheduler,
	logger *slog.Logger,
) *ScheduleTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleTaskHandler{
		tasks:     tasks,
		groups:    groups,
		profiles:  profiles,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Handle executes the ScheduleTaskCommand.
func (h *ScheduleTaskHandler) Handle(ctx context.Context, cmd ScheduleTaskCommand) (*services.Result, error) {
	start := time.Now()

	profile, err := h.profiles.Get(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	all, err := h.tasks.ListActive(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	target, err := h.tasks.Get(ctx, cmd.TaskID)
	if err != nil {
		return nil, err
	}

	groups, err := h.groups.ListByUser(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	var group *domain.TaskGroup
	if target.GroupID != nil {
		for i := range groups {
			if groups[i].ID == *target.GroupID {
				group = &groups[i]
				break
			}
		}
	}

	result, err := h.scheduler.Schedule(ctx, services.Request{
		Mode:         cmd.Mode,
		Task:         target,
		AllTasks:     all,
		Group:        group,
		Groups:       groups,
		AwakeHours:   profile.AwakeHours,
		Timezone:     profile.Timezone,
		Dependencies: domain.BuildDependencyMap(all),
		Now:          cmd.Now,
	})
	if err != nil {
		h.logger.Info("schedule failed",
			"user_id", cmd.UserID,
			"task_id", cmd.TaskID,
			"mode", string(cmd.Mode),
			"kind", string(domain.KindOf(err)),
		)
		return nil, err
	}

	// Persist the placement and every displacement the engine reported.
	// The engine computed them against one snapshot, so they are written
	// together or not at all from its point of view.
	if err := h.tasks.SaveSlot(ctx, cmd.TaskID, result.Slot); err != nil {
		return nil, err
	}
	for _, moved := range result.ShuffledTasks {
		if err := h.tasks.SaveSlot(ctx, moved.TaskID, moved.NewSlot); err != nil {
			return nil, err
		}
	}

	h.logger.Info("task scheduled",
		"user_id", cmd.UserID,
		"task_id", cmd.TaskID,
		"mode", string(cmd.Mode),
		"start", result.Slot.Start,
		"shuffled", len(result.ShuffledTasks),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}
