// Package memory holds in-memory repository implementations backing the CLI
// and tests. Durable storage is a separate concern owned by whichever
// calling layer embeds the engine.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sundial-app/sundial/internal/scheduling/domain"
)

// TaskRepository is a mutex-guarded in-memory domain.TaskRepository.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID][]domain.Task // userID -> tasks
	owner map[uuid.UUID]uuid.UUID     // taskID -> userID
}

// NewTaskRepository creates an empty task repository.
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks: make(map[uuid.UUID][]domain.Task),
		owner: make(map[uuid.UUID]uuid.UUID),
	}
}

// Seed replaces a user's task set.
func (r *TaskRepository) Seed(userID uuid.UUID, tasks []domain.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[userID] = append([]domain.Task(nil), tasks...)
	for _, t := range tasks {
		r.owner[t.ID] = userID
	}
}

// ListActive returns a copy of the user's task set.
func (r *TaskRepository) ListActive(_ context.Context, userID uuid.UUID) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Task(nil), r.tasks[userID]...), nil
}

// Get returns a task by ID.
func (r *TaskRepository) Get(_ context.Context, id uuid.UUID) (domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	userID, ok := r.owner[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	for _, t := range r.tasks[userID] {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Task{}, domain.ErrTaskNotFound
}

// SaveSlot records a placement on a task.
func (r *TaskRepository) SaveSlot(_ context.Context, id uuid.UUID, slot domain.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	userID, ok := r.owner[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	list := r.tasks[userID]
	for i := range list {
		if list[i].ID == id {
			start, end := slot.Start, slot.End
			list[i].ScheduledStart = &start
			list[i].ScheduledEnd = &end
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

// GroupRepository is an in-memory domain.GroupRepository.
type GroupRepository struct {
	mu     sync.RWMutex
	groups map[uuid.UUID][]domain.TaskGroup
}

// NewGroupRepository creates an empty group repository.
func NewGroupRepository() *GroupRepository {
	return &GroupRepository{groups: make(map[uuid.UUID][]domain.TaskGroup)}
}

// Seed replaces a user's groups.
func (r *GroupRepository) Seed(userID uuid.UUID, groups []domain.TaskGroup) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups[userID] = append([]domain.TaskGroup(nil), groups...)
}

// ListByUser returns a copy of a user's groups.
func (r *GroupRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.TaskGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.TaskGroup(nil), r.groups[userID]...), nil
}

// ProfileRepository is an in-memory domain.ProfileRepository. Users without
// a stored profile get the documented defaults: UTC and full-day hours.
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]domain.Profile
}

// NewProfileRepository creates an empty profile repository.
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: make(map[uuid.UUID]domain.Profile)}
}

// Seed stores a profile.
func (r *ProfileRepository) Seed(p domain.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.UserID] = p
}

// Get returns a user's profile, defaulting timezone and hours when unset.
func (r *ProfileRepository) Get(_ context.Context, userID uuid.UUID) (domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		p = domain.Profile{UserID: userID}
	}
	if p.Timezone == "" {
		p.Timezone = "UTC"
	}
	if p.AwakeHours.IsEmpty() {
		p.AwakeHours = domain.FullWeek()
	}
	return p, nil
}
