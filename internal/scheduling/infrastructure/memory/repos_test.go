package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sundial-app/sundial/internal/scheduling/domain"
	"github.com/sundial-app/sundial/internal/scheduling/infrastructure/memory"
)

func TestTaskRepository_SeedAndGet(t *testing.T) {
	repo := memory.NewTaskRepository()
	userID := uuid.New()
	task := domain.Task{ID: uuid.New(), Title: "one", DurationMin: 30}
	repo.Seed(userID, []domain.Task{task})

	got, err := repo.Get(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, "one", got.Title)

	_, err = repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskRepository_SaveSlot(t *testing.T) {
	repo := memory.NewTaskRepository()
	userID := uuid.New()
	task := domain.Task{ID: uuid.New(), Title: "one", DurationMin: 30}
	repo.Seed(userID, []domain.Task{task})

	slot := domain.Slot{
		Start: time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.January, 6, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, repo.SaveSlot(context.Background(), task.ID, slot))

	got, err := repo.Get(context.Background(), task.ID)
	require.NoError(t, err)
	require.True(t, got.IsScheduled())
	assert.Equal(t, slot.Start, *got.ScheduledStart)

	err = repo.SaveSlot(context.Background(), uuid.New(), slot)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskRepository_ListActiveReturnsCopy(t *testing.T) {
	repo := memory.NewTaskRepository()
	userID := uuid.New()
	repo.Seed(userID, []domain.Task{{ID: uuid.New(), Title: "one"}})

	list, err := repo.ListActive(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	list[0].Title = "mutated"
	again, err := repo.ListActive(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "one", again[0].Title)
}

func TestGroupRepository_ListByUser(t *testing.T) {
	repo := memory.NewGroupRepository()
	userID := uuid.New()
	repo.Seed(userID, []domain.TaskGroup{{ID: uuid.New(), Name: "admin"}})

	groups, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "admin", groups[0].Name)

	none, err := repo.ListByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProfileRepository_DefaultsWhenUnset(t *testing.T) {
	repo := memory.NewProfileRepository()

	p, err := repo.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "UTC", p.Timezone)
	assert.False(t, p.AwakeHours.IsEmpty())
}

func TestProfileRepository_SeededProfileWins(t *testing.T) {
	repo := memory.NewProfileRepository()
	userID := uuid.New()
	nineToFive, _ := domain.NewHourRange(9*60, 17*60)
	repo.Seed(domain.Profile{
		UserID:     userID,
		Timezone:   "Europe/Berlin",
		AwakeHours: domain.WeekHours{time.Monday: nineToFive},
	})

	p, err := repo.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", p.Timezone)
	_, ok := p.AwakeHours.On(time.Monday)
	assert.True(t, ok)
	_, ok = p.AwakeHours.On(time.Sunday)
	assert.False(t, ok)
}
