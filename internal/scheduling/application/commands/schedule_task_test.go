package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sundial-app/sundial/internal/scheduling/application/commands"
	"github.com/sundial-app/sundial/internal/scheduling/application/services"
	"github.com/sundial-app/sundial/internal/scheduling/domain"
	"github.com/sundial-app/sundial/internal/scheduling/infrastructure/memory"
)

func workWeek() domain.WeekHours {
	nineToFive, _ := domain.NewHourRange(9*60, 17*60)
	return domain.WeekHours{
		time.Monday:    nineToFive,
		time.Tuesday:   nineToFive,
		time.Wednesday: nineToFive,
		time.Thursday:  nineToFive,
		time.Friday:    nineToFive,
	}
}

type fixture struct {
	handler *commands.ScheduleTaskHandler
	tasks   *memory.TaskRepository
	userID  uuid.UUID
}

func newFixture(t *testing.T, tasks []domain.Task) fixture {
	t.Helper()
	userID := uuid.New()

	taskRepo := memory.NewTaskRepository()
	taskRepo.Seed(userID, tasks)
	groupRepo := memory.NewGroupRepository()
	profileRepo := memory.NewProfileRepository()
	profileRepo.Seed(domain.Profile{UserID: userID, Timezone: "UTC", AwakeHours: workWeek()})

	handler := commands.NewScheduleTaskHandler(
		taskRepo, groupRepo, profileRepo, services.NewUnifiedScheduler(nil), nil)
	return fixture{handler: handler, tasks: taskRepo, userID: userID}
}

func TestScheduleTaskHandler_PersistsPlacement(t *testing.T) {
	monday := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	task := domain.Task{ID: uuid.New(), Title: "write report", DurationMin: 60, Priority: 3}
	fx := newFixture(t, []domain.Task{task})

	res, err := fx.handler.Handle(context.Background(), commands.ScheduleTaskCommand{
		UserID: fx.userID,
		TaskID: task.ID,
		Mode:   domain.ModeNow,
		Now:    monday.Add(10 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, monday.Add(10*time.Hour), res.Slot.Start)

	stored, err := fx.tasks.Get(context.Background(), task.ID)
	require.NoError(t, err)
	require.True(t, stored.IsScheduled())
	assert.Equal(t, res.Slot.Start, *stored.ScheduledStart)
	assert.Equal(t, res.Slot.End, *stored.ScheduledEnd)
}

func TestScheduleTaskHandler_PersistsShuffledMoves(t *testing.T) {
	monday := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	start := monday.Add(9 * time.Hour)
	end := monday.Add(17 * time.Hour)
	blocker := domain.Task{
		ID: uuid.New(), Title: "email sweep", DurationMin: 480, Priority: 4,
		ScheduledStart: &start, ScheduledEnd: &end,
	}
	urgent := domain.Task{ID: uuid.New(), Title: "incident review", DurationMin: 60, Priority: 1}
	fx := newFixture(t, []domain.Task{blocker, urgent})

	res, err := fx.handler.Handle(context.Background(), commands.ScheduleTaskCommand{
		UserID: fx.userID,
		TaskID: urgent.ID,
		Mode:   domain.ModeASAP,
		Now:    monday.Add(9 * time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, res.ShuffledTasks, 1)

	movedBlocker, err := fx.tasks.Get(context.Background(), blocker.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ShuffledTasks[0].NewSlot.Start, *movedBlocker.ScheduledStart)

	placed, err := fx.tasks.Get(context.Background(), urgent.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Slot.Start, *placed.ScheduledStart)
}

func TestScheduleTaskHandler_SchedulingFailureLeavesStoreUntouched(t *testing.T) {
	monday := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	prereq := domain.Task{ID: uuid.New(), Title: "unplanned", DurationMin: 60, Priority: 3}
	task := domain.Task{
		ID: uuid.New(), Title: "blocked", DurationMin: 60, Priority: 3,
		DependsOn: []uuid.UUID{prereq.ID},
	}
	fx := newFixture(t, []domain.Task{prereq, task})

	_, err := fx.handler.Handle(context.Background(), commands.ScheduleTaskCommand{
		UserID: fx.userID,
		TaskID: task.ID,
		Mode:   domain.ModeNow,
		Now:    monday.Add(9 * time.Hour),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindDependencyUnresolved, domain.KindOf(err))

	stored, err := fx.tasks.Get(context.Background(), task.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsScheduled())
}

func TestScheduleTaskHandler_UnknownTask(t *testing.T) {
	fx := newFixture(t, nil)

	_, err := fx.handler.Handle(context.Background(), commands.ScheduleTaskCommand{
		UserID: fx.userID,
		TaskID: uuid.New(),
		Mode:   domain.ModeNow,
	})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
