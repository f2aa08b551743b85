package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sundial-app/sundial/internal/scheduling/domain"
	"github.com/sundial-app/sundial/internal/scheduling/infrastructure/memory"
)

// snapshot is the JSON file format the CLI works on: one user's tasks,
// groups, and profile, mirroring what a calling application would read from
// its own storage.
type snapshot struct {
	UserID     string            `json:"user_id"`
	Timezone   string            `json:"timezone"`
	AwakeHours map[string]string `json:"awake_hours,omitempty"`
	Groups     []snapshotGroup   `json:"groups,omitempty"`
	Tasks      []snapshotTask    `json:"tasks"`
}

type snapshotGroup struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	ParentGroupID       string            `json:"parent_group_id,omitempty"`
	Priority            *int              `json:"priority,omitempty"`
	AutoScheduleEnabled bool              `json:"auto_schedule_enabled"`
	AutoScheduleHours   map[string]string `json:"auto_schedule_hours,omitempty"`
}

type snapshotTask struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	DurationMin    int        `json:"duration_min"`
	Priority       int        `json:"priority"`
	EnergyLevel    int        `json:"energy_level,omitempty"`
	ScheduledStart *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time `json:"scheduled_end,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Locked         bool       `json:"locked,omitempty"`
	GroupID        string     `json:"group_id,omitempty"`
	DependsOn      []string   `json:"depends_on,omitempty"`
	Status         string     `json:"status,omitempty"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// loadSnapshot reads a snapshot file into in-memory repositories.
func loadSnapshot(path string) (uuid.UUID, *memory.TaskRepository, *memory.GroupRepository, *memory.ProfileRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return uuid.Nil, nil, nil, nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return uuid.Nil, nil, nil, nil, fmt.Errorf("parse snapshot: %w", err)
	}

	userID, err := uuid.Parse(snap.UserID)
	if err != nil {
		return uuid.Nil, nil, nil, nil, fmt.Errorf("snapshot user_id: %w", err)
	}

	hours, err := parseWeekHours(snap.AwakeHours)
	if err != nil {
		return uuid.Nil, nil, nil, nil, err
	}

	groups := make([]domain.TaskGroup, 0, len(snap.Groups))
	for _, g := range snap.Groups {
		parsed, err := parseGroup(g)
		if err != nil {
			return uuid.Nil, nil, nil, nil, err
		}
		groups = append(groups, parsed)
	}

	tasks := make([]domain.Task, 0, len(snap.Tasks))
	for _, t := range snap.Tasks {
		parsed, err := parseTask(t)
		if err != nil {
			return uuid.Nil, nil, nil, nil, err
		}
		tasks = append(tasks, parsed)
	}

	timezone := snap.Timezone
	if timezone == "" && cfg != nil {
		timezone = cfg.Timezone
	}
	if hours.IsEmpty() && cfg != nil {
		if rng, err := domain.NewHourRange(cfg.DayStartMinute, cfg.DayEndMinute); err == nil {
			hours = make(domain.WeekHours, 7)
			for d := time.Sunday; d <= time.Saturday; d++ {
				hours[d] = rng
			}
		}
	}

	taskRepo := memory.NewTaskRepository()
	taskRepo.Seed(userID, tasks)
	groupRepo := memory.NewGroupRepository()
	groupRepo.Seed(userID, groups)
	profileRepo := memory.NewProfileRepository()
	profileRepo.Seed(domain.Profile{UserID: userID, Timezone: timezone, AwakeHours: hours})

	return userID, taskRepo, groupRepo, profileRepo, nil
}

func parseGroup(g snapshotGroup) (domain.TaskGroup, error) {
	id, err := uuid.Parse(g.ID)
	if err != nil {
		return domain.TaskGroup{}, fmt.Errorf("group %q id: %w", g.Name, err)
	}
	hours, err := parseWeekHours(g.AutoScheduleHours)
	if err != nil {
		return domain.TaskGroup{}, fmt.Errorf("group %q: %w", g.Name, err)
	}
	out := domain.TaskGroup{
		ID:                  id,
		Name:                g.Name,
		Priority:            g.Priority,
		AutoScheduleEnabled: g.AutoScheduleEnabled,
		AutoScheduleHours:   hours,
	}
	if g.ParentGroupID != "" {
		pid, err := uuid.Parse(g.ParentGroupID)
		if err != nil {
			return domain.TaskGroup{}, fmt.Errorf("group %q parent id: %w", g.Name, err)
		}
		out.ParentGroupID = &pid
	}
	return out, nil
}

func parseTask(t snapshotTask) (domain.Task, error) {
	id, err := uuid.Parse(t.ID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %q id: %w", t.Title, err)
	}
	out := domain.Task{
		ID:             id,
		Title:          t.Title,
		DurationMin:    t.DurationMin,
		Priority:       t.Priority,
		EnergyLevel:    t.EnergyLevel,
		ScheduledStart: t.ScheduledStart,
		ScheduledEnd:   t.ScheduledEnd,
		DueDate:        t.DueDate,
		Locked:         t.Locked,
		Status:         domain.ParseStatus(t.Status),
	}
	if t.GroupID != "" {
		gid, err := uuid.Parse(t.GroupID)
		if err != nil {
			return domain.Task{}, fmt.Errorf("task %q group id: %w", t.Title, err)
		}
		out.GroupID = &gid
	}
	for _, dep := range t.DependsOn {
		did, err := uuid.Parse(dep)
		if err != nil {
			return domain.Task{}, fmt.Errorf("task %q dependency: %w", t.Title, err)
		}
		out.DependsOn = append(out.DependsOn, did)
	}
	return out, nil
}

// parseWeekHours turns {"monday": "09:00-17:00", ...} into WeekHours.
func parseWeekHours(m map[string]string) (domain.WeekHours, error) {
	if len(m) == 0 {
		return nil, nil
	}
	week := make(domain.WeekHours, len(m))
	for name, spec := range m {
		day, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		rng, err := parseHourRange(spec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		week[day] = rng
	}
	return week, nil
}

// parseHourRange parses "09:00-17:00"; "24:00" is a valid end.
func parseHourRange(spec string) (domain.HourRange, error) {
	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return domain.HourRange{}, fmt.Errorf("invalid hour range %q, want HH:MM-HH:MM", spec)
	}
	start, err := parseMinute(parts[0])
	if err != nil {
		return domain.HourRange{}, err
	}
	end, err := parseMinute(parts[1])
	if err != nil {
		return domain.HourRange{}, err
	}
	return domain.NewHourRange(start, end)
}

func parseMinute(s string) (int, error) {
	hm := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(hm) != 2 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(hm[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	m, err := strconv.Atoi(hm[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	return h*60 + m, nil
}
