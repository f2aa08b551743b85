package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidHourRange = errors.New("hour range end must be after start")

// MinutesPerDay is the number of civil minutes in a day; an HourRange end of
// MinutesPerDay means "until midnight".
const MinutesPerDay = 24 * 60

// HourRange is a civil time-of-day window expressed as minutes from
// midnight. It carries no date or timezone; the projector anchors it.
type HourRange struct {
	StartMinute int
	EndMinute   int
}

// NewHourRange validates a civil window.
func NewHourRange(startMinute, endMinute int) (HourRange, error) {
	if startMinute < 0 || endMinute > MinutesPerDay || endMinute <= startMinute {
		return HourRange{}, ErrInvalidHourRange
	}
	return HourRange{StartMinute: startMinute, EndMinute: endMinute}, nil
}

// IsZero reports whether the range is unset.
func (r HourRange) IsZero() bool {
	return r.StartMinute == 0 && r.EndMinute == 0
}

func (r HourRange) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		r.StartMinute/60, r.StartMinute%60, r.EndMinute/60, r.EndMinute%60)
}

// WeekHours maps weekdays to the civil window during which tasks may be
// placed. A missing weekday means the user is unavailable that day.
type WeekHours map[time.Weekday]HourRange

// FullWeek returns a schedule that covers every day end to end. It is the
// fallback for users without configured awake hours, so scheduling never
// silently fails for them.
func FullWeek() WeekHours {
	week := make(WeekHours, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		week[d] = HourRange{StartMinute: 0, EndMinute: MinutesPerDay}
	}
	return week
}

// On returns the window for a weekday, if any.
func (w WeekHours) On(day time.Weekday) (HourRange, bool) {
	if w == nil {
		return HourRange{}, false
	}
	r, ok := w[day]
	if !ok || r.IsZero() {
		return HourRange{}, false
	}
	return r, true
}

// IsEmpty reports whether no day has a usable window.
func (w WeekHours) IsEmpty() bool {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if _, ok := w.On(d); ok {
			return false
		}
	}
	return true
}

// EffectiveHours resolves the week to search for a task: a group with
// auto-scheduling enabled replaces the user's awake hours wholesale, and a
// wholly absent schedule falls back to full days.
func EffectiveHours(user WeekHours, group *TaskGroup) WeekHours {
	if group != nil && group.AutoScheduleEnabled && !group.AutoScheduleHours.IsEmpty() {
		return group.AutoScheduleHours
	}
	if user.IsEmpty() {
		return FullWeek()
	}
	return user
}
