package domain

import (
	"time"
)

// Mode selects how the availability walk is anchored.
type Mode string

const (
	ModeNow       Mode = "now"
	ModeToday     Mode = "today"
	ModeTomorrow  Mode = "tomorrow"
	ModeNextWeek  Mode = "next-week"
	ModeNextMonth Mode = "next-month"
	ModeASAP      Mode = "asap"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNow, ModeToday, ModeTomorrow, ModeNextWeek, ModeNextMonth, ModeASAP:
		return Mode(s), nil
	}
	return "", NewScheduleError(KindInvalidTask, "unknown scheduling mode %q", s)
}

// AllowsShuffle reports whether the mode authorizes displacing lower
// priority tasks.
func (m Mode) AllowsShuffle() bool {
	return m == ModeASAP
}

// DayWindow is one day's candidate window as absolute instants.
type DayWindow struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether the window is unset.
func (w DayWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// WindowResolver produces the ordered sequence of per-day candidate windows
// for one scheduling request. Windows are derived lazily by day offset; the
// caller bounds the walk with its horizon.
type WindowResolver struct {
	projector *Projector
	hours     WeekHours
	mode      Mode
	now       time.Time
	origin    time.Time
}

// NewWindowResolver anchors a resolver for a mode at an explicit "now".
// In today mode, a "now" already past today's window end fails immediately:
// the only day that mode may use is gone.
func NewWindowResolver(p *Projector, hours WeekHours, mode Mode, now time.Time) (*WindowResolver, error) {
	if hours.IsEmpty() {
		hours = FullWeek()
	}
	r := &WindowResolver{projector: p, hours: hours, mode: mode, now: now}

	c := p.InstantToCivil(now)
	switch mode {
	case ModeNow, ModeASAP:
		r.origin = now
	case ModeToday:
		rng, ok := hours.On(c.Weekday)
		if !ok {
			return nil, NewScheduleError(KindNoSlotFound, "no awake hours configured for today")
		}
		end := p.MinuteOfDay(c.Year, c.Month, c.Day, rng.EndMinute)
		if !now.Before(end) {
			return nil, NewScheduleError(KindNoSlotFound, "today's awake window has already ended")
		}
		start := p.MinuteOfDay(c.Year, c.Month, c.Day, rng.StartMinute)
		if start.Before(now) {
			start = now
		}
		r.origin = start
	case ModeTomorrow:
		r.origin = p.CivilToInstant(c.Year, c.Month, c.Day+1, 0, 0)
	case ModeNextWeek:
		iso := int(c.Weekday)
		if iso == 0 { // Sunday closes the ISO week
			iso = 7
		}
		r.origin = p.CivilToInstant(c.Year, c.Month, c.Day+(8-iso), 0, 0)
	case ModeNextMonth:
		r.origin = p.CivilToInstant(c.Year, c.Month+1, 1, 0, 0)
	default:
		return nil, NewScheduleError(KindInvalidTask, "unknown scheduling mode %q", string(mode))
	}
	return r, nil
}

// Origin returns the instant the day walk is anchored to.
func (r *WindowResolver) Origin() time.Time { return r.origin }

// Mode returns the resolver's mode.
func (r *WindowResolver) Mode() Mode { return r.mode }

// WindowOn returns the candidate window dayOffset civil days after the
// origin. Days with no configured hours report ok=false and are skipped by
// the search; day zero is clipped so a window never starts in the past.
func (r *WindowResolver) WindowOn(dayOffset int) (DayWindow, bool) {
	c := r.projector.InstantToCivil(r.origin)
	dayStart := r.projector.CivilToInstant(c.Year, c.Month, c.Day+dayOffset, 0, 0)
	dc := r.projector.InstantToCivil(dayStart)

	rng, ok := r.hours.On(dc.Weekday)
	if !ok {
		return DayWindow{}, false
	}

	start := r.projector.MinuteOfDay(dc.Year, dc.Month, dc.Day, rng.StartMinute)
	end := r.projector.MinuteOfDay(dc.Year, dc.Month, dc.Day, rng.EndMinute)

	// A task can never be placed before the anchor, and in the now-anchored
	// modes never before the current instant either.
	if start.Before(r.origin) {
		start = r.origin
	}
	switch r.mode {
	case ModeNow, ModeToday, ModeASAP:
		if start.Before(r.now) {
			start = r.now
		}
	}

	if !start.Before(end) {
		return DayWindow{}, false
	}
	return DayWindow{Start: start, End: end}, true
}
