package domain

import (
	"time"
)

// maxDSTGapMinutes bounds the forward scan used to resolve wall times that
// fall inside a daylight-saving gap. No real zone skips more than two hours.
const maxDSTGapMinutes = 180

// Civil is a wall-clock description of a moment in a particular zone.
type Civil struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Weekday time.Weekday
}

// Projector converts between civil wall-clock descriptions and absolute
// instants for one validated timezone.
type Projector struct {
	name string
	loc  *time.Location
}

// NewProjector validates a timezone identifier. An empty identifier defaults
// to UTC; an unrecognized one fails with the timezone error kind and never
// silently defaults.
func NewProjector(name string) (*Projector, error) {
	if name == "" {
		name = "UTC"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, NewScheduleError(KindTimezone, "unrecognized timezone %q", name)
	}
	return &Projector{name: name, loc: loc}, nil
}

// Name returns the timezone identifier.
func (p *Projector) Name() string { return p.name }

// Location returns the underlying location.
func (p *Projector) Location() *time.Location { return p.loc }

// CivilToInstant resolves a wall-clock time to an absolute instant. Wall
// times that do not exist because of a daylight-saving jump resolve to the
// first valid instant after them; ambiguous wall times take the zone
// library's forward interpretation.
func (p *Projector) CivilToInstant(year int, month time.Month, day, hour, minute int) time.Time {
	// Normalize overflowing fields (hour 24, minute 90, day 32) with plain
	// calendar arithmetic before consulting the zone.
	c := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(hour*60+minute) * time.Minute)
	year, month, day, hour, minute = c.Year(), c.Month(), c.Day(), c.Hour(), c.Minute()

	if t, ok := p.exact(year, month, day, hour, minute); ok {
		return t
	}
	// The requested wall time falls inside a DST gap. Walk forward one civil
	// minute at a time until a real wall time appears.
	for i := 1; i <= maxDSTGapMinutes; i++ {
		c := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).
			Add(time.Duration(hour*60+minute+i) * time.Minute)
		if t, ok := p.exact(c.Year(), c.Month(), c.Day(), c.Hour(), c.Minute()); ok {
			return t
		}
	}
	t, _ := p.exact(year, month, day, hour, minute)
	return t
}

// InstantToCivil projects an absolute instant back into wall-clock terms.
func (p *Projector) InstantToCivil(t time.Time) Civil {
	l := t.In(p.loc)
	return Civil{
		Year:    l.Year(),
		Month:   l.Month(),
		Day:     l.Day(),
		Hour:    l.Hour(),
		Minute:  l.Minute(),
		Weekday: l.Weekday(),
	}
}

// MinuteOfDay anchors a civil minute offset onto a civil date. A value of
// MinutesPerDay yields midnight of the following day.
func (p *Projector) MinuteOfDay(year int, month time.Month, day, minute int) time.Time {
	return p.CivilToInstant(year, month, day, minute/60, minute%60)
}

// exact returns the instant for a wall time only when the zone actually
// contains that wall time.
func (p *Projector) exact(year int, month time.Month, day, hour, minute int) (time.Time, bool) {
	t := time.Date(year, month, day, hour, minute, 0, 0, p.loc)
	ok := t.Year() == year && t.Month() == month && t.Day() == day &&
		t.Hour() == hour && t.Minute() == minute
	return t, ok
}
