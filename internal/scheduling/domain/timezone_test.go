package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sundial-app/sundial/internal/scheduling/domain"
)

func TestNewProjector_DefaultsToUTC(t *testing.T) {
	p, err := domain.NewProjector("")

	require.NoError(t, err)
	assert.Equal(t, "UTC", p.Name())
	assert.Equal(t, time.UTC, p.Location())
}

func TestNewProjector_UnknownZone(t *testing.T) {
	_, err := domain.NewProjector("Mars/Olympus_Mons")

	require.Error(t, err)
	assert.Equal(t, domain.KindTimezone, domain.KindOf(err))
}

func TestProjector_RoundTrip(t *testing.T) {
	p, err := domain.NewProjector("Europe/Berlin")
	require.NoError(t, err)

	instant := p.CivilToInstant(2025, time.June, 15, 14, 30)
	c := p.InstantToCivil(instant)

	assert.Equal(t, 2025, c.Year)
	assert.Equal(t, time.June, c.Month)
	assert.Equal(t, 15, c.Day)
	assert.Equal(t, 14, c.Hour)
	assert.Equal(t, 30, c.Minute)
	assert.Equal(t, time.Sunday, c.Weekday)
}

func TestProjector_DSTGapResolvesForward(t *testing.T) {
	// US spring-forward on 2025-03-09 jumps 02:00 straight to 03:00;
	// 02:30 does not exist and must land on the first valid instant after it.
	p, err := domain.NewProjector("America/New_York")
	require.NoError(t, err)

	got := p.CivilToInstant(2025, time.March, 9, 2, 30)

	want := time.Date(2025, time.March, 9, 3, 0, 0, 0, p.Location())
	assert.True(t, got.Equal(want), "got %v, want %v", got, want)
}

func TestProjector_MinuteOfDay_MidnightEnd(t *testing.T) {
	p, err := domain.NewProjector("UTC")
	require.NoError(t, err)

	got := p.MinuteOfDay(2025, time.January, 6, domain.MinutesPerDay)

	want := time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC)
	assert.True(t, got.Equal(want))
}

func TestProjector_NormalizesOverflowingDay(t *testing.T) {
	p, err := domain.NewProjector("UTC")
	require.NoError(t, err)

	got := p.CivilToInstant(2025, time.January, 32, 9, 0)

	want := time.Date(2025, time.February, 1, 9, 0, 0, 0, time.UTC)
	assert.True(t, got.Equal(want))
}
