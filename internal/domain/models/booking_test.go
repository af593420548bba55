package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cairo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Cairo")
	require.NoError(t, err)
	return loc
}

func stay(loc *time.Location, startDay, endDay int) Interval {
	return Interval{
		Start: time.Date(2026, 9, startDay, 12, 0, 0, 0, loc),
		End:   time.Date(2026, 9, endDay, 11, 0, 0, 0, loc),
	}
}

func TestConflictsWithBackToBack(t *testing.T) {
	loc := cairo(t)
	existing := stay(loc, 10, 13)

	// Starting exactly at the existing checkout (11:00) is allowed even
	// though the calendar days touch.
	after := stay(loc, 13, 15)
	assert.False(t, after.ConflictsWith(existing))

	// Ending exactly at the existing check-in is allowed: checkout at 11:00
	// precedes the next check-in at 12:00 the same day.
	before := stay(loc, 8, 10)
	assert.False(t, before.ConflictsWith(existing))
}

func TestConflictsWithOverlap(t *testing.T) {
	loc := cairo(t)
	existing := stay(loc, 10, 13)

	cases := map[string]Interval{
		"starts inside":   stay(loc, 11, 15),
		"ends inside":     stay(loc, 9, 11),
		"covers":          stay(loc, 9, 14),
		"contained":       stay(loc, 11, 12),
		"identical":       stay(loc, 10, 13),
		"same day start":  stay(loc, 10, 11),
		"straddles start": stay(loc, 9, 12),
	}
	for name, requested := range cases {
		assert.True(t, requested.ConflictsWith(existing), name)
	}
}

func TestConflictsWithIsAsymmetric(t *testing.T) {
	loc := cairo(t)
	existing := stay(loc, 10, 13)

	// A request starting at the existing start but ending before it began is
	// impossible with anchored hours, but the guard on both sides matters:
	// starting at or after existing.End is the only start-side escape.
	touching := Interval{
		Start: existing.End,
		End:   existing.End.AddDate(0, 0, 2),
	}
	assert.False(t, touching.ConflictsWith(existing))
	// The mirrored comparison is a conflict: the existing stay starts before
	// the touching one ends and does not start at or after its end.
	assert.True(t, existing.ConflictsWith(touching))
}

func TestIntervalActive(t *testing.T) {
	loc := cairo(t)
	iv := stay(loc, 10, 13)

	assert.True(t, iv.Active(iv.End.Add(-time.Minute)))
	assert.False(t, iv.Active(iv.End))
	assert.False(t, iv.Active(iv.End.Add(time.Minute)))
}

func TestBookingStatusPartition(t *testing.T) {
	loc := cairo(t)
	b := Booking{Dates: StayDates{
		Start: time.Date(2026, 9, 10, 12, 0, 0, 0, loc),
		End:   time.Date(2026, 9, 13, 11, 0, 0, 0, loc),
	}}

	assert.Equal(t, StatusBooked, b.Status(b.Dates.Start.Add(-time.Second)))
	assert.Equal(t, StatusInStay, b.Status(b.Dates.Start))
	assert.Equal(t, StatusInStay, b.Status(b.Dates.End.Add(-time.Second)))
	assert.Equal(t, StatusCompleted, b.Status(b.Dates.End))
	assert.Equal(t, StatusCompleted, b.Status(b.Dates.End.AddDate(0, 1, 0)))
}

func TestNights(t *testing.T) {
	loc := cairo(t)

	oneNight := Booking{Dates: StayDates{
		Start: time.Date(2026, 9, 10, 12, 0, 0, 0, loc),
		End:   time.Date(2026, 9, 11, 11, 0, 0, 0, loc),
	}}
	assert.Equal(t, 1, oneNight.Nights())
	assert.Equal(t, "1 day", oneNight.NightsLabel())

	threeNights := Booking{Dates: StayDates{
		Start: time.Date(2026, 9, 10, 12, 0, 0, 0, loc),
		End:   time.Date(2026, 9, 13, 11, 0, 0, 0, loc),
	}}
	assert.Equal(t, 3, threeNights.Nights())
	assert.Equal(t, "3 days", threeNights.NightsLabel())
}

func TestUnitAvailableFor(t *testing.T) {
	loc := cairo(t)
	requested := stay(loc, 12, 14)

	// Every active booking must be non-conflicting; one overlap sinks the
	// whole unit even when another booking is clear of the request.
	unit := Unit{ID: "1001", RoomID: "deluxe", Floor: 1, CurrentBookings: []Interval{
		stay(loc, 1, 5),
		stay(loc, 13, 16),
	}}
	assert.False(t, unit.AvailableFor(requested))

	unit.CurrentBookings = []Interval{stay(loc, 1, 5), stay(loc, 14, 16)}
	assert.True(t, unit.AvailableFor(requested))

	unit.CurrentBookings = nil
	assert.True(t, unit.AvailableFor(requested))
}

func TestValidEnums(t *testing.T) {
	assert.True(t, ValidMealPlan("none"))
	assert.True(t, ValidMealPlan("all_inclusive"))
	assert.False(t, ValidMealPlan("dinner"))

	assert.True(t, ValidPaymentMethod("online"))
	assert.True(t, ValidPaymentMethod("at_property"))
	assert.False(t, ValidPaymentMethod("cash"))
}
