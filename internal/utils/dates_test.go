package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/internal/domain"
)

func testPolicy(t *testing.T, now time.Time) StayPolicy {
	t.Helper()
	p, err := NewStayPolicy(12, 11, "Africa/Cairo")
	require.NoError(t, err)
	p.Now = func() time.Time { return now }
	return p
}

func TestNewStayPolicyBadZone(t *testing.T) {
	_, err := NewStayPolicy(12, 11, "Mars/Olympus")
	assert.Error(t, err)
}

func TestAnchorIdempotent(t *testing.T) {
	p := testPolicy(t, time.Now())

	raw := time.Date(2026, 9, 10, 17, 42, 3, 0, p.Location)
	anchored := p.AnchorStart(raw)
	assert.Equal(t, 12, anchored.Hour())
	assert.Equal(t, 0, anchored.Minute())
	assert.Equal(t, anchored, p.AnchorStart(anchored))

	end := p.AnchorEnd(raw)
	assert.Equal(t, 11, end.Hour())
	assert.Equal(t, end, p.AnchorEnd(end))
}

func TestParseStayDates(t *testing.T) {
	p := testPolicy(t, time.Now())

	start, err := p.ParseStart("2026-09-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 10, 12, 0, 0, 0, p.Location), start)

	end, err := p.ParseEnd("2026-09-13")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 13, 11, 0, 0, 0, p.Location), end)

	_, err = p.ParseStart("10-09-2026")
	assert.True(t, domain.IsValidation(err))
	_, err = p.ParseEnd("")
	assert.True(t, domain.IsValidation(err))
}

func TestBookingWindowRollsBackBeforeCutoff(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Cairo")
	require.NoError(t, err)

	// At 10:59 local, one hour before check-in, yesterday's check-in instant
	// is still reachable.
	p := testPolicy(t, time.Date(2026, 9, 10, 10, 59, 0, 0, loc))
	minStart, maxStart := p.BookingWindow()
	assert.Equal(t, time.Date(2026, 9, 9, 12, 0, 0, 0, loc), minStart)
	assert.Equal(t, time.Date(2027, 3, 8, 12, 0, 0, 0, loc), maxStart)

	// From 11:00 onwards the window starts today.
	p = testPolicy(t, time.Date(2026, 9, 10, 11, 0, 0, 0, loc))
	minStart, _ = p.BookingWindow()
	assert.Equal(t, time.Date(2026, 9, 10, 12, 0, 0, 0, loc), minStart)
}

func TestStayWindow(t *testing.T) {
	p := testPolicy(t, time.Now())
	start := time.Date(2026, 9, 10, 12, 0, 0, 0, p.Location)

	minEnd, maxEnd := p.StayWindow(start)
	assert.Equal(t, time.Date(2026, 9, 11, 11, 0, 0, 0, p.Location), minEnd)
	assert.Equal(t, time.Date(2026, 12, 9, 11, 0, 0, 0, p.Location), maxEnd)
}

func TestNormalizeStay(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Cairo")
	require.NoError(t, err)
	p := testPolicy(t, time.Date(2026, 9, 1, 15, 0, 0, 0, loc))

	start, end, err := p.NormalizeStay("2026-09-10", "2026-09-13")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 10, 12, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 9, 13, 11, 0, 0, 0, loc), end)

	// Start in the past.
	_, _, err = p.NormalizeStay("2026-08-31", "2026-09-05")
	assert.True(t, domain.IsBookingWindow(err))

	// Start beyond the advance limit.
	_, _, err = p.NormalizeStay("2027-03-15", "2027-03-20")
	assert.True(t, domain.IsBookingWindow(err))

	// Zero nights.
	_, _, err = p.NormalizeStay("2026-09-10", "2026-09-10")
	assert.True(t, domain.IsBookingWindow(err))

	// Over the max stay length.
	_, _, err = p.NormalizeStay("2026-09-10", "2026-12-25")
	assert.True(t, domain.IsBookingWindow(err))
}
