package utils

import (
	"fmt"
	"strings"
	"time"

	"hotel/internal/domain"
)

const (
	// LayoutStayDate is the wire format for stay dates.
	LayoutStayDate = "2006-01-02"

	layoutBound = "2006-01-02 15:04 MST"
)

// StayPolicy normalizes user-supplied stay dates into absolute instants and
// owns the booking-window bounds. The hours are local to Location.
type StayPolicy struct {
	CheckInHour    int
	CheckOutHour   int
	Location       *time.Location
	MaxAdvanceDays int
	MinNights      int
	MaxNights      int

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

// NewStayPolicy builds a policy for the given IANA zone with the standard
// window bounds (180 days advance, 1..90 nights).
func NewStayPolicy(checkInHour, checkOutHour int, timeZone string) (StayPolicy, error) {
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return StayPolicy{}, fmt.Errorf("load stay timezone %q: %w", timeZone, err)
	}
	return StayPolicy{
		CheckInHour:    checkInHour,
		CheckOutHour:   checkOutHour,
		Location:       loc,
		MaxAdvanceDays: 180,
		MinNights:      1,
		MaxNights:      90,
	}, nil
}

func (p StayPolicy) now() time.Time {
	if p.Now != nil {
		return p.Now().In(p.Location)
	}
	return time.Now().In(p.Location)
}

// AnchorStart pins t to the check-in hour of its calendar day in the policy
// zone, zeroing minutes and below. Anchoring an already-anchored instant is a
// no-op.
func (p StayPolicy) AnchorStart(t time.Time) time.Time {
	return anchor(t.In(p.Location), p.CheckInHour)
}

// AnchorEnd pins t to the check-out hour of its calendar day in the policy
// zone. Idempotent like AnchorStart.
func (p StayPolicy) AnchorEnd(t time.Time) time.Time {
	return anchor(t.In(p.Location), p.CheckOutHour)
}

func anchor(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

// ParseStart converts a raw date string into the check-in instant.
func (p StayPolicy) ParseStart(raw string) (time.Time, error) {
	day, err := p.parseDay(raw, "start")
	if err != nil {
		return time.Time{}, err
	}
	return anchor(day, p.CheckInHour), nil
}

// ParseEnd converts a raw date string into the check-out instant.
func (p StayPolicy) ParseEnd(raw string) (time.Time, error) {
	day, err := p.parseDay(raw, "end")
	if err != nil {
		return time.Time{}, err
	}
	return anchor(day, p.CheckOutHour), nil
}

func (p StayPolicy) parseDay(raw, field string) (time.Time, error) {
	day, err := time.ParseInLocation(LayoutStayDate, strings.TrimSpace(raw), p.Location)
	if err != nil {
		return time.Time{}, domain.ValidationError{
			Field: "dates." + field,
			Msg:   "date string received is not a valid date, expected YYYY-MM-DD",
			Err:   err,
		}
	}
	return day, nil
}

// BookingWindow returns the earliest and latest permissible check-in instants.
// Until one hour before the check-in hour, the previous night still counts as
// "today", so the window's lower bound rolls back one calendar day.
func (p StayPolicy) BookingWindow() (minStart, maxStart time.Time) {
	now := p.now()
	if now.Hour() < p.CheckInHour-1 {
		now = now.AddDate(0, 0, -1)
	}
	minStart = anchor(now, p.CheckInHour)
	maxStart = anchor(minStart.AddDate(0, 0, p.MaxAdvanceDays), p.CheckInHour)
	return minStart, maxStart
}

// StayWindow returns the earliest and latest permissible check-out instants
// for a stay beginning at start.
func (p StayPolicy) StayWindow(start time.Time) (minEnd, maxEnd time.Time) {
	start = start.In(p.Location)
	minEnd = anchor(start.AddDate(0, 0, p.MinNights), p.CheckOutHour)
	maxEnd = anchor(start.AddDate(0, 0, p.MaxNights), p.CheckOutHour)
	return minEnd, maxEnd
}

// ValidateStart checks start against the booking window, reporting the
// violated bound.
func (p StayPolicy) ValidateStart(start time.Time) error {
	minStart, maxStart := p.BookingWindow()
	if start.Before(minStart) || start.After(maxStart) {
		return domain.BookingWindowError{
			Field: "start",
			Bound: fmt.Sprintf("has to be between %s and %s",
				minStart.Format(layoutBound), maxStart.Format(layoutBound)),
		}
	}
	return nil
}

// ValidateEnd checks end against the stay window derived from start.
func (p StayPolicy) ValidateEnd(end, start time.Time) error {
	minEnd, maxEnd := p.StayWindow(start)
	if end.Before(minEnd) || end.After(maxEnd) {
		return domain.BookingWindowError{
			Field: "end",
			Bound: fmt.Sprintf("has to be between %s (start + %d day) and %s (start + %d days)",
				minEnd.Format(layoutBound), p.MinNights, maxEnd.Format(layoutBound), p.MaxNights),
		}
	}
	return nil
}

// NormalizeStay parses and validates a requested stay range in one step.
func (p StayPolicy) NormalizeStay(rawStart, rawEnd string) (start, end time.Time, err error) {
	start, err = p.ParseStart(rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = p.ParseEnd(rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if err = p.ValidateStart(start); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if err = p.ValidateEnd(end, start); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
