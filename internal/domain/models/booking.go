package models

import (
	"fmt"
	"math"
	"time"
)

// Derived booking statuses. Never stored; always recomputed from the clock.
const (
	StatusBooked    = "Booked"
	StatusInStay    = "In Stay"
	StatusCompleted = "Completed"
)

// Meal plans accepted on a booking.
var MealPlans = []string{"none", "breakfast", "breakfast_and_lunch", "all_inclusive"}

// Payment methods accepted on a booking.
var PaymentMethods = []string{"at_property", "online"}

// Interval is a half-open [Start, End) stay interval.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two half-open intervals intersect.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// ConflictsWith reports whether a requested interval conflicts with an
// existing booking interval. A request is non-conflicting only when it starts
// at or after the existing checkout, or lies wholly before the existing
// check-in (ending at the check-in instant is allowed). The asymmetry between
// the two sides is intentional; do not replace this with !Overlaps.
func (a Interval) ConflictsWith(existing Interval) bool {
	if !a.Start.Before(existing.End) {
		return false
	}
	if a.Start.Before(existing.Start) && !a.End.After(existing.Start) {
		return false
	}
	return true
}

// Active reports whether the interval's end is still in the future.
func (a Interval) Active(now time.Time) bool {
	return a.End.After(now)
}

// StayDates holds a booking's interval plus the policy snapshot it was
// normalized with. The hour/zone fields are fixed at creation time.
type StayDates struct {
	CheckInHour  int       `json:"check_in_locale_hr"`
	CheckOutHour int       `json:"check_out_locale_hr"`
	TimeZone     string    `json:"time_zone"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
}

func (d StayDates) Interval() Interval {
	return Interval{Start: d.Start, End: d.End}
}

// Payment records how and whether a booking was paid.
type Payment struct {
	IsPaid   bool    `json:"is_paid"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Method   string  `json:"method"`
}

// Booking reserves one unit for one guest over a stay interval.
type Booking struct {
	ID             int64     `json:"id"`
	GuestID        int64     `json:"guest_id"`
	RoomID         string    `json:"room_id"`
	UnitID         string    `json:"unit_id"`
	PassportNumber string    `json:"passport_number"`
	Meals          string    `json:"meals"`
	Dates          StayDates `json:"dates"`
	Payment        Payment   `json:"payment"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Status derives the lifecycle state from the clock and the stored interval.
// The three regions are contiguous: Booked before start, In Stay within
// [start, end), Completed from end onwards.
func (b Booking) Status(now time.Time) string {
	switch {
	case now.Before(b.Dates.Start):
		return StatusBooked
	case now.Before(b.Dates.End):
		return StatusInStay
	default:
		return StatusCompleted
	}
}

// Nights returns the stay length in whole days.
func (b Booking) Nights() int {
	return int(math.Round(b.Dates.End.Sub(b.Dates.Start).Hours() / 24))
}

// NightsLabel formats the duration the way the booking payloads expose it.
func (b Booking) NightsLabel() string {
	n := b.Nights()
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// LocaleDates renders the stay bounds in the booking's own timezone for
// display only; comparisons always use the stored instants.
func (b Booking) LocaleDates() (start, end string) {
	loc, err := time.LoadLocation(b.Dates.TimeZone)
	if err != nil {
		loc = time.UTC
	}
	const layout = "Monday, January 2, 2006 3:04:05 PM MST"
	return b.Dates.Start.In(loc).Format(layout), b.Dates.End.In(loc).Format(layout)
}

// BookingUpdate supports PATCH-style updates via key presence. Only
// guest-editable fields are listed; dates and payment are immutable here.
type BookingUpdate struct {
	Meals          *string `json:"meals"`
	PassportNumber *string `json:"passport_number"`
}

// ValidMealPlan reports whether v is one of the accepted meal plans.
func ValidMealPlan(v string) bool {
	for _, m := range MealPlans {
		if m == v {
			return true
		}
	}
	return false
}

// ValidPaymentMethod reports whether v is one of the accepted methods.
func ValidPaymentMethod(v string) bool {
	for _, m := range PaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}
