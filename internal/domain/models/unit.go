package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit id space: four-digit identifiers where the first digit is the floor.
const (
	MinUnitID = 1001
	MaxUnitID = 4012
)

// Unit is one physical, bookable room instance belonging to a category.
type Unit struct {
	ID      string `json:"id"`
	RoomID  string `json:"room_id"`
	Floor   int    `json:"floor"`
	Smoking bool   `json:"smoking"`
	// CurrentBookings holds the unit's active booking intervals when loaded
	// explicitly by the repository; it is never populated implicitly.
	CurrentBookings []Interval `json:"current_bookings,omitempty"`
}

// Validate enforces the unit's field rules, including the floor/id encoding.
func (u Unit) Validate() error {
	id := strings.TrimSpace(u.ID)
	if len(id) != 4 {
		return fmt.Errorf("id has to be equal to 4 characters")
	}
	n, err := strconv.Atoi(id)
	if err != nil || n < MinUnitID || n > MaxUnitID {
		return fmt.Errorf("id has to be between %d and %d", MinUnitID, MaxUnitID)
	}
	if u.Floor < 1 || u.Floor > 4 {
		return fmt.Errorf("floor has to be between 1 and 4")
	}
	if !strings.HasPrefix(id, strconv.Itoa(u.Floor)) {
		return fmt.Errorf("floor has to be the same number as the first digit in id")
	}
	if strings.TrimSpace(u.RoomID) == "" {
		return fmt.Errorf("room_id is required")
	}
	return nil
}

// AvailableFor reports whether every loaded active booking leaves the
// requested interval conflict-free.
func (u Unit) AvailableFor(requested Interval) bool {
	for _, b := range u.CurrentBookings {
		if requested.ConflictsWith(b) {
			return false
		}
	}
	return true
}
