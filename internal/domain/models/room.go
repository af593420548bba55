package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Room types offered by the property. The type name is unique per room.
var RoomTypes = []string{
	"superior",
	"deluxe",
	"premier",
	"signature",
	"signature_plus",
	"signature_panorama",
}

// Room views accepted on a room category.
var RoomViews = []string{"pool", "partial_sea", "sea"}

var alnumRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// Price is a room category's nightly price.
type Price struct {
	Original float64 `json:"original"`
	Currency string  `json:"currency"`
}

// Room is a category of physical units sharing size, price and amenities.
type Room struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	SizeM2     int      `json:"size_m2"`
	Balcony    bool     `json:"balcony"`
	View       string   `json:"view"`
	MaxGuests  int      `json:"max_guests"`
	Facilities []string `json:"facilities"`
	Images     []string `json:"images"`
	Price      Price    `json:"price"`
	// UnitIDs lists the identifiers of units owned by this category.
	UnitIDs []string `json:"units"`
}

// Validate enforces the category's field rules.
func (r Room) Validate() error {
	if l := len(strings.TrimSpace(r.ID)); l < 5 || l > 20 {
		return fmt.Errorf("id has to be between 5 and 20 characters")
	}
	if !alnumRe.MatchString(r.ID) {
		return fmt.Errorf("id has to contain only letters and numbers")
	}
	if !validRoomType(r.Type) {
		return fmt.Errorf("type has to be one of: %s", strings.Join(RoomTypes, ", "))
	}
	if r.SizeM2 < 35 || r.SizeM2 > 120 {
		return fmt.Errorf("size_m2 has to be between 35 and 120")
	}
	if !validRoomView(r.View) {
		return fmt.Errorf("view has to be one of: %s", strings.Join(RoomViews, ", "))
	}
	if r.MaxGuests < 1 || r.MaxGuests > 4 {
		return fmt.Errorf("max_guests has to be between 1 and 4")
	}
	if r.Price.Original < 0 {
		return fmt.Errorf("price has to be non-negative")
	}
	if hasDuplicates(r.Facilities) {
		return fmt.Errorf("facilities has to be an array of unique values")
	}
	return nil
}

func validRoomType(v string) bool {
	for _, t := range RoomTypes {
		if t == v {
			return true
		}
	}
	return false
}

func validRoomView(v string) bool {
	for _, t := range RoomViews {
		if t == v {
			return true
		}
	}
	return false
}

func hasDuplicates(items []string) bool {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			return true
		}
		seen[it] = struct{}{}
	}
	return false
}
