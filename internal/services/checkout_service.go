package services

import (
	"context"
	"fmt"
	"time"

	"hotel/internal/domain"
	"hotel/internal/domain/models"
	"hotel/internal/utils"
)

// CheckoutService prepares the data the external payment collaborator needs
// to open a payment session. It reserves nothing: the actual booking is
// created later through BookingService.Create, which re-validates
// availability transactionally.
type CheckoutService struct {
	Availability AvailabilityService
	RequestID    string
}

// CheckoutIntent is handed to the payment layer. Amount is the category's
// nightly price; pricing beyond that is out of scope here.
type CheckoutIntent struct {
	GuestID  int64     `json:"guest_id"`
	RoomID   string    `json:"room_id"`
	RoomType string    `json:"room_type"`
	UnitID   string    `json:"unit_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Nights   int       `json:"nights"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
}

// CreateIntent picks the first unit of the requested category that is free
// for the stay and describes the pending purchase.
func (s CheckoutService) CreateIntent(ctx context.Context, guestID int64, roomID, rawStart, rawEnd string, smoking *bool) (CheckoutIntent, error) {
	room, err := s.Availability.RoomRepo.GetByID(ctx, roomID)
	if err != nil {
		return CheckoutIntent{}, err
	}

	units, err := s.Availability.FindAvailableUnits(ctx, rawStart, rawEnd, smoking, []models.Room{room})
	if err != nil {
		return CheckoutIntent{}, err
	}
	if len(units) == 0 {
		return CheckoutIntent{}, domain.NotFoundError{Resource: "available unit for room type", ID: roomID}
	}

	start, end, err := s.Availability.Policy.NormalizeStay(rawStart, rawEnd)
	if err != nil {
		return CheckoutIntent{}, err
	}

	selected := units[0]
	intent := CheckoutIntent{
		GuestID:  guestID,
		RoomID:   room.ID,
		RoomType: room.Type,
		UnitID:   selected.ID,
		Start:    start,
		End:      end,
		Nights:   int(end.Sub(start).Hours()/24 + 0.5),
		Amount:   room.Price.Original,
		Currency: room.Price.Currency,
	}
	utils.LogEvent(s.RequestID, "checkout", "intent", fmt.Sprintf("unit %s held for guest %d", selected.ID, guestID))
	return intent, nil
}
