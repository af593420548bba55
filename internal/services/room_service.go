package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hotel/internal/db"
	"hotel/internal/domain"
	"hotel/internal/domain/models"
	"hotel/internal/repositories"
	"hotel/internal/utils"
)

// RoomService manages the category/unit lifecycle: atomic multi-document
// creation and guarded unit deletion.
type RoomService struct {
	RoomRepo  repositories.RoomRepository
	UnitRepo  repositories.UnitRepository
	DB        *sql.DB
	RequestID string

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (s RoomService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateRoomWithUnits persists one category together with all of its units in
// a single transaction. Any validation or insert failure rolls back the whole
// batch and is reported as an AtomicCreateError carrying the cause.
func (s RoomService) CreateRoomWithUnits(ctx context.Context, room models.Room, units []models.Unit) (models.Room, []models.Unit, error) {
	if err := room.Validate(); err != nil {
		return models.Room{}, nil, domain.AtomicCreateError{Resource: "room", Err: err}
	}
	if err := validateUnitBatch(room.ID, units); err != nil {
		return models.Room{}, nil, domain.AtomicCreateError{Resource: "room", Err: err}
	}

	err := db.WithTx(ctx, s.DB, nil, func(tx *sql.Tx) error {
		if err := s.RoomRepo.InsertTx(tx, room); err != nil {
			return err
		}
		for i := range units {
			units[i].RoomID = room.ID
			if err := s.UnitRepo.InsertTx(tx, units[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Room{}, nil, domain.AtomicCreateError{Resource: "room", Err: err}
	}

	room.UnitIDs = make([]string, 0, len(units))
	for _, u := range units {
		room.UnitIDs = append(room.UnitIDs, u.ID)
	}
	utils.LogEvent(s.RequestID, "room", "create", fmt.Sprintf("room %s created with %d units", room.ID, len(units)))
	return room, units, nil
}

// CreateUnits persists a batch of units for existing categories atomically.
func (s RoomService) CreateUnits(ctx context.Context, units []models.Unit) ([]models.Unit, error) {
	if len(units) == 0 {
		return nil, domain.ValidationError{Field: "units", Msg: "field is required"}
	}
	seen := map[string]struct{}{}
	for _, u := range units {
		if err := u.Validate(); err != nil {
			return nil, domain.AtomicCreateError{Resource: "units", Err: err}
		}
		if _, dup := seen[u.ID]; dup {
			return nil, domain.AtomicCreateError{Resource: "units", Err: fmt.Errorf("duplicate unit id %s in batch", u.ID)}
		}
		seen[u.ID] = struct{}{}
	}

	err := db.WithTx(ctx, s.DB, nil, func(tx *sql.Tx) error {
		for _, u := range units {
			ok, err := s.RoomRepo.ExistsTx(tx, u.RoomID)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ValidationError{Field: "room_id", Msg: fmt.Sprintf("room_id '%s' doesn't exist in rooms collection", u.RoomID)}
			}
			if err := s.UnitRepo.InsertTx(tx, u); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.AtomicCreateError{Resource: "units", Err: err}
	}
	utils.LogEvent(s.RequestID, "unit", "create", fmt.Sprintf("%d units created", len(units)))
	return units, nil
}

// DeleteUnit removes a unit unless it still has bookings ending in the
// future. The check and the delete share one transaction, with the unit row
// locked, so a concurrent booking insert cannot slip between them.
func (s RoomService) DeleteUnit(ctx context.Context, id string) error {
	err := db.WithTx(ctx, s.DB, nil, func(tx *sql.Tx) error {
		unit, err := s.UnitRepo.GetForUpdateTx(tx, id)
		if err != nil {
			return err
		}
		count, err := s.UnitRepo.CountActiveBookingsTx(tx, unit.ID, s.now())
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ActiveBookingsError{UnitID: unit.ID, Count: count}
		}
		return s.UnitRepo.DeleteTx(tx, unit.ID)
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "unit", "delete", "unit "+id+" deleted")
	return nil
}

// UpdateRoom merges a patch into the stored category and rewrites it.
func (s RoomService) UpdateRoom(ctx context.Context, id string, patch RoomPatch) (models.Room, error) {
	room, err := s.RoomRepo.GetByID(ctx, id)
	if err != nil {
		return models.Room{}, err
	}
	patch.apply(&room)
	if err := room.Validate(); err != nil {
		return models.Room{}, domain.ValidationError{Field: "room", Msg: err.Error()}
	}
	if err := s.RoomRepo.Update(ctx, room); err != nil {
		return models.Room{}, err
	}
	return room, nil
}

// UpdateUnit merges a patch into the stored unit and rewrites it.
func (s RoomService) UpdateUnit(ctx context.Context, id string, patch UnitPatch) (models.Unit, error) {
	unit, err := s.UnitRepo.GetByID(ctx, id)
	if err != nil {
		return models.Unit{}, err
	}
	patch.apply(&unit)
	if err := unit.Validate(); err != nil {
		return models.Unit{}, domain.ValidationError{Field: "unit", Msg: err.Error()}
	}
	if err := s.UnitRepo.Update(ctx, unit); err != nil {
		return models.Unit{}, err
	}
	return unit, nil
}

// DeleteRoom removes a category. Unit rows guard themselves through the
// foreign key, so a category with remaining units cannot be dropped.
func (s RoomService) DeleteRoom(ctx context.Context, id string) error {
	return s.RoomRepo.Delete(ctx, id)
}

// RoomPatch supports PATCH-style updates via key presence.
type RoomPatch struct {
	Type       *string   `json:"type"`
	SizeM2     *int      `json:"size_m2"`
	Balcony    *bool     `json:"balcony"`
	View       *string   `json:"view"`
	MaxGuests  *int      `json:"max_guests"`
	Facilities *[]string `json:"facilities"`
	Images     *[]string `json:"images"`
	Price      *float64  `json:"price"`
}

func (p RoomPatch) apply(room *models.Room) {
	if p.Type != nil {
		room.Type = *p.Type
	}
	if p.SizeM2 != nil {
		room.SizeM2 = *p.SizeM2
	}
	if p.Balcony != nil {
		room.Balcony = *p.Balcony
	}
	if p.View != nil {
		room.View = *p.View
	}
	if p.MaxGuests != nil {
		room.MaxGuests = *p.MaxGuests
	}
	if p.Facilities != nil {
		room.Facilities = *p.Facilities
	}
	if p.Images != nil {
		room.Images = *p.Images
	}
	if p.Price != nil {
		room.Price.Original = *p.Price
	}
}

// UnitPatch supports PATCH-style updates via key presence.
type UnitPatch struct {
	RoomID  *string `json:"room_id"`
	Floor   *int    `json:"floor"`
	Smoking *bool   `json:"smoking"`
}

func (p UnitPatch) apply(unit *models.Unit) {
	if p.RoomID != nil {
		unit.RoomID = *p.RoomID
	}
	if p.Floor != nil {
		unit.Floor = *p.Floor
	}
	if p.Smoking != nil {
		unit.Smoking = *p.Smoking
	}
}

func validateUnitBatch(roomID string, units []models.Unit) error {
	seen := map[string]struct{}{}
	for _, u := range units {
		u.RoomID = roomID
		if err := u.Validate(); err != nil {
			return err
		}
		if _, dup := seen[u.ID]; dup {
			return fmt.Errorf("duplicate unit id %s in batch", u.ID)
		}
		seen[u.ID] = struct{}{}
	}
	return nil
}
