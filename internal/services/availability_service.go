package services

import (
	"context"
	"time"

	"hotel/internal/domain/models"
	"hotel/internal/metrics"
	"hotel/internal/repositories"
	"hotel/internal/utils"
)

// AvailabilityService answers "which units are free for this stay" on top of
// the stay-date policy and the conflict rule.
type AvailabilityService struct {
	RoomRepo repositories.RoomRepository
	UnitRepo repositories.UnitRepository
	Policy   utils.StayPolicy

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (s AvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// FindTargetRooms filters room categories by price range and view. Zero
// matches aborts the availability flow with NoCandidatesError so callers can
// distinguish it from "candidates exist but are fully booked".
func (s AvailabilityService) FindTargetRooms(ctx context.Context, min float64, max *float64, view string) ([]models.Room, error) {
	return s.RoomRepo.FindTargetRooms(ctx, min, max, view)
}

// FindAvailableUnits returns the units of the candidate rooms that are free
// for the requested stay. A unit survives only when every one of its active
// bookings is non-conflicting with the request.
func (s AvailabilityService) FindAvailableUnits(ctx context.Context, rawStart, rawEnd string, smoking *bool, rooms []models.Room) ([]models.Unit, error) {
	start, end, err := s.Policy.NormalizeStay(rawStart, rawEnd)
	if err != nil {
		metrics.IncAvailabilityQuery("invalid")
		return nil, err
	}
	requested := models.Interval{Start: start, End: end}

	roomIDs := make([]string, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.ID)
	}

	units, err := s.UnitRepo.ListByRooms(ctx, roomIDs, smoking)
	if err != nil {
		return nil, err
	}

	unitIDs := make([]string, 0, len(units))
	for _, u := range units {
		unitIDs = append(unitIDs, u.ID)
	}
	active, err := s.UnitRepo.LoadActiveBookings(ctx, unitIDs, s.now())
	if err != nil {
		return nil, err
	}

	available := []models.Unit{}
	for _, u := range units {
		u.CurrentBookings = active[u.ID]
		if u.AvailableFor(requested) {
			available = append(available, u)
		}
	}

	if len(available) == 0 {
		metrics.IncAvailabilityQuery("fully_booked")
	} else {
		metrics.IncAvailabilityQuery("ok")
	}
	return available, nil
}

// FindAvailableUnitsGrouped partitions the surviving units by owning room,
// preserving per-room order. Rooms with zero matching units keep an empty
// entry so callers can tell them apart from missing rooms.
func (s AvailabilityService) FindAvailableUnitsGrouped(ctx context.Context, rawStart, rawEnd string, smoking *bool, rooms []models.Room) (map[string][]models.Unit, error) {
	available, err := s.FindAvailableUnits(ctx, rawStart, rawEnd, smoking, rooms)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.Unit, len(rooms))
	for _, room := range rooms {
		grouped[room.ID] = []models.Unit{}
	}
	for _, u := range available {
		grouped[u.RoomID] = append(grouped[u.RoomID], u)
	}
	return grouped, nil
}

// Search runs the full flow of the /units/search endpoint: target rooms by
// price/view, then grouped availability for the requested stay.
func (s AvailabilityService) Search(ctx context.Context, rawStart, rawEnd string, min float64, max *float64, view string, smoking *bool) ([]models.Room, map[string][]models.Unit, error) {
	rooms, err := s.FindTargetRooms(ctx, min, max, view)
	if err != nil {
		metrics.IncAvailabilityQuery("no_candidates")
		return nil, nil, err
	}
	grouped, err := s.FindAvailableUnitsGrouped(ctx, rawStart, rawEnd, smoking, rooms)
	if err != nil {
		return nil, nil, err
	}
	return rooms, grouped, nil
}
