package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"hotel/internal/domain"
	"hotel/internal/domain/models"
	"hotel/internal/repositories"
	"hotel/internal/utils"
)

func newAvailabilityService(t *testing.T) (AvailabilityService, sqlmock.Sqlmock, *time.Location) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	clock, loc := fixedClock(t)
	policy, err := utils.NewStayPolicy(12, 11, "Africa/Cairo")
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	policy.Now = clock

	svc := AvailabilityService{
		RoomRepo: repositories.RoomRepository{DB: mockDB},
		UnitRepo: repositories.UnitRepository{DB: mockDB},
		Policy:   policy,
		Now:      clock,
	}
	return svc, mock, loc
}

func TestFindAvailableUnits(t *testing.T) {
	svc, mock, loc := newAvailabilityService(t)
	rooms := []models.Room{{ID: "deluxe01", Type: "deluxe"}}

	mock.ExpectQuery(`SELECT id, room_id, floor, smoking FROM units WHERE room_id IN`).
		WithArgs("deluxe01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "floor", "smoking"}).
			AddRow("1001", "deluxe01", 1, false).
			AddRow("1002", "deluxe01", 1, false))
	// 1001 has a stay overlapping the request; 1002 has one that is clear.
	mock.ExpectQuery(`SELECT unit_id, start_at, end_at FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"unit_id", "start_at", "end_at"}).
			AddRow("1001",
				time.Date(2026, 9, 12, 12, 0, 0, 0, loc).UTC(),
				time.Date(2026, 9, 15, 11, 0, 0, 0, loc).UTC()).
			AddRow("1002",
				time.Date(2026, 9, 13, 12, 0, 0, 0, loc).UTC(),
				time.Date(2026, 9, 15, 11, 0, 0, 0, loc).UTC()))

	units, err := svc.FindAvailableUnits(context.Background(), "2026-09-10", "2026-09-13", nil, rooms)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(units) != 1 || units[0].ID != "1002" {
		t.Fatalf("expected only unit 1002, got %+v", units)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFindAvailableUnitsInvalidDates(t *testing.T) {
	svc, _, _ := newAvailabilityService(t)
	rooms := []models.Room{{ID: "deluxe01"}}

	_, err := svc.FindAvailableUnits(context.Background(), "garbage", "2026-09-13", nil, rooms)
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	_, err = svc.FindAvailableUnits(context.Background(), "2026-08-01", "2026-08-05", nil, rooms)
	if !domain.IsBookingWindow(err) {
		t.Fatalf("expected BookingWindowError, got %v", err)
	}
}

func TestFindAvailableUnitsGrouped(t *testing.T) {
	svc, mock, loc := newAvailabilityService(t)
	rooms := []models.Room{
		{ID: "deluxe01", Type: "deluxe"},
		{ID: "premier01", Type: "premier"},
	}

	mock.ExpectQuery(`SELECT id, room_id, floor, smoking FROM units WHERE room_id IN`).
		WithArgs("deluxe01", "premier01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "floor", "smoking"}).
			AddRow("1001", "deluxe01", 1, false).
			AddRow("2001", "premier01", 2, false))
	mock.ExpectQuery(`SELECT unit_id, start_at, end_at FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"unit_id", "start_at", "end_at"}).
			AddRow("2001",
				time.Date(2026, 9, 9, 12, 0, 0, 0, loc).UTC(),
				time.Date(2026, 9, 14, 11, 0, 0, 0, loc).UTC()))

	grouped, err := svc.FindAvailableUnitsGrouped(context.Background(), "2026-09-10", "2026-09-13", nil, rooms)
	if err != nil {
		t.Fatalf("grouped: %v", err)
	}
	if len(grouped["deluxe01"]) != 1 || grouped["deluxe01"][0].ID != "1001" {
		t.Fatalf("expected unit 1001 under deluxe01, got %+v", grouped)
	}
	// Fully booked rooms keep an empty entry; they are not missing.
	units, ok := grouped["premier01"]
	if !ok || len(units) != 0 {
		t.Fatalf("expected empty entry for premier01, got %+v", grouped)
	}
}
