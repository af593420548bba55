package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"hotel/internal/domain"
	"hotel/internal/domain/models"
	"hotel/internal/repositories"
	"hotel/internal/utils"
)

func fixedClock(t *testing.T) (func() time.Time, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Cairo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, loc)
	return func() time.Time { return now }, loc
}

func newBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	clock, _ := fixedClock(t)
	policy, err := utils.NewStayPolicy(12, 11, "Africa/Cairo")
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	policy.Now = clock

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: mockDB},
		UnitRepo:    repositories.UnitRepository{DB: mockDB},
		RoomRepo:    repositories.RoomRepository{DB: mockDB},
		UserRepo:    repositories.UserRepository{DB: mockDB},
		DB:          mockDB,
		Policy:      policy,
		Now:         clock,
	}
	return svc, mock
}

func validCreate() BookingCreate {
	return BookingCreate{
		GuestID:        42,
		RoomID:         "deluxe01",
		UnitID:         "1001",
		PassportNumber: "AB12345",
		Meals:          "breakfast",
		Start:          "2026-09-10",
		End:            "2026-09-13",
		Payment:        models.Payment{Amount: 360, Method: "online"},
	}
}

func TestCreateBooking(t *testing.T) {
	svc, mock := newBookingService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, room_id, floor, smoking FROM units WHERE id=? FOR UPDATE`)).
		WithArgs("1001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "floor", "smoking"}).
			AddRow("1001", "deluxe01", 1, false))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM users WHERE id=? LIMIT 1`)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectQuery(`SELECT start_at, end_at FROM bookings`).
		WithArgs("1001", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"start_at", "end_at"}))
	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	booking, err := svc.Create(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if booking.ID != 7 {
		t.Fatalf("expected id 7, got %d", booking.ID)
	}
	if booking.Dates.CheckInHour != 12 || booking.Dates.CheckOutHour != 11 {
		t.Fatalf("policy snapshot not recorded: %+v", booking.Dates)
	}
	if booking.Payment.Currency != "USD" {
		t.Fatalf("expected default currency USD, got %q", booking.Payment.Currency)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateBookingConflict(t *testing.T) {
	svc, mock := newBookingService(t)
	_, loc := fixedClock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, room_id, floor, smoking FROM units WHERE id=? FOR UPDATE`)).
		WithArgs("1001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "floor", "smoking"}).
			AddRow("1001", "deluxe01", 1, false))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM users WHERE id=? LIMIT 1`)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	// An existing stay overlapping the requested 10th..13th.
	mock.ExpectQuery(`SELECT start_at, end_at FROM bookings`).
		WithArgs("1001", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"start_at", "end_at"}).
			AddRow(
				time.Date(2026, 9, 12, 12, 0, 0, 0, loc).UTC(),
				time.Date(2026, 9, 15, 11, 0, 0, 0, loc).UTC()))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), validCreate())
	if !domain.IsBookingConflict(err) {
		t.Fatalf("expected BookingConflictError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateBookingWrongRoom(t *testing.T) {
	svc, mock := newBookingService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, room_id, floor, smoking FROM units WHERE id=? FOR UPDATE`)).
		WithArgs("1001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "floor", "smoking"}).
			AddRow("1001", "superior01", 1, false))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), validCreate())
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _ := newBookingService(t)

	cases := map[string]func(*BookingCreate){
		"missing guest":    func(in *BookingCreate) { in.GuestID = 0 },
		"missing room":     func(in *BookingCreate) { in.RoomID = "" },
		"missing unit":     func(in *BookingCreate) { in.UnitID = "" },
		"short passport":   func(in *BookingCreate) { in.PassportNumber = "A1" },
		"bad passport":     func(in *BookingCreate) { in.PassportNumber = "AB 12345!" },
		"bad meals":        func(in *BookingCreate) { in.Meals = "dinner" },
		"bad method":       func(in *BookingCreate) { in.Payment.Method = "cash" },
		"negative amount":  func(in *BookingCreate) { in.Payment.Amount = -1 },
	}
	for name, mutate := range cases {
		in := validCreate()
		mutate(&in)
		if _, err := svc.Create(context.Background(), in); !domain.IsValidation(err) {
			t.Errorf("%s: expected ValidationError, got %v", name, err)
		}
	}
}

func TestUpdateBookingGatedByStatus(t *testing.T) {
	svc, mock := newBookingService(t)
	_, loc := fixedClock(t)

	// Stay already started relative to the fixed clock (Sep 1, 15:00).
	rows := bookingRows().AddRow(
		int64(5), int64(42), "deluxe01", "1001", "AB12345", "breakfast",
		12, 11, "Africa/Cairo",
		time.Date(2026, 8, 30, 12, 0, 0, 0, loc).UTC(),
		time.Date(2026, 9, 3, 11, 0, 0, 0, loc).UTC(),
		true, 360.0, "USD", "online",
		time.Now(), time.Now())
	mock.ExpectQuery(`(?s)SELECT (.+) FROM bookings WHERE id=\?`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	meals := "all_inclusive"
	_, err := svc.Update(context.Background(), 5, models.BookingUpdate{Meals: &meals})
	if !domain.IsNotModifiable(err) {
		t.Fatalf("expected NotModifiableError, got %v", err)
	}
}

func TestUpdateBookingFields(t *testing.T) {
	svc, mock := newBookingService(t)
	_, loc := fixedClock(t)

	rows := bookingRows().AddRow(
		int64(5), int64(42), "deluxe01", "1001", "AB12345", "breakfast",
		12, 11, "Africa/Cairo",
		time.Date(2026, 9, 10, 12, 0, 0, 0, loc).UTC(),
		time.Date(2026, 9, 13, 11, 0, 0, 0, loc).UTC(),
		true, 360.0, "USD", "online",
		time.Now(), time.Now())
	mock.ExpectQuery(`(?s)SELECT (.+) FROM bookings WHERE id=\?`).
		WithArgs(int64(5)).
		WillReturnRows(rows)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE bookings SET meals=?, passport_number=? WHERE id=?`)).
		WithArgs("all_inclusive", "XY98765", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	meals := "all_inclusive"
	passport := "XY98765"
	booking, err := svc.Update(context.Background(), 5, models.BookingUpdate{
		Meals:          &meals,
		PassportNumber: &passport,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if booking.Meals != "all_inclusive" || booking.PassportNumber != "XY98765" {
		t.Fatalf("fields not applied: %+v", booking)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListByStatusRejectsUnknown(t *testing.T) {
	svc, _ := newBookingService(t)
	if _, err := svc.ListByStatus(context.Background(), "cancelled"); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "guest_id", "room_id", "unit_id", "passport_number", "meals",
		"check_in_hour", "check_out_hour", "time_zone", "start_at", "end_at",
		"paid", "amount", "currency", "method", "created_at", "updated_at",
	})
}
