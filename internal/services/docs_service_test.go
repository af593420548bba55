package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"hotel/internal/domain/models"
	"hotel/internal/repositories"
)

func TestGenerateConfirmationPDF(t *testing.T) {
	clock, loc := fixedClock(t)

	booking := models.Booking{
		ID: 5, GuestID: 42, RoomID: "deluxe01", UnitID: "1001",
		PassportNumber: "AB12345", Meals: "breakfast",
		Dates: models.StayDates{
			CheckInHour: 12, CheckOutHour: 11, TimeZone: "Africa/Cairo",
			Start: time.Date(2026, 9, 10, 12, 0, 0, 0, loc),
			End:   time.Date(2026, 9, 13, 11, 0, 0, 0, loc),
		},
		Payment: models.Payment{IsPaid: true, Amount: 360, Currency: "USD", Method: "online"},
	}

	pdf, filename, err := buildConfirmationPDF(booking, "deluxe", clock())
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	if filename != "booking-5-confirmation.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestExportBookingsXLSX(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	clock, loc := fixedClock(t)
	rows := bookingRows().AddRow(
		int64(5), int64(42), "deluxe01", "1001", "AB12345", "breakfast",
		12, 11, "Africa/Cairo",
		time.Date(2026, 9, 10, 12, 0, 0, 0, loc).UTC(),
		time.Date(2026, 9, 13, 11, 0, 0, 0, loc).UTC(),
		true, 360.0, "USD", "online",
		time.Now(), time.Now())
	mock.ExpectQuery(`(?s)SELECT (.+) FROM bookings`).WillReturnRows(rows)

	svc := ExportService{
		BookingRepo: repositories.BookingRepository{DB: mockDB},
		Now:         clock,
	}
	data, filename, err := svc.ExportBookings(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected xlsx bytes")
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatal("output is not an xlsx archive")
	}
	if filename == "" {
		t.Fatal("expected a filename")
	}
}
