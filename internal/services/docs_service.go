package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"hotel/internal/domain/models"
	"hotel/internal/repositories"
	"hotel/internal/utils"
)

// DocsService renders booking confirmation PDFs.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	RoomRepo    repositories.RoomRepository
	RequestID   string

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GenerateConfirmation builds a confirmation document for one booking.
// Returns the PDF bytes and a suggested filename.
func (s DocsService) GenerateConfirmation(ctx context.Context, bookingID int64) ([]byte, string, error) {
	booking, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	roomType := booking.RoomID
	if room, err := s.RoomRepo.GetByID(ctx, booking.RoomID); err == nil {
		roomType = room.Type
	}
	utils.LogEvent(s.RequestID, "docs", "generate_confirmation", fmt.Sprintf("booking_id=%d", bookingID))
	return buildConfirmationPDF(booking, roomType, s.now())
}

func buildConfirmationPDF(b models.Booking, roomType string, now time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING CONFIRMATION")
	pdf.Ln(12)

	localeStart, localeEnd := b.LocaleDates()
	paid := "no"
	if b.Payment.IsPaid {
		paid = "yes"
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking        : #%d", b.ID),
		fmt.Sprintf("Status         : %s", b.Status(now)),
		fmt.Sprintf("Room type      : %s", roomType),
		fmt.Sprintf("Unit           : %s", b.UnitID),
		fmt.Sprintf("Check-in       : %s", localeStart),
		fmt.Sprintf("Check-out      : %s", localeEnd),
		fmt.Sprintf("Duration       : %s", b.NightsLabel()),
		fmt.Sprintf("Meals          : %s", b.Meals),
		fmt.Sprintf("Paid           : %s", paid),
		fmt.Sprintf("Amount         : %.2f %s (%s)", b.Payment.Amount, b.Payment.Currency, b.Payment.Method),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this confirmation together with the passport used at booking time when checking in.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("booking-%d-confirmation.pdf", b.ID)
	return buf.Bytes(), filename, nil
}
