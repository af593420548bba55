package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"hotel/internal/repositories"
	"hotel/internal/utils"
)

// ExportService produces the admin bookings export.
type ExportService struct {
	BookingRepo repositories.BookingRepository
	RequestID   string

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (s ExportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

var exportColumns = []string{
	"ID", "Guest ID", "Room", "Unit", "Status", "Check-in", "Check-out",
	"Nights", "Meals", "Paid", "Amount", "Currency", "Method",
}

// ExportBookings renders all bookings, with derived status, as one xlsx
// sheet. Returns the file bytes and a suggested filename.
func (s ExportService) ExportBookings(ctx context.Context) ([]byte, string, error) {
	now := s.now()
	bookings, err := s.BookingRepo.ListByStatus(ctx, "", now)
	if err != nil {
		return nil, "", err
	}

	const sheet = "Bookings"
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheet)

	for i, col := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, "", err
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
		_ = f.SetCellStyle(sheet, startCell, endCell, style)
	}

	const layout = "2006-01-02 15:04"
	for i, b := range bookings {
		paid := "no"
		if b.Payment.IsPaid {
			paid = "yes"
		}
		values := []any{
			b.ID, b.GuestID, b.RoomID, b.UnitID, b.Status(now),
			b.Dates.Start.Format(layout), b.Dates.End.Format(layout),
			b.Nights(), b.Meals, paid, b.Payment.Amount, b.Payment.Currency, b.Payment.Method,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "export", "bookings", fmt.Sprintf("%d rows exported", len(bookings)))
	filename := fmt.Sprintf("bookings-%s.xlsx", now.Format("20060102-150405"))
	return buf.Bytes(), filename, nil
}
