package repositories

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"hotel/internal/domain"
	"hotel/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

const bookingColumns = `id, guest_id, room_id, unit_id, passport_number, meals,
	check_in_hour, check_out_hour, time_zone, start_at, end_at,
	paid, amount, currency, method, created_at, updated_at`

// GetByID loads one booking.
func (r BookingRepository) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

// ListByStatus filters bookings by derived status, expressed against the
// stored interval so the SQL mirrors the status derivation exactly.
// An empty status returns everything.
func (r BookingRepository) ListByStatus(ctx context.Context, status string, now time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	args := []any{}

	switch status {
	case "booked":
		query += ` WHERE start_at > ?`
		args = append(args, now.UTC())
	case "in_stay":
		query += ` WHERE start_at <= ? AND end_at > ?`
		args = append(args, now.UTC(), now.UTC())
	case "completed":
		query += ` WHERE end_at <= ?`
		args = append(args, now.UTC())
	}
	query += ` ORDER BY start_at, id`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// ListByGuest returns all bookings belonging to one guest.
func (r BookingRepository) ListByGuest(ctx context.Context, guestID int64) ([]models.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE guest_id=? ORDER BY start_at, id`, guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// ActiveIntervalsForUpdateTx locks and returns the unit's future-ending
// booking intervals. Combined with the unit-row lock this is the
// serialization point for the overlap invariant.
func (r BookingRepository) ActiveIntervalsForUpdateTx(tx *sql.Tx, unitID string, now time.Time) ([]models.Interval, error) {
	rows, err := tx.Query(
		`SELECT start_at, end_at FROM bookings
		 WHERE unit_id=? AND end_at > ?
		 ORDER BY start_at FOR UPDATE`, unitID, now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	intervals := []models.Interval{}
	for rows.Next() {
		var iv models.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, rows.Err()
}

// InsertTx writes the booking inside the caller's transaction and fills the
// generated id.
func (r BookingRepository) InsertTx(tx *sql.Tx, b *models.Booking) error {
	res, err := tx.Exec(`INSERT INTO bookings
		(guest_id, room_id, unit_id, passport_number, meals,
		 check_in_hour, check_out_hour, time_zone, start_at, end_at,
		 paid, amount, currency, method)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.GuestID, b.RoomID, b.UnitID, b.PassportNumber, b.Meals,
		b.Dates.CheckInHour, b.Dates.CheckOutHour, b.Dates.TimeZone,
		b.Dates.Start.UTC(), b.Dates.End.UTC(),
		b.Payment.IsPaid, b.Payment.Amount, b.Payment.Currency, b.Payment.Method)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

// UpdateGuestFields persists the guest-editable fields only.
func (r BookingRepository) UpdateGuestFields(ctx context.Context, id int64, meals, passportNumber string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET meals=?, passport_number=? WHERE id=?`,
		meals, passportNumber, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "booking", ID: strconv.FormatInt(id, 10)}
	}
	return nil
}

// Delete removes a booking.
func (r BookingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id=?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "booking", ID: strconv.FormatInt(id, 10)}
	}
	return nil
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.GuestID, &b.RoomID, &b.UnitID, &b.PassportNumber, &b.Meals,
		&b.Dates.CheckInHour, &b.Dates.CheckOutHour, &b.Dates.TimeZone,
		&b.Dates.Start, &b.Dates.End,
		&b.Payment.IsPaid, &b.Payment.Amount, &b.Payment.Currency, &b.Payment.Method,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
