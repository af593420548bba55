package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"hotel/internal/domain"
	"hotel/internal/domain/models"
)

type UnitRepository struct {
	DB *sql.DB
}

// List returns all units ordered by id.
func (r UnitRepository) List(ctx context.Context) ([]models.Unit, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, room_id, floor, smoking FROM units ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUnits(rows)
}

// GetByID loads one unit.
func (r UnitRepository) GetByID(ctx context.Context, id string) (models.Unit, error) {
	var u models.Unit
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, room_id, floor, smoking FROM units WHERE id=? LIMIT 1`, id).
		Scan(&u.ID, &u.RoomID, &u.Floor, &u.Smoking)
	if err == sql.ErrNoRows {
		return models.Unit{}, domain.NotFoundError{Resource: "unit", ID: id}
	}
	if err != nil {
		return models.Unit{}, err
	}
	return u, nil
}

// ListByRooms returns the units owned by the given categories, optionally
// filtered by smoking preference, ordered by room then id.
func (r UnitRepository) ListByRooms(ctx context.Context, roomIDs []string, smoking *bool) ([]models.Unit, error) {
	if len(roomIDs) == 0 {
		return []models.Unit{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(roomIDs)), ",")
	query := `SELECT id, room_id, floor, smoking FROM units WHERE room_id IN (` + placeholders + `)`
	args := make([]any, 0, len(roomIDs)+1)
	for _, id := range roomIDs {
		args = append(args, id)
	}
	if smoking != nil {
		query += ` AND smoking = ?`
		args = append(args, *smoking)
	}
	query += ` ORDER BY room_id, id`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUnits(rows)
}

// LoadActiveBookings fetches, per unit, the booking intervals whose end is
// still in the future. Explicit by design; nothing is attached to reads
// implicitly.
func (r UnitRepository) LoadActiveBookings(ctx context.Context, unitIDs []string, now time.Time) (map[string][]models.Interval, error) {
	out := make(map[string][]models.Interval, len(unitIDs))
	if len(unitIDs) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(unitIDs)), ",")
	args := make([]any, 0, len(unitIDs)+1)
	for _, id := range unitIDs {
		args = append(args, id)
	}
	args = append(args, now.UTC())

	rows, err := r.DB.QueryContext(ctx,
		`SELECT unit_id, start_at, end_at FROM bookings
		 WHERE unit_id IN (`+placeholders+`) AND end_at > ?
		 ORDER BY unit_id, start_at`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			unitID     string
			start, end time.Time
		)
		if err := rows.Scan(&unitID, &start, &end); err != nil {
			return nil, err
		}
		out[unitID] = append(out[unitID], models.Interval{Start: start, End: end})
	}
	return out, rows.Err()
}

// InsertTx writes one unit inside the caller's transaction.
func (r UnitRepository) InsertTx(tx *sql.Tx, unit models.Unit) error {
	_, err := tx.Exec(`INSERT INTO units (id, room_id, floor, smoking) VALUES (?,?,?,?)`,
		unit.ID, unit.RoomID, unit.Floor, unit.Smoking)
	return err
}

// Update rewrites the mutable columns of a unit.
func (r UnitRepository) Update(ctx context.Context, unit models.Unit) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE units SET room_id=?, floor=?, smoking=? WHERE id=?`,
		unit.RoomID, unit.Floor, unit.Smoking, unit.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "unit", ID: unit.ID}
	}
	return nil
}

// GetForUpdateTx locks the unit row for the remainder of the transaction.
func (r UnitRepository) GetForUpdateTx(tx *sql.Tx, id string) (models.Unit, error) {
	var u models.Unit
	err := tx.QueryRow(
		`SELECT id, room_id, floor, smoking FROM units WHERE id=? FOR UPDATE`, id).
		Scan(&u.ID, &u.RoomID, &u.Floor, &u.Smoking)
	if err == sql.ErrNoRows {
		return models.Unit{}, domain.NotFoundError{Resource: "unit", ID: id}
	}
	if err != nil {
		return models.Unit{}, err
	}
	return u, nil
}

// CountActiveBookingsTx counts future-ending bookings for a unit within the
// caller's transaction.
func (r UnitRepository) CountActiveBookingsTx(tx *sql.Tx, unitID string, now time.Time) (int, error) {
	var count int
	err := tx.QueryRow(
		`SELECT COUNT(*) FROM bookings WHERE unit_id=? AND end_at > ?`,
		unitID, now.UTC()).Scan(&count)
	return count, err
}

// DeleteTx removes the unit inside the caller's transaction.
func (r UnitRepository) DeleteTx(tx *sql.Tx, id string) error {
	res, err := tx.Exec(`DELETE FROM units WHERE id=?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "unit", ID: id}
	}
	return nil
}

func scanUnits(rows *sql.Rows) ([]models.Unit, error) {
	units := []models.Unit{}
	for rows.Next() {
		var u models.Unit
		if err := rows.Scan(&u.ID, &u.RoomID, &u.Floor, &u.Smoking); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}
