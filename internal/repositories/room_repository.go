package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"hotel/internal/domain"
	"hotel/internal/domain/models"
)

type RoomRepository struct {
	DB *sql.DB
}

const roomColumns = "id, type, size_m2, balcony, view, max_guests, facilities, images, price_original, price_currency"

// List returns all room categories sorted by price then type.
func (r RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY price_original, type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRooms(rows)
}

// GetByID loads one room category with its owned unit ids.
func (r RoomRepository) GetByID(ctx context.Context, id string) (models.Room, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id=? LIMIT 1`, id)
	room, err := scanRoom(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Room{}, domain.NotFoundError{Resource: "room", ID: id}
		}
		return models.Room{}, err
	}

	unitIDs, err := r.unitIDs(ctx, id)
	if err != nil {
		return models.Room{}, err
	}
	room.UnitIDs = unitIDs
	return room, nil
}

func (r RoomRepository) unitIDs(ctx context.Context, roomID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id FROM units WHERE room_id=? ORDER BY id`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FindTargetRooms filters categories by inclusive price range and optional
// view. Zero matches is a NoCandidatesError, not an empty list.
func (r RoomRepository) FindTargetRooms(ctx context.Context, min float64, max *float64, view string) ([]models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE price_original >= ?`
	args := []any{min}
	if max != nil {
		query += ` AND price_original <= ?`
		args = append(args, *max)
	}
	if view = strings.TrimSpace(view); view != "" {
		query += ` AND view = ?`
		args = append(args, view)
	}
	query += ` ORDER BY price_original, type`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms, err := scanRooms(rows)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, domain.NoCandidatesError{}
	}
	return rooms, nil
}

// ExistsTx checks the category reference inside the caller's transaction.
func (r RoomRepository) ExistsTx(tx *sql.Tx, id string) (bool, error) {
	var found string
	err := tx.QueryRow(`SELECT id FROM rooms WHERE id=? LIMIT 1`, id).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertTx writes one category inside the caller's transaction.
func (r RoomRepository) InsertTx(tx *sql.Tx, room models.Room) error {
	facilities, err := json.Marshal(room.Facilities)
	if err != nil {
		return err
	}
	images, err := json.Marshal(room.Images)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`INSERT INTO rooms (`+roomColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		room.ID, room.Type, room.SizeM2, room.Balcony, room.View, room.MaxGuests,
		facilities, images, room.Price.Original, room.Price.Currency)
	return err
}

// Update rewrites all mutable columns of a category.
func (r RoomRepository) Update(ctx context.Context, room models.Room) error {
	facilities, err := json.Marshal(room.Facilities)
	if err != nil {
		return err
	}
	images, err := json.Marshal(room.Images)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `UPDATE rooms
		SET type=?, size_m2=?, balcony=?, view=?, max_guests=?, facilities=?, images=?, price_original=?
		WHERE id=?`,
		room.Type, room.SizeM2, room.Balcony, room.View, room.MaxGuests,
		facilities, images, room.Price.Original, room.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "room", ID: room.ID}
	}
	return nil
}

// Delete removes a category.
func (r RoomRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM rooms WHERE id=?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "room", ID: id}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (models.Room, error) {
	var (
		room       models.Room
		facilities []byte
		images     []byte
	)
	err := row.Scan(&room.ID, &room.Type, &room.SizeM2, &room.Balcony, &room.View,
		&room.MaxGuests, &facilities, &images, &room.Price.Original, &room.Price.Currency)
	if err != nil {
		return models.Room{}, err
	}
	if len(facilities) > 0 {
		if err := json.Unmarshal(facilities, &room.Facilities); err != nil {
			return models.Room{}, err
		}
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &room.Images); err != nil {
			return models.Room{}, err
		}
	}
	return room, nil
}

func scanRooms(rows *sql.Rows) ([]models.Room, error) {
	rooms := []models.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}
