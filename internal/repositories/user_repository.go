package repositories

import (
	"context"
	"database/sql"
	"strconv"

	"hotel/internal/domain"
	"hotel/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userColumns = "id, name, email, password_hash, birthdate, country, role, is_deactivated, created_at"

// GetByEmail loads a user by email, including deactivated accounts.
func (r UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email=? LIMIT 1`, email)
	return scanUser(row, email)
}

// GetByID loads a user by id.
func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id=? LIMIT 1`, id)
	return scanUser(row, strconv.FormatInt(id, 10))
}

// List returns all users.
func (r UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows, "")
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Insert creates a user and fills the generated id.
func (r UserRepository) Insert(ctx context.Context, u *models.User) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, birthdate, country, role) VALUES (?,?,?,?,?,?)`,
		u.Name, u.Email, u.PasswordHash, u.Birthdate, u.Country, u.Role)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// UpdateProfile persists the user-editable fields.
func (r UserRepository) UpdateProfile(ctx context.Context, u models.User) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET name=?, email=?, birthdate=?, country=? WHERE id=?`,
		u.Name, u.Email, u.Birthdate, u.Country, u.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "user", ID: strconv.FormatInt(u.ID, 10)}
	}
	return nil
}

// Deactivate soft-deletes the account; bookings keep their guest reference.
func (r UserRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET is_deactivated=1 WHERE id=?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "user", ID: strconv.FormatInt(id, 10)}
	}
	return nil
}

// ExistsTx checks the guest reference inside the caller's transaction.
func (r UserRepository) ExistsTx(tx *sql.Tx, id int64) (bool, error) {
	var found int64
	err := tx.QueryRow(`SELECT id FROM users WHERE id=? LIMIT 1`, id).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func scanUser(row rowScanner, ref string) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Birthdate,
		&u.Country, &u.Role, &u.IsDeactivated, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, domain.NotFoundError{Resource: "user", ID: ref}
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}
