package models

import "time"

// User is a guest or admin account. Password hashing and reset tokens live at
// the auth boundary; the model only carries the stored hash.
type User struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Birthdate     string    `json:"birthdate,omitempty"`
	Country       string    `json:"country,omitempty"`
	Role          string    `json:"role"`
	IsDeactivated bool      `json:"is_deactivated"`
	CreatedAt     time.Time `json:"created_at"`
}
