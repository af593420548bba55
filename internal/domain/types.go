package domain

// ID is used across numeric domain entities (users, bookings).
type ID int64

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}

// Roles recognized by the authorization middleware.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)
