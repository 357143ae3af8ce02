package models

import "time"

// Role is the fixed permission tier of an account
type Role int16

const (
	RoleGuest      Role = 0
	RoleRestricted Role = 1
	RoleStandard   Role = 2
	RoleModerator  Role = 3
)

// Valid reports whether r is one of the known tiers
func (r Role) Valid() bool {
	return r >= RoleGuest && r <= RoleModerator
}

func (r Role) String() string {
	switch r {
	case RoleGuest:
		return "guest"
	case RoleRestricted:
		return "restricted"
	case RoleStandard:
		return "standard"
	case RoleModerator:
		return "moderator"
	default:
		return "unknown"
	}
}

// Account is the acting user as far as the content core is concerned
type Account struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
