package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is an operator of the dashboard. Operators author schedules and may
// trigger them manually.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	RoleID       int       `json:"role_id"`
	AccountIDs   []string  `json:"account_ids"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Claims struct {
	UserID     int
	UserName   string
	UserEmail  string
	UserRoleID int
	AccountIDs []string
	jwt.RegisteredClaims
}
