package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Role is the closed set of authorization roles. Anything else coming off the
// wire is normalized to RoleUser by ParseRole.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole normalizes a free-form role string to one of the two known roles.
// Unrecognized or empty input falls back to RoleUser.
func ParseRole(s string) Role {
	if strings.ToUpper(strings.TrimSpace(s)) == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models a registered account. HourlyRate drives earnings computation on
// time entries and is stored with two decimal places.
type User struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Role         Role            `json:"role"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
