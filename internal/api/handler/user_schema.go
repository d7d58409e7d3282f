package handler

import (
	"github.com/shopspring/decimal"

	"github.com/efforttracker/effort-api/internal/core/domain"
)

// --- Request / Response types ---

type registerRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int          `json:"expires_in"` // seconds
	User      *domain.User `json:"user"`
}

type createUserRequest struct {
	Email      string          `json:"email"       validate:"required,email"`
	Password   string          `json:"password"    validate:"required,min=8"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Role       string          `json:"role"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Notes      string          `json:"notes"`
}

type updateUserRequest struct {
	FirstName  *string          `json:"first_name"`
	LastName   *string          `json:"last_name"`
	Role       *string          `json:"role"`
	HourlyRate *decimal.Decimal `json:"hourly_rate"`
	Notes      *string          `json:"notes"`
	Password   *string          `json:"password" validate:"omitempty,min=8"`
}
