package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/efforttracker/effort-api/internal/core/domain"
)

// CreateUserInput carries the admin user-creation payload.
type CreateUserInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Role       string
	HourlyRate decimal.Decimal
	Notes      string
}

// UpdateUserInput is a partial update: nil fields are left untouched.
type UpdateUserInput struct {
	FirstName  *string
	LastName   *string
	Role       *string
	HourlyRate *decimal.Decimal
	Notes      *string
	Password   *string
}

// UserService defines user management operations. Authorization (admin-only,
// self-or-admin) is enforced at the API layer from the request principal.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
