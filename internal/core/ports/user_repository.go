package ports

import (
	"context"

	"github.com/efforttracker/effort-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Email uniqueness is enforced here: Create returns domain.ErrEmailTaken on a
// duplicate email.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
