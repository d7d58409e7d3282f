package ports

import (
	"context"
	"time"

	"github.com/efforttracker/effort-api/internal/core/domain"
)

// RegisterInput carries the self-registration payload. Role defaults to USER
// when empty or unrecognized; hourly rate always starts at zero and is set
// later by an admin.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// AuthService defines registration, login and token revocation.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies credentials and returns a signed token plus the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the given token until its natural expiry. Unknown or
	// already-expired tokens are a no-op.
	Logout(ctx context.Context, token string) error
	// TokenTTL reports the lifetime of issued tokens (drives cookie Max-Age).
	TokenTTL() time.Duration
}

// TokenRevoker is the denylist consulted on every authenticated request and
// written on logout.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
