package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/efforttracker/effort-api/internal/core/domain"
	"github.com/efforttracker/effort-api/internal/core/ports"
)

func newAuthService(repo ports.UserRepository, revoker ports.TokenRevoker) *AuthService {
	return NewAuthService(repo, revoker, "secret", time.Hour)
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubRevoker())

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:     "alice@example.com",
		Password:  "pass1234",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role USER, got %s", user.Role)
	}
	if !user.HourlyRate.IsZero() {
		t.Fatalf("expected zero hourly rate, got %s", user.HourlyRate)
	}
}

func TestAuthService_Register_RoleNormalization(t *testing.T) {
	cases := []struct {
		in   string
		want domain.Role
	}{
		{"admin", domain.RoleAdmin},
		{"ADMIN", domain.RoleAdmin},
		{"user", domain.RoleUser},
		{"", domain.RoleUser},
		{"superuser", domain.RoleUser},
	}

	for _, tc := range cases {
		svc := newAuthService(newStubUserRepo(), newStubRevoker())
		user, err := svc.Register(context.Background(), ports.RegisterInput{
			Email:    "x@example.com",
			Password: "pass1234",
			Role:     tc.in,
		})
		if err != nil {
			t.Fatalf("Register(%q) returned error: %v", tc.in, err)
		}
		if user.Role != tc.want {
			t.Fatalf("Register(%q): expected role %s, got %s", tc.in, tc.want, user.Role)
		}
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubRevoker())

	input := ports.RegisterInput{Email: "bob@example.com", Password: "pass1234"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubRevoker())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Password: "pass"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@b.c"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing password, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubRevoker())

	registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "carol@example.com",
		Password: "s3cret99",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != registered.ID {
		t.Fatalf("expected sub %s, got %v", registered.ID, claims["sub"])
	}
	if claims["role"] != string(domain.RoleAdmin) {
		t.Fatalf("expected role ADMIN, got %v", claims["role"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubRevoker())

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "dave@example.com", Password: "goodpass"})
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubRevoker())

	// Account existence must not be distinguishable from a wrong password.
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	revoker := newStubRevoker()
	svc := newAuthService(newStubUserRepo(), revoker)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "erin@example.com", Password: "pass1234"})
	token, _, err := svc.Login(context.Background(), "erin@example.com", "pass1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	revoked, _ := revoker.IsRevoked(context.Background(), token)
	if !revoked {
		t.Fatalf("expected token to be revoked")
	}
}

func TestAuthService_Logout_IgnoresGarbage(t *testing.T) {
	revoker := newStubRevoker()
	svc := newAuthService(newStubUserRepo(), revoker)

	if err := svc.Logout(context.Background(), "not-a-token"); err != nil {
		t.Fatalf("expected nil for malformed token, got %v", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("expected nil for empty token, got %v", err)
	}
	if len(revoker.revoked) != 0 {
		t.Fatalf("nothing should have been revoked")
	}
}
