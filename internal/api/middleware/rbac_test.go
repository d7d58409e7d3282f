package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/efforttracker/effort-api/internal/core/domain"
)

func rbacContext(e *echo.Echo, p *domain.Principal) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		c.Set(principalKey, *p)
	}
	return c
}

func TestRBAC_AllowsMatchingRole(t *testing.T) {
	e := echo.New()
	c := rbacContext(e, &domain.Principal{UserID: "u1", Role: domain.RoleAdmin})

	called := false
	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRBAC_ForbidsOtherRole(t *testing.T) {
	e := echo.New()
	c := rbacContext(e, &domain.Principal{UserID: "u1", Role: domain.RoleUser})

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	assertHTTPError(t, handler(c), http.StatusForbidden)
}

func TestRBAC_MissingPrincipal(t *testing.T) {
	e := echo.New()
	c := rbacContext(e, nil)

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	assertHTTPError(t, handler(c), http.StatusUnauthorized)
}
