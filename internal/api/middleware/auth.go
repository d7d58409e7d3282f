package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/efforttracker/effort-api/internal/core/domain"
	"github.com/efforttracker/effort-api/internal/core/ports"
)

// CookieName is the HTTP-only cookie carrying the access token.
const CookieName = "access_token"

// principalKey is the echo context key the resolved principal is stored under.
const principalKey = "principal"

// TokenFromRequest extracts the bearer token from the Authorization header or,
// failing that, the access_token cookie. The header wins when both are set.
func TokenFromRequest(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1], true
		}
		return "", false
	}

	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Principal returns the principal resolved by Auth for this request.
func Principal(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

// Auth validates the bearer token and resolves the request principal. Every
// failure mode (missing token, bad signature, expiry, revocation, a subject
// that no longer exists) yields 401, never a partial identity.
func Auth(jwtSecret string, users ports.UserRepository, revoker ports.TokenRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := TokenFromRequest(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed credentials")
			}

			claims := jwt.MapClaims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !parsed.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			revoked, err := revoker.IsRevoked(c.Request().Context(), token)
			if err != nil {
				return err
			}
			if revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
			}

			sub, err := claims.GetSubject()
			if err != nil || sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), sub)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown token subject")
				}
				return err
			}

			c.Set(principalKey, domain.Principal{UserID: user.ID, Role: user.Role})
			return next(c)
		}
	}
}
