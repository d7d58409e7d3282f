package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/efforttracker/effort-api/internal/api/metrics"
	"github.com/efforttracker/effort-api/internal/api/middleware"
	"github.com/efforttracker/effort-api/internal/core/ports"
)

// AuthHandler handles registration, login/logout and the current-user lookup.
type AuthHandler struct {
	authService  ports.AuthService
	userService  ports.UserService
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, userService ports.UserService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, secureCookie: secureCookie}
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  apiResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, ok("user registered", user))
}

// Login authenticates a user, sets the access_token cookie and returns the
// token in the body as well.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  apiResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	ttl := h.authService.TokenTTL()
	c.SetCookie(h.tokenCookie(token, ttl))

	return c.JSON(http.StatusOK, ok("login successful", loginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(ttl.Seconds()),
		User:      user,
	}))
}

// Logout revokes the presented token (if any) and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  apiResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token, found := middleware.TokenFromRequest(c); found {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}

	c.SetCookie(h.tokenCookie("", -time.Second))
	return c.JSON(http.StatusOK, ok("logged out", nil))
}

// Me returns the authenticated user's own record.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/user [get]
func (h *AuthHandler) Me(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("current user", user))
}

func (h *AuthHandler) tokenCookie(value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
