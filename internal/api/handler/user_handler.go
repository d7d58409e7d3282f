package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/efforttracker/effort-api/internal/core/ports"
)

// UserHandler handles user management endpoints. Admin-only routes sit behind
// the RBAC middleware; self-or-admin rules are enforced here against the
// request principal.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/users (admin-only).
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  apiResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("users listed", users))
}

// Get handles GET /api/users/:id (self-or-admin).
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  apiResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := requireSelfOrAdmin(p, c.Param("id")); err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("user found", user))
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("current user", user))
}

// Create handles POST /api/users (admin-only).
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  apiResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       req.Role,
		HourlyRate: req.HourlyRate,
		Notes:      req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ok("user created", user))
}

// Update handles PUT /api/users/:id (self-or-admin). Role changes are
// admin-only regardless of target.
func (h *UserHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := requireSelfOrAdmin(p, c.Param("id")); err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if (req.Role != nil || req.HourlyRate != nil) && !p.IsAdmin() {
		return echo.NewHTTPError(http.StatusForbidden, "only admins may change role or hourly rate")
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       req.Role,
		HourlyRate: req.HourlyRate,
		Notes:      req.Notes,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("user updated", user))
}

// Delete handles DELETE /api/users/:id (admin-only).
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("user deleted", nil))
}
