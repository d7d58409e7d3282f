package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/efforttracker/effort-api/internal/api/middleware"
	"github.com/efforttracker/effort-api/internal/core/domain"
)

const dateLayout = "2006-01-02"

// principal extracts the identity resolved by the Auth middleware. Its
// presence proves the middleware ran; handlers pass it explicitly into every
// service call that needs ownership context.
func principal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.Principal(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p, nil
}

// requireSelfOrAdmin enforces the self-or-admin policy against a path target.
func requireSelfOrAdmin(p domain.Principal, targetID string) error {
	if !p.CanAccessUser(targetID) {
		return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
	}
	return nil
}

// pathDate parses a YYYY-MM-DD path parameter.
func pathDate(c echo.Context, name string) (time.Time, error) {
	d, err := time.Parse(dateLayout, c.Param(name))
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

// pathRange parses the :start/:end pair and rejects inverted ranges.
func pathRange(c echo.Context) (time.Time, time.Time, error) {
	start, err := pathDate(c, "start")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := pathDate(c, "end")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "end must not be before start")
	}
	return start, end, nil
}
