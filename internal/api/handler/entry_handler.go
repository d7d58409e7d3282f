package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/efforttracker/effort-api/internal/api/metrics"
	"github.com/efforttracker/effort-api/internal/core/ports"
)

// TimeEntryHandler handles time entry CRUD and analytics endpoints.
type TimeEntryHandler struct {
	service ports.TimeEntryService
}

func NewTimeEntryHandler(service ports.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{service: service}
}

// Create handles POST /api/time-entries. Non-admin callers are pinned to
// their own user id regardless of what the payload claims.
//
// @Summary      Create a time entry
// @Tags         time-entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEntryRequest  true  "Entry details"
// @Success      201   {object}  apiResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/time-entries [post]
func (h *TimeEntryHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req createEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID := p.UserID
	if req.UserID != "" && req.UserID != p.UserID {
		if !p.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "cannot log time for another user")
		}
		userID = req.UserID
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}

	entry, err := h.service.Create(c.Request().Context(), ports.CreateEntryInput{
		UserID:      userID,
		TaskID:      req.TaskID,
		Date:        date,
		Hours:       req.Hours,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.EntriesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, ok("time entry created", toEntryResponse(entry)))
}

// ListMine handles GET /api/time-entries and GET /api/time-entries/me.
func (h *TimeEntryHandler) ListMine(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	entries, err := h.service.ListByUser(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("time entries listed", toEntryResponses(entries)))
}

// ListByUser handles GET /api/time-entries/by-user/:id (self-or-admin).
func (h *TimeEntryHandler) ListByUser(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := requireSelfOrAdmin(p, c.Param("id")); err != nil {
		return err
	}

	entries, err := h.service.ListByUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("time entries listed", toEntryResponses(entries)))
}

// Update handles PUT /api/time-entries/:id.
func (h *TimeEntryHandler) Update(c echo.Context) error {
	var req updateEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := toUpdateEntryInput(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}

	entry, err := h.service.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("time entry updated", toEntryResponse(entry)))
}

// BulkUpdate handles PUT /api/time-entries/task/:taskId/bulk-update. The
// batch applies fully or not at all.
func (h *TimeEntryHandler) BulkUpdate(c echo.Context) error {
	var req bulkUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updates := make([]ports.BulkEntryUpdate, 0, len(req.Entries))
	for _, e := range req.Entries {
		input, err := toUpdateEntryInput(e.updateEntryRequest)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
		}
		updates = append(updates, ports.BulkEntryUpdate{ID: e.ID, UpdateEntryInput: input})
	}

	entries, err := h.service.BulkUpdateForTask(c.Request().Context(), c.Param("taskId"), updates)
	if err != nil {
		return err
	}

	metrics.EntriesBulkUpdatedTotal.Add(float64(len(entries)))
	return c.JSON(http.StatusOK, ok("time entries updated", toEntryResponses(entries)))
}

// Range handles GET /api/time-entries/range/:start/:end: the caller's own
// entries in an inclusive date range, date ascending.
func (h *TimeEntryHandler) Range(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	start, end, err := pathRange(c)
	if err != nil {
		return err
	}

	entries, err := h.service.ListInRange(c.Request().Context(), p.UserID, start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("time entries listed", toEntryResponses(entries)))
}

// Delete handles DELETE /api/time-entries/:id.
func (h *TimeEntryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("time entry deleted", nil))
}

// MonthlyStats handles GET /api/time-entries/analytics/monthly-stats/:start/:end:
// the caller's earnings grouped by calendar month.
func (h *TimeEntryHandler) MonthlyStats(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	start, end, err := pathRange(c)
	if err != nil {
		return err
	}

	stats, err := h.service.MonthlyStats(c.Request().Context(), p.UserID, start, end)
	if err != nil {
		return err
	}

	metrics.AnalyticsQueriesTotal.WithLabelValues("monthly_stats").Inc()
	return c.JSON(http.StatusOK, ok("monthly stats", stats))
}

// TeamStats handles GET /api/time-entries/analytics/team-stats/:start/:end
// (admin-only): everyone's earnings grouped by user.
func (h *TimeEntryHandler) TeamStats(c echo.Context) error {
	start, end, err := pathRange(c)
	if err != nil {
		return err
	}

	stats, err := h.service.TeamStats(c.Request().Context(), start, end)
	if err != nil {
		return err
	}

	metrics.AnalyticsQueriesTotal.WithLabelValues("team_stats").Inc()
	return c.JSON(http.StatusOK, ok("team stats", stats))
}

// MonthlyHours handles GET /api/time-entries/analytics/monthly-hours/:month/:year:
// the caller's hours summed per calendar date in one month.
func (h *TimeEntryHandler) MonthlyHours(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "month must be a number")
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "year must be a number")
	}

	days, err := h.service.MonthlyHours(c.Request().Context(), p.UserID, month, year)
	if err != nil {
		return err
	}

	metrics.AnalyticsQueriesTotal.WithLabelValues("monthly_hours").Inc()
	return c.JSON(http.StatusOK, ok("monthly hours", toDailyHoursResponses(days)))
}

// TasksWithEntries handles GET /api/time-entries/analytics/tasks-with-entries/:start/:end:
// the caller's in-range entries grouped by task.
func (h *TimeEntryHandler) TasksWithEntries(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	start, end, err := pathRange(c)
	if err != nil {
		return err
	}

	results, err := h.service.TasksWithEntries(c.Request().Context(), p.UserID, start, end)
	if err != nil {
		return err
	}

	metrics.AnalyticsQueriesTotal.WithLabelValues("tasks_with_entries").Inc()
	return c.JSON(http.StatusOK, ok("tasks with entries", toTaskWithEntriesResponses(results)))
}

func toUpdateEntryInput(req updateEntryRequest) (ports.UpdateEntryInput, error) {
	date, err := parseDatePtr(req.Date)
	if err != nil {
		return ports.UpdateEntryInput{}, err
	}
	return ports.UpdateEntryInput{
		Date:        date,
		Hours:       req.Hours,
		Description: req.Description,
	}, nil
}
