package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/efforttracker/effort-api/internal/core/ports"
)

// TaskHandler handles task CRUD endpoints.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /api/tasks. Optional query filters: status, due_before.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status      query     string  false  "Filter by status"
// @Param        due_before  query     string  false  "Due date upper bound (YYYY-MM-DD)"
// @Success      200         {object}  apiResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	filter := ports.TaskFilter{Status: c.QueryParam("status")}
	if raw := c.QueryParam("due_before"); raw != "" {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "due_before must be a date in YYYY-MM-DD format")
		}
		filter.DueBefore = d
	}

	tasks, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("tasks listed", toTaskResponses(tasks)))
}

// ListMine handles GET /api/tasks/me: tasks the caller has logged time on.
func (h *TaskHandler) ListMine(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListForUser(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("tasks listed", toTaskResponses(tasks)))
}

// Get handles GET /api/tasks/:id.
func (h *TaskHandler) Get(c echo.Context) error {
	task, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("task found", toTaskResponse(task)))
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  apiResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := toCreateTaskInput(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}

	task, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ok("task created", toTaskResponse(task)))
}

// CreateWithEntries handles POST /api/tasks/with-entries: creates a task and
// seeds it with time entries owned by the caller.
func (h *TaskHandler) CreateWithEntries(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req createTaskWithEntriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	taskInput, err := toCreateTaskInput(req.createTaskRequest)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}

	seeds := make([]ports.TaskEntrySeed, 0, len(req.Entries))
	for _, e := range req.Entries {
		date, err := time.Parse(dateLayout, e.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid entry date")
		}
		seeds = append(seeds, ports.TaskEntrySeed{
			Date:        date,
			Hours:       e.Hours,
			Description: e.Description,
		})
	}

	task, err := h.service.CreateWithEntries(c.Request().Context(), ports.CreateTaskWithEntriesInput{
		Task:    taskInput,
		UserID:  p.UserID,
		Entries: seeds,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ok("task created with entries", toTaskResponse(task)))
}

// Update handles PUT /api/tasks/:id.
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date")
	}
	dueDate, err := parseDatePtr(req.DueDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid due_date")
	}

	task, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   startDate,
		DueDate:     dueDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("task updated", toTaskResponse(task)))
}

// Delete handles DELETE /api/tasks/:id and cascades to the task's entries.
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("task deleted", nil))
}

func toCreateTaskInput(req createTaskRequest) (ports.CreateTaskInput, error) {
	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		return ports.CreateTaskInput{}, err
	}
	dueDate, err := parseDatePtr(req.DueDate)
	if err != nil {
		return ports.CreateTaskInput{}, err
	}
	return ports.CreateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   startDate,
		DueDate:     dueDate,
	}, nil
}
