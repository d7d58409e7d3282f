package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/efforttracker/effort-api/internal/core/domain"
)

// CreateTaskInput carries the task creation payload. Status defaults to "open".
type CreateTaskInput struct {
	Name        string
	Description string
	Status      string
	StartDate   *time.Time
	DueDate     *time.Time
}

// UpdateTaskInput is a partial update: nil fields are left untouched.
type UpdateTaskInput struct {
	Name        *string
	Description *string
	Status      *string
	StartDate   *time.Time
	DueDate     *time.Time
}

// TaskEntrySeed is one initial time entry created together with a task.
type TaskEntrySeed struct {
	Date        time.Time
	Hours       decimal.Decimal
	Description string
}

// CreateTaskWithEntriesInput creates a task and an initial batch of entries
// owned by UserID.
type CreateTaskWithEntriesInput struct {
	Task    CreateTaskInput
	UserID  string
	Entries []TaskEntrySeed
}

// TaskService defines task management operations.
type TaskService interface {
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	// ListForUser returns the tasks that have at least one time entry owned
	// by the given user.
	ListForUser(ctx context.Context, userID string) ([]*domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	CreateWithEntries(ctx context.Context, input CreateTaskWithEntriesInput) (*domain.Task, error)
	Update(ctx context.Context, id string, input UpdateTaskInput) (*domain.Task, error)
	// Delete removes the task and cascades to its time entries.
	Delete(ctx context.Context, id string) error
}
