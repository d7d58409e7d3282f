package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/efforttracker/effort-api/internal/core/domain"
)

// CreateEntryInput carries the time entry creation payload. TaskID is optional.
type CreateEntryInput struct {
	UserID      string
	TaskID      string
	Date        time.Time
	Hours       decimal.Decimal
	Description string
}

// UpdateEntryInput is a partial update: nil fields are left untouched.
// Earnings are recomputed when Hours is set.
type UpdateEntryInput struct {
	Date        *time.Time
	Hours       *decimal.Decimal
	Description *string
}

// BulkEntryUpdate addresses one entry of a task in a bulk update request.
type BulkEntryUpdate struct {
	ID string
	UpdateEntryInput
}

// MonthlyStat is the earnings total for one calendar month (1-12).
type MonthlyStat struct {
	Month         int             `json:"month"`
	TotalEarnings decimal.Decimal `json:"total_earnings"`
}

// TeamStat is the earnings total for one user across a date range.
type TeamStat struct {
	UserID        string          `json:"user_id"`
	TotalEarnings decimal.Decimal `json:"total_earnings"`
}

// DailyHours is the hours total for one calendar date.
type DailyHours struct {
	Date  time.Time       `json:"date"`
	Hours decimal.Decimal `json:"hours"`
}

// EntrySummary is the per-entry slice of a TaskWithEntries result.
type EntrySummary struct {
	Date        time.Time       `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
}

// TaskWithEntries joins a task to the caller's in-range entries on it.
type TaskWithEntries struct {
	TaskID     string          `json:"task_id"`
	Name       string          `json:"name"`
	Status     string          `json:"status"`
	TotalHours decimal.Decimal `json:"total_hours"`
	Entries    []EntrySummary  `json:"entries"`
}

// TimeEntryService is the effort aggregation engine: CRUD on time entries plus
// the analytics queries. All range filters are inclusive on both ends.
type TimeEntryService interface {
	Create(ctx context.Context, input CreateEntryInput) (*domain.TimeEntry, error)
	Update(ctx context.Context, id string, input UpdateEntryInput) (*domain.TimeEntry, error)
	// BulkUpdateForTask applies all updates or none: if any id does not
	// belong to an entry of the task, it fails with domain.ErrEntryNotFound
	// before any write.
	BulkUpdateForTask(ctx context.Context, taskID string, updates []BulkEntryUpdate) ([]*domain.TimeEntry, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.TimeEntry, error)
	ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.TimeEntry, error)
	Delete(ctx context.Context, id string) error

	MonthlyStats(ctx context.Context, userID string, from, to time.Time) ([]MonthlyStat, error)
	TeamStats(ctx context.Context, from, to time.Time) ([]TeamStat, error)
	MonthlyHours(ctx context.Context, userID string, month, year int) ([]DailyHours, error)
	TasksWithEntries(ctx context.Context, userID string, from, to time.Time) ([]TaskWithEntries, error)
}
