package ports

import (
	"context"
	"time"

	"github.com/efforttracker/effort-api/internal/core/domain"
)

// TimeEntryRepository defines persistence operations for time entries.
// Range queries are inclusive on both ends and return entries ordered by date
// ascending. UpdateMany is all-or-nothing: on error no entry is modified.
type TimeEntryRepository interface {
	Insert(ctx context.Context, entry *domain.TimeEntry) error
	InsertMany(ctx context.Context, entries []*domain.TimeEntry) error
	FindByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	FindByUser(ctx context.Context, userID string) ([]*domain.TimeEntry, error)
	FindByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.TimeEntry, error)
	FindInRange(ctx context.Context, from, to time.Time) ([]*domain.TimeEntry, error)
	FindByTask(ctx context.Context, taskID string) ([]*domain.TimeEntry, error)
	Update(ctx context.Context, entry *domain.TimeEntry) error
	UpdateMany(ctx context.Context, entries []*domain.TimeEntry) error
	Delete(ctx context.Context, id string) error
	DeleteByTask(ctx context.Context, taskID string) (int64, error)
}
