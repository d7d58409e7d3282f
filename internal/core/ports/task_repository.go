package ports

import (
	"context"
	"time"

	"github.com/efforttracker/effort-api/internal/core/domain"
)

// TaskFilter narrows task listings. Zero values mean "no filter".
type TaskFilter struct {
	Status    string    // exact match on status
	DueBefore time.Time // due_date < DueBefore
}

// TaskRepository defines persistence operations for tasks. Cascade deletion of
// a task's time entries is orchestrated by the service layer together with
// TimeEntryRepository.DeleteByTask.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Task, error)
	FindAll(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}
