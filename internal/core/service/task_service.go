package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/efforttracker/effort-api/internal/core/domain"
	"github.com/efforttracker/effort-api/internal/core/ports"
)

// TaskService implements task management, including the cascade from a task
// to its time entries.
type TaskService struct {
	tasks   ports.TaskRepository
	entries ports.TimeEntryRepository
	users   ports.UserRepository
	logger  zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, entries ports.TimeEntryRepository, users ports.UserRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, entries: entries, users: users, logger: logger}
}

func (s *TaskService) List(ctx context.Context, filter ports.TaskFilter) ([]*domain.Task, error) {
	return s.tasks.FindAll(ctx, filter)
}

// ListForUser returns the tasks the user has logged time on, name-sorted for
// a stable listing.
func (s *TaskService) ListForUser(ctx context.Context, userID string) ([]*domain.Task, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	entries, err := s.entries.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var ids []string
	for _, e := range entries {
		if e.TaskID == "" {
			continue
		}
		if _, ok := seen[e.TaskID]; ok {
			continue
		}
		seen[e.TaskID] = struct{}{}
		ids = append(ids, e.TaskID)
	}
	if len(ids) == 0 {
		return []*domain.Task{}, nil
	}

	tasks, err := s.tasks.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Name < tasks[j].Name })
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

func (s *TaskService) Create(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	if input.Name == "" {
		return nil, domain.ErrValidation
	}

	status := input.Status
	if status == "" {
		status = domain.TaskStatusOpen
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		StartDate:   input.StartDate,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("status", created.Status).Msg("task created")
	return created, nil
}

// CreateWithEntries creates a task and seeds it with time entries for the
// given user. Entry earnings are computed from the user's current rate.
func (s *TaskService) CreateWithEntries(ctx context.Context, input ports.CreateTaskWithEntriesInput) (*domain.Task, error) {
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	// Validate and build every entry before the first write so a bad seed
	// cannot leave the task behind without its entries.
	now := time.Now().UTC()
	entries := make([]*domain.TimeEntry, 0, len(input.Entries))
	for _, seed := range input.Entries {
		if seed.Description == "" || !validHours(seed.Hours) {
			return nil, domain.ErrValidation
		}
		hours := seed.Hours.Round(2)
		entries = append(entries, &domain.TimeEntry{
			ID:          uuid.NewString(),
			UserID:      user.ID,
			Date:        seed.Date,
			Hours:       hours,
			Description: seed.Description,
			Earnings:    domain.Earn(hours, user.HourlyRate),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	task, err := s.Create(ctx, input.Task)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return task, nil
	}
	for _, e := range entries {
		e.TaskID = task.ID
	}

	if err := s.entries.InsertMany(ctx, entries); err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Int("entries", len(entries)).Msg("task created with entries")
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domain.ErrValidation
		}
		task.Name = *input.Name
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.StartDate != nil {
		task.StartDate = input.StartDate
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the task and all time entries referencing it. Entries go
// first so a failure never leaves orphans pointing at a missing task.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	exists, err := s.tasks.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrTaskNotFound
	}

	removed, err := s.entries.DeleteByTask(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("task_id", id).Int64("entries_removed", removed).Msg("task deleted")
	return nil
}
