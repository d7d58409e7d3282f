package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/efforttracker/effort-api/internal/core/domain"
	"github.com/efforttracker/effort-api/internal/core/ports"
)

var maxHoursPerDay = decimal.NewFromInt(24)

func validHours(h decimal.Decimal) bool {
	return !h.IsNegative() && h.LessThanOrEqual(maxHoursPerDay)
}

// TimeEntryService is the effort aggregation engine. Earnings are computed at
// write time from the owning user's hourly rate and recomputed whenever hours
// change; aggregations only ever sum stored values.
type TimeEntryService struct {
	entries ports.TimeEntryRepository
	users   ports.UserRepository
	tasks   ports.TaskRepository
	logger  zerolog.Logger
}

func NewTimeEntryService(entries ports.TimeEntryRepository, users ports.UserRepository, tasks ports.TaskRepository, logger zerolog.Logger) *TimeEntryService {
	return &TimeEntryService{entries: entries, users: users, tasks: tasks, logger: logger}
}

// Create persists a new entry after verifying its user and, when given, its
// task exist.
func (s *TimeEntryService) Create(ctx context.Context, input ports.CreateEntryInput) (*domain.TimeEntry, error) {
	if input.Description == "" || input.Date.IsZero() || !validHours(input.Hours) {
		return nil, domain.ErrValidation
	}

	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.TaskID != "" {
		exists, err := s.tasks.ExistsByID(ctx, input.TaskID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrTaskNotFound
		}
	}

	now := time.Now().UTC()
	hours := input.Hours.Round(2)
	entry := &domain.TimeEntry{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		TaskID:      input.TaskID,
		Date:        dateOnly(input.Date),
		Hours:       hours,
		Description: input.Description,
		Earnings:    domain.Earn(hours, user.HourlyRate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.entries.Insert(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("entry_id", entry.ID).
		Str("user_id", entry.UserID).
		Str("hours", entry.Hours.String()).
		Msg("time entry created")

	return entry, nil
}

// Update applies a partial update to one entry, recomputing earnings when
// hours change.
func (s *TimeEntryService) Update(ctx context.Context, id string, input ports.UpdateEntryInput) (*domain.TimeEntry, error) {
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.applyUpdate(ctx, entry, input); err != nil {
		return nil, err
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// BulkUpdateForTask updates several entries of one task atomically. Every id
// is resolved against the task's entries before the first write; a single
// unknown id fails the whole batch with domain.ErrEntryNotFound.
func (s *TimeEntryService) BulkUpdateForTask(ctx context.Context, taskID string, updates []ports.BulkEntryUpdate) ([]*domain.TimeEntry, error) {
	exists, err := s.tasks.ExistsByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrTaskNotFound
	}

	existing, err := s.entries.FindByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.TimeEntry, len(existing))
	for _, e := range existing {
		byID[e.ID] = e
	}

	updated := make([]*domain.TimeEntry, 0, len(updates))
	for _, u := range updates {
		entry, ok := byID[u.ID]
		if !ok {
			return nil, domain.ErrEntryNotFound
		}
		if err := s.applyUpdate(ctx, entry, u.UpdateEntryInput); err != nil {
			return nil, err
		}
		updated = append(updated, entry)
	}

	if err := s.entries.UpdateMany(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", taskID).Int("entries", len(updated)).Msg("bulk entry update")
	return updated, nil
}

func (s *TimeEntryService) applyUpdate(ctx context.Context, entry *domain.TimeEntry, input ports.UpdateEntryInput) error {
	if input.Date != nil {
		if input.Date.IsZero() {
			return domain.ErrValidation
		}
		entry.Date = dateOnly(*input.Date)
	}
	if input.Description != nil {
		if *input.Description == "" {
			return domain.ErrValidation
		}
		entry.Description = *input.Description
	}
	if input.Hours != nil {
		if !validHours(*input.Hours) {
			return domain.ErrValidation
		}
		user, err := s.users.FindByID(ctx, entry.UserID)
		if err != nil {
			return err
		}
		entry.Hours = input.Hours.Round(2)
		entry.Earnings = domain.Earn(entry.Hours, user.HourlyRate)
	}
	entry.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *TimeEntryService) ListByUser(ctx context.Context, userID string) ([]*domain.TimeEntry, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	return s.entries.FindByUser(ctx, userID)
}

func (s *TimeEntryService) ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.TimeEntry, error) {
	return s.entries.FindByUserInRange(ctx, userID, dateOnly(from), dateOnly(to))
}

func (s *TimeEntryService) Delete(ctx context.Context, id string) error {
	if _, err := s.entries.FindByID(ctx, id); err != nil {
		return err
	}
	return s.entries.Delete(ctx, id)
}

// MonthlyStats groups one user's in-range entries by calendar month number
// and sums their earnings. Months with no entries are absent.
func (s *TimeEntryService) MonthlyStats(ctx context.Context, userID string, from, to time.Time) ([]ports.MonthlyStat, error) {
	entries, err := s.entries.FindByUserInRange(ctx, userID, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, err
	}

	totals := make(map[int]decimal.Decimal)
	for _, e := range entries {
		m := int(e.Date.Month())
		totals[m] = totals[m].Add(e.Earnings)
	}

	stats := make([]ports.MonthlyStat, 0, len(totals))
	for m, sum := range totals {
		stats = append(stats, ports.MonthlyStat{Month: m, TotalEarnings: sum})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Month < stats[j].Month })
	return stats, nil
}

// TeamStats groups all in-range entries by owning user and sums their
// earnings. Admin-only at the API layer.
func (s *TimeEntryService) TeamStats(ctx context.Context, from, to time.Time) ([]ports.TeamStat, error) {
	entries, err := s.entries.FindInRange(ctx, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, e := range entries {
		if _, ok := totals[e.UserID]; !ok {
			order = append(order, e.UserID)
		}
		totals[e.UserID] = totals[e.UserID].Add(e.Earnings)
	}

	stats := make([]ports.TeamStat, 0, len(order))
	for _, id := range order {
		stats = append(stats, ports.TeamStat{UserID: id, TotalEarnings: totals[id]})
	}
	return stats, nil
}

// MonthlyHours sums one user's hours per calendar date within a month,
// ordered by date ascending. Dates with no entries are absent.
func (s *TimeEntryService) MonthlyHours(ctx context.Context, userID string, month, year int) ([]ports.DailyHours, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, domain.ErrValidation
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	entries, err := s.entries.FindByUserInRange(ctx, userID, first, last)
	if err != nil {
		return nil, err
	}

	totals := make(map[time.Time]decimal.Decimal)
	for _, e := range entries {
		d := dateOnly(e.Date)
		totals[d] = totals[d].Add(e.Hours)
	}

	days := make([]ports.DailyHours, 0, len(totals))
	for d, sum := range totals {
		days = append(days, ports.DailyHours{Date: d, Hours: sum})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days, nil
}

// TasksWithEntries joins one user's in-range entries to their tasks. Entries
// without a task and tasks without in-range entries are omitted.
func (s *TimeEntryService) TasksWithEntries(ctx context.Context, userID string, from, to time.Time) ([]ports.TaskWithEntries, error) {
	entries, err := s.entries.FindByUserInRange(ctx, userID, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]*domain.TimeEntry)
	var order []string
	for _, e := range entries {
		if e.TaskID == "" {
			continue
		}
		if _, ok := grouped[e.TaskID]; !ok {
			order = append(order, e.TaskID)
		}
		grouped[e.TaskID] = append(grouped[e.TaskID], e)
	}
	if len(order) == 0 {
		return []ports.TaskWithEntries{}, nil
	}

	tasks, err := s.tasks.FindByIDs(ctx, order)
	if err != nil {
		return nil, err
	}
	taskByID := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		taskByID[t.ID] = t
	}

	results := make([]ports.TaskWithEntries, 0, len(order))
	for _, taskID := range order {
		task, ok := taskByID[taskID]
		if !ok {
			// entry references a task deleted mid-flight; skip it
			continue
		}

		group := grouped[taskID]
		total := decimal.Zero
		summaries := make([]ports.EntrySummary, 0, len(group))
		for _, e := range group {
			total = total.Add(e.Hours)
			summaries = append(summaries, ports.EntrySummary{
				Date:        e.Date,
				Hours:       e.Hours,
				Description: e.Description,
			})
		}

		results = append(results, ports.TaskWithEntries{
			TaskID:     task.ID,
			Name:       task.Name,
			Status:     task.Status,
			TotalHours: total,
			Entries:    summaries,
		})
	}
	return results, nil
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
