package handler

import (
	"time"

	"github.com/efforttracker/effort-api/internal/core/domain"
	"github.com/efforttracker/effort-api/internal/core/ports"
)

// --- Service result → HTTP response ---

func toEntryResponse(e *domain.TimeEntry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		TaskID:      e.TaskID,
		Date:        e.Date.Format(dateLayout),
		Hours:       e.Hours,
		Description: e.Description,
		Earnings:    e.Earnings,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toEntryResponses(entries []*domain.TimeEntry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return out
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Status:      t.Status,
		StartDate:   formatDatePtr(t.StartDate),
		DueDate:     formatDatePtr(t.DueDate),
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toTaskResponses(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}

func toDailyHoursResponses(days []ports.DailyHours) []dailyHoursResponse {
	out := make([]dailyHoursResponse, 0, len(days))
	for _, d := range days {
		out = append(out, dailyHoursResponse{Date: d.Date.Format(dateLayout), Hours: d.Hours})
	}
	return out
}

func toTaskWithEntriesResponses(results []ports.TaskWithEntries) []taskWithEntriesResponse {
	out := make([]taskWithEntriesResponse, 0, len(results))
	for _, r := range results {
		summaries := make([]entrySummaryResponse, 0, len(r.Entries))
		for _, e := range r.Entries {
			summaries = append(summaries, entrySummaryResponse{
				Date:        e.Date.Format(dateLayout),
				Hours:       e.Hours,
				Description: e.Description,
			})
		}
		out = append(out, taskWithEntriesResponse{
			TaskID:     r.TaskID,
			Name:       r.Name,
			Status:     r.Status,
			TotalHours: r.TotalHours,
			Entries:    summaries,
		})
	}
	return out
}

// --- Request → Service input ---

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
