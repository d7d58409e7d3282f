package handler

import (
	"github.com/shopspring/decimal"
)

// --- Request / Response types ---

type createEntryRequest struct {
	// UserID is optional: admins may log time for another user; everyone
	// else is pinned to their own id.
	UserID      string          `json:"user_id"`
	TaskID      string          `json:"task_id"`
	Date        string          `json:"date"        validate:"required,datetime=2006-01-02"`
	Hours       decimal.Decimal `json:"hours"       validate:"required"`
	Description string          `json:"description" validate:"required"`
}

type updateEntryRequest struct {
	Date        *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Hours       *decimal.Decimal `json:"hours"`
	Description *string          `json:"description"`
}

type bulkEntryUpdateRequest struct {
	ID string `json:"id" validate:"required"`
	updateEntryRequest
}

type bulkUpdateRequest struct {
	Entries []bulkEntryUpdateRequest `json:"entries" validate:"required,min=1,dive"`
}

type entryResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	TaskID      string          `json:"task_id,omitempty"`
	Date        string          `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
	Earnings    decimal.Decimal `json:"earnings"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

type dailyHoursResponse struct {
	Date  string          `json:"date"`
	Hours decimal.Decimal `json:"hours"`
}

type entrySummaryResponse struct {
	Date        string          `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
}

type taskWithEntriesResponse struct {
	TaskID     string                 `json:"task_id"`
	Name       string                 `json:"name"`
	Status     string                 `json:"status"`
	TotalHours decimal.Decimal        `json:"total_hours"`
	Entries    []entrySummaryResponse `json:"entries"`
}
