package handler

import (
	"github.com/shopspring/decimal"
)

// --- Request / Response types ---

type createTaskRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate     *string `json:"due_date"   validate:"omitempty,datetime=2006-01-02"`
}

type taskEntrySeedRequest struct {
	Date        string          `json:"date"        validate:"required,datetime=2006-01-02"`
	Hours       decimal.Decimal `json:"hours"       validate:"required"`
	Description string          `json:"description" validate:"required"`
}

type createTaskWithEntriesRequest struct {
	createTaskRequest
	Entries []taskEntrySeedRequest `json:"entries" validate:"omitempty,dive"`
}

type updateTaskRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate     *string `json:"due_date"   validate:"omitempty,datetime=2006-01-02"`
}

type taskResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status"`
	StartDate   *string `json:"start_date,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
