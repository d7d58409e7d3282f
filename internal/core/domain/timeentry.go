package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrEntryNotFound = errors.New("time entry not found")
var ErrValidation = errors.New("validation failed")
var ErrForbidden = errors.New("access forbidden")

// TimeEntry records hours worked by one user on a calendar date, optionally
// against a task. Earnings are computed at write time from the owning user's
// hourly rate and recomputed whenever hours change.
type TimeEntry struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	TaskID      string          `json:"task_id,omitempty"` // empty = not bound to a task
	Date        time.Time       `json:"date"`              // UTC midnight
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
	Earnings    decimal.Decimal `json:"earnings"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Earn computes earnings for a number of hours at a given hourly rate,
// rounded to two decimal places.
func Earn(hours, hourlyRate decimal.Decimal) decimal.Decimal {
	return hours.Mul(hourlyRate).Round(2)
}
