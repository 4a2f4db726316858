package contracts

import (
	"Fluxo/internal/domain/recurring"
)

type RecurringCreateRequest struct {
	Type        string  `json:"type" binding:"required,oneof=RECEIPT EXPENSE"`
	CategoryId  string  `json:"category_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"omitempty,max=255"`
	Frequency   string  `json:"frequency" binding:"required,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	DayOfMonth  int     `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	DayOfWeek   int     `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     *string `json:"end_date" binding:"omitempty"`
}

type RecurringUpdateRequest struct {
	Amount      *float64 `json:"amount" binding:"omitempty,gt=0"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
	DayOfMonth  *int     `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	DayOfWeek   *int     `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	EndDate     *string  `json:"end_date" binding:"omitempty"`
}

type RecurringCreateResponse struct {
	Message   string                          `json:"message"`
	Recurring *recurring.RecurringTransaction `json:"recurring"`
}

type RecurringListResponse struct {
	Recurring []*recurring.RecurringTransaction `json:"recurring"`
	Total     int64                             `json:"total"`
}

type RecurringSingleResponse struct {
	Recurring *recurring.RecurringTransaction `json:"recurring"`
}

type RecurringProcessResponse struct {
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
}

type RecurringOccurrencesResponse struct {
	Month       int                    `json:"month"`
	Year        int                    `json:"year"`
	Occurrences []recurring.Occurrence `json:"occurrences"`
}
