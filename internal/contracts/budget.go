package contracts

import "Fluxo/internal/domain/budget"

type BudgetCreateRequest struct {
	CategoryId  string  `json:"category_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Month       int     `json:"month" binding:"required,min=1,max=12"`
	Year        int     `json:"year" binding:"required,min=2000,max=2100"`
	AlertAt     float64 `json:"alert_at" binding:"omitempty,min=0,max=100"`
	IsRecurring bool    `json:"is_recurring"`
}

type BudgetUpdateRequest struct {
	Amount      *float64 `json:"amount" binding:"omitempty,gt=0"`
	AlertAt     *float64 `json:"alert_at" binding:"omitempty,min=0,max=100"`
	IsRecurring *bool    `json:"is_recurring"`
}

type BudgetCreateResponse struct {
	Message string             `json:"message"`
	Goal    *budget.BudgetGoal `json:"goal"`
}

type BudgetStatusResponse struct {
	Status *budget.GoalStatus `json:"status"`
}

type BudgetListResponse struct {
	Goals []*budget.GoalStatus `json:"goals"`
	Total int64                `json:"total"`
}

type BudgetSummaryResponse struct {
	Summary *budget.Summary `json:"summary"`
}
