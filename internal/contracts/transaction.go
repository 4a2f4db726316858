package contracts

import (
	"Fluxo/internal/domain/transaction"
)

type TransactionCreateRequest struct {
	Type        string  `json:"type" binding:"required,oneof=RECEIPT EXPENSE"`
	CategoryId  string  `json:"category_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required,max=255"`
	Note        string  `json:"note" binding:"omitempty,max=500"`
	Date        string  `json:"date" binding:"required"`
}

type TransactionUpdateRequest struct {
	Type        *string  `json:"type" binding:"omitempty,oneof=RECEIPT EXPENSE"`
	CategoryId  *string  `json:"category_id" binding:"omitempty"`
	Amount      *float64 `json:"amount" binding:"omitempty,gt=0"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
	Note        *string  `json:"note" binding:"omitempty,max=500"`
	Date        *string  `json:"date" binding:"omitempty"`
}

type TransactionCreateResponse struct {
	Message     string                   `json:"message"`
	Transaction *transaction.Transaction `json:"transaction"`
}

type TransactionSingleResponse struct {
	Transaction *transaction.Transaction `json:"transaction"`
}

type TransactionListResponse struct {
	Transactions []*transaction.Transaction `json:"transactions"`
	Total        int64                      `json:"total"`
	Page         int                        `json:"page"`
	Limit        int                        `json:"limit"`
}

type MonthTotalsResponse struct {
	Month   int     `json:"month"`
	Year    int     `json:"year"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

type CategoryCreateRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Icon string `json:"icon" binding:"omitempty,max=50"`
}

type CategoryUpdateRequest struct {
	Name *string `json:"name" binding:"omitempty,max=100"`
	Icon *string `json:"icon" binding:"omitempty,max=50"`
}

type CategorySingleResponse struct {
	Category *transaction.Category `json:"category"`
}

type CategoryListResponse struct {
	Categories []*transaction.Category `json:"categories"`
	Total      int                     `json:"total"`
}
