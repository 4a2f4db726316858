package contracts

import "Fluxo/internal/domain/debt"

type DebtCreateRequest struct {
	CategoryId   string  `json:"category_id" binding:"required"`
	Description  string  `json:"description" binding:"required,max=255"`
	Creditor     string  `json:"creditor" binding:"omitempty,max=100"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	DueDate      string  `json:"due_date" binding:"required"`
	Installments int     `json:"installments" binding:"omitempty,min=1,max=120"`
}

type DebtUpdateRequest struct {
	CategoryId  *string  `json:"category_id" binding:"omitempty"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
	Creditor    *string  `json:"creditor" binding:"omitempty,max=100"`
	Amount      *float64 `json:"amount" binding:"omitempty,gt=0"`
	DueDate     *string  `json:"due_date" binding:"omitempty"`
}

type DebtCreateResponse struct {
	Message string       `json:"message"`
	Debts   []*debt.Debt `json:"debts"`
}

type DebtSingleResponse struct {
	Debt *debt.Debt `json:"debt"`
}

type DebtListResponse struct {
	Debts []*debt.Debt `json:"debts"`
	Total int64        `json:"total"`
}
