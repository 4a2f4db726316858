package contracts

import (
	"Fluxo/internal/domain/creditcard"
)

type CreditCardCreateRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	CreditLimit float64 `json:"credit_limit" binding:"required,gt=0"`
	ClosingDay  int     `json:"closing_day" binding:"required,min=1,max=31"`
	DueDay      int     `json:"due_day" binding:"required,min=1,max=31"`
	Brand       string  `json:"brand" binding:"required,oneof=VISA MASTERCARD ELO AMEX HIPERCARD OTHER"`
}

type CreditCardUpdateRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	CreditLimit *float64 `json:"credit_limit" binding:"omitempty,gte=0"`
	ClosingDay  *int     `json:"closing_day" binding:"omitempty,min=1,max=31"`
	DueDay      *int     `json:"due_day" binding:"omitempty,min=1,max=31"`
	Brand       *string  `json:"brand" binding:"omitempty,oneof=VISA MASTERCARD ELO AMEX HIPERCARD OTHER"`
	IsActive    *bool    `json:"is_active" binding:"omitempty"`
}

type CreditCardCreateResponse struct {
	Message string                 `json:"message"`
	Card    *creditcard.CreditCard `json:"card"`
}

type CreditCardSingleResponse struct {
	Card *creditcard.CreditCard `json:"card"`
}

type CreditCardListResponse struct {
	Cards []*creditcard.CreditCard `json:"cards"`
	Total int64                    `json:"total"`
}

type PurchaseCreateRequest struct {
	CategoryId   string  `json:"category_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Description  string  `json:"description" binding:"required,max=255"`
	Date         string  `json:"date" binding:"required"`
	Installments int     `json:"installments" binding:"omitempty,min=1,max=48"`
}

type PurchaseCreateResponse struct {
	Message string                   `json:"message"`
	Charges []*creditcard.CardCharge `json:"charges"`
}

type ChargeListResponse struct {
	Charges []*creditcard.CardCharge `json:"charges"`
	Total   int64                    `json:"total"`
}

type InvoiceResponse struct {
	Invoice *creditcard.Invoice `json:"invoice"`
}

type InvoicePayResponse struct {
	Message string              `json:"message"`
	Invoice *creditcard.Invoice `json:"invoice"`
}
