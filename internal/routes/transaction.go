package routes

import (
	"net/http"

	"Fluxo/internal/contracts"
	"Fluxo/internal/domain/transaction"
	appErrors "Fluxo/internal/errors"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateTransaction(c *gin.Context) {
	var body contracts.TransactionCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	categoryID, err := pkg.ParseULID(body.CategoryId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
		return
	}

	date, err := dateutil.ParseDay(body.Date)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	created, err := h.TransactionService.CreateTransaction(ctx, &transaction.CreateTransactionRequest{
		Type:        transaction.Types(body.Type),
		CategoryId:  categoryID,
		Amount:      body.Amount,
		Description: body.Description,
		Note:        body.Note,
		Date:        date,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.TransactionCreateResponse{
		Message:     "Transação criada com sucesso",
		Transaction: created,
	})
}

func (h *Handler) GetTransactions(c *gin.Context) {
	filter := &transaction.Filter{}

	if raw := c.Query("type"); raw != "" {
		t := transaction.Types(raw)
		if !t.IsValid() {
			h.respondError(c, appErrors.NewValidationError("type", "tipo inválido"))
			return
		}
		filter.Type = &t
	}

	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := pkg.ParseULID(raw)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
			return
		}
		filter.CategoryId = &categoryID
	}

	if c.Query("month") != "" || c.Query("year") != "" {
		month, year, err := h.parsePeriod(c)
		if err != nil {
			h.respondError(c, err)
			return
		}
		filter.Month = month
		filter.Year = year
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	transactions, total, err := h.TransactionService.ListTransactions(ctx, filter, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TransactionListResponse{
		Transactions: transactions,
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
	})
}

func (h *Handler) GetTransaction(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	tx, err := h.TransactionService.GetTransactionByID(ctx, transactionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TransactionSingleResponse{Transaction: tx})
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.TransactionUpdateRequest
	if err = c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &transaction.UpdateTransactionRequest{
		Amount:      body.Amount,
		Description: body.Description,
		Note:        body.Note,
	}

	if body.Type != nil {
		t := transaction.Types(*body.Type)
		req.Type = &t
	}

	if body.CategoryId != nil {
		categoryID, err := pkg.ParseULID(*body.CategoryId)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
			return
		}
		req.CategoryId = &categoryID
	}

	if body.Date != nil {
		date, err := dateutil.ParseDay(*body.Date)
		if err != nil {
			h.respondError(c, err)
			return
		}
		req.Date = &date
	}

	ctx := c.Request.Context()
	if err := h.TransactionService.UpdateTransaction(ctx, transactionID, req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Transação atualizada com sucesso"})
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if err := h.TransactionService.DeleteTransaction(ctx, transactionID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Transação removida com sucesso"})
}

func (h *Handler) GetMonthTotals(c *gin.Context) {
	month, year, err := h.parsePeriod(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	totals, err := h.TransactionService.GetMonthTotals(ctx, month, year)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MonthTotalsResponse{
		Month:   month,
		Year:    year,
		Income:  totals.Income,
		Expense: totals.Expense,
		Balance: totals.Income - totals.Expense,
	})
}
