package routes

import (
	"net/http"
	"time"

	"Fluxo/internal/contracts"
	"Fluxo/internal/domain/debt"
	appErrors "Fluxo/internal/errors"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateDebt(c *gin.Context) {
	var body contracts.DebtCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	categoryID, err := pkg.ParseULID(body.CategoryId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
		return
	}

	dueDate, err := dateutil.ParseDay(body.DueDate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	debts, err := h.DebtService.CreateDebt(ctx, &debt.CreateDebtRequest{
		CategoryId:   categoryID,
		Description:  body.Description,
		Creditor:     body.Creditor,
		Amount:       body.Amount,
		DueDate:      dueDate,
		Installments: body.Installments,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.DebtCreateResponse{
		Message: "Dívida criada com sucesso",
		Debts:   debts,
	})
}

func (h *Handler) GetDebts(c *gin.Context) {
	filter := &debt.Filter{}

	if raw := c.Query("paid"); raw != "" {
		paid := raw == "true"
		filter.Paid = &paid
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
	debts, total, err := h.DebtService.ListDebts(ctx, filter, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.DebtListResponse{
		Debts: debts,
		Total: total,
	})
}

func (h *Handler) GetDebt(c *gin.Context) {
	debtID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	d, err := h.DebtService.GetDebtByID(ctx, debtID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.DebtSingleResponse{Debt: d})
}

func (h *Handler) UpdateDebt(c *gin.Context) {
	debtID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.DebtUpdateRequest
	if err = c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &debt.UpdateDebtRequest{
		Description: body.Description,
		Creditor:    body.Creditor,
		Amount:      body.Amount,
	}

	if body.CategoryId != nil {
		categoryID, err := pkg.ParseULID(*body.CategoryId)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
			return
		}
		req.CategoryId = &categoryID
	}

	if body.DueDate != nil {
		dueDate, err := dateutil.ParseDay(*body.DueDate)
		if err != nil {
			h.respondError(c, err)
			return
		}
		req.DueDate = &dueDate
	}

	ctx := c.Request.Context()
	if err := h.DebtService.UpdateDebt(ctx, debtID, req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Dívida atualizada com sucesso"})
}

func (h *Handler) DeleteDebt(c *gin.Context) {
	debtID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if c.Query("all_installments") == "true" {
		d, err := h.DebtService.GetDebtByID(ctx, debtID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		groupID := debtID
		if d.ParentId != nil {
			groupID = *d.ParentId
		}
		if err := h.DebtService.DeleteInstallmentGroup(ctx, groupID); err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Parcelas removidas com sucesso"})
		return
	}

	if err := h.DebtService.DeleteDebt(ctx, debtID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Dívida removida com sucesso"})
}

func (h *Handler) PayDebt(c *gin.Context) {
	debtID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	d, err := h.DebtService.MarkPaid(ctx, debtID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.DebtSingleResponse{Debt: d})
}

func (h *Handler) UnpayDebt(c *gin.Context) {
	debtID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	d, err := h.DebtService.MarkUnpaid(ctx, debtID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.DebtSingleResponse{Debt: d})
}

func (h *Handler) GetUpcomingDebts(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := pkg.ParseInt(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			h.respondError(c, appErrors.NewValidationError("days", "deve estar entre 1 e 365"))
			return
		}
		days = parsed
	}

	ctx := c.Request.Context()
	debts, err := h.DebtService.Upcoming(ctx, time.Now(), days)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.DebtListResponse{
		Debts: debts,
		Total: int64(len(debts)),
	})
}
