package routes

import (
	"net/http"

	"Fluxo/internal/contracts"
	"Fluxo/internal/domain/budget"
	appErrors "Fluxo/internal/errors"
	"Fluxo/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateBudget(c *gin.Context) {
	var body contracts.BudgetCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	categoryID, err := pkg.ParseULID(body.CategoryId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	goal, err := h.BudgetService.CreateGoal(ctx, &budget.CreateGoalRequest{
		CategoryId:  categoryID,
		Amount:      body.Amount,
		Month:       body.Month,
		Year:        body.Year,
		AlertAt:     body.AlertAt,
		IsRecurring: body.IsRecurring,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.BudgetCreateResponse{
		Message: "Meta de orçamento criada com sucesso",
		Goal:    goal,
	})
}

func (h *Handler) ListBudgets(c *gin.Context) {
	month, year, err := h.parsePeriod(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	statuses, total, err := h.BudgetService.ListGoalStatuses(ctx, month, year, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BudgetListResponse{
		Goals: statuses,
		Total: total,
	})
}

func (h *Handler) GetBudget(c *gin.Context) {
	goalID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	status, err := h.BudgetService.GetGoalStatus(ctx, goalID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BudgetStatusResponse{Status: status})
}

func (h *Handler) UpdateBudget(c *gin.Context) {
	goalID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.BudgetUpdateRequest
	if err = c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	if err := h.BudgetService.UpdateGoal(ctx, goalID, &budget.UpdateGoalRequest{
		Amount:      body.Amount,
		AlertAt:     body.AlertAt,
		IsRecurring: body.IsRecurring,
	}); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Meta de orçamento atualizada com sucesso"})
}

func (h *Handler) DeleteBudget(c *gin.Context) {
	goalID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if err := h.BudgetService.DeleteGoal(ctx, goalID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Meta de orçamento removida com sucesso"})
}

func (h *Handler) GetBudgetSummary(c *gin.Context) {
	month, year, err := h.parsePeriod(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	summary, err := h.BudgetService.GetSummary(ctx, month, year)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BudgetSummaryResponse{Summary: summary})
}
