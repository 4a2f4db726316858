package routes

import (
	"net/http"
	"time"

	"Fluxo/internal/contracts"
	"Fluxo/internal/domain/recurring"
	"Fluxo/internal/domain/transaction"
	appErrors "Fluxo/internal/errors"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateRecurring(c *gin.Context) {
	var body contracts.RecurringCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	categoryID, err := pkg.ParseULID(body.CategoryId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
		return
	}

	startDate, err := dateutil.ParseDay(body.StartDate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	req := &recurring.CreateRecurringRequest{
		Type:        transaction.Types(body.Type),
		CategoryId:  categoryID,
		Amount:      body.Amount,
		Description: body.Description,
		Frequency:   recurring.FrequencyType(body.Frequency),
		DayOfMonth:  body.DayOfMonth,
		DayOfWeek:   body.DayOfWeek,
		StartDate:   startDate,
	}

	if body.EndDate != nil && *body.EndDate != "" {
		endDate, err := dateutil.ParseDay(*body.EndDate)
		if err != nil {
			h.respondError(c, err)
			return
		}
		req.EndDate = &endDate
	}

	ctx := c.Request.Context()
	rule, err := h.RecurringService.CreateRecurring(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.RecurringCreateResponse{
		Message:   "Recorrência criada com sucesso",
		Recurring: rule,
	})
}

func (h *Handler) GetRecurringList(c *gin.Context) {
	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	rules, total, err := h.RecurringService.ListRecurring(ctx, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.RecurringListResponse{
		Recurring: rules,
		Total:     total,
	})
}

func (h *Handler) GetRecurring(c *gin.Context) {
	recurringID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	rule, err := h.RecurringService.GetRecurringByID(ctx, recurringID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.RecurringSingleResponse{Recurring: rule})
}

func (h *Handler) UpdateRecurring(c *gin.Context) {
	recurringID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.RecurringUpdateRequest
	if err = c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &recurring.UpdateRecurringRequest{
		Amount:      body.Amount,
		Description: body.Description,
		DayOfMonth:  body.DayOfMonth,
		DayOfWeek:   body.DayOfWeek,
	}

	if body.EndDate != nil && *body.EndDate != "" {
		endDate, err := dateutil.ParseDay(*body.EndDate)
		if err != nil {
			h.respondError(c, err)
			return
		}
		req.EndDate = &endDate
	}

	ctx := c.Request.Context()
	if err := h.RecurringService.UpdateRecurring(ctx, recurringID, req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Recorrência atualizada com sucesso"})
}

func (h *Handler) DeleteRecurring(c *gin.Context) {
	recurringID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if err := h.RecurringService.DeleteRecurring(ctx, recurringID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Recorrência removida com sucesso"})
}

func (h *Handler) PauseRecurring(c *gin.Context) {
	h.setRecurringActive(c, false, "Recorrência pausada com sucesso")
}

func (h *Handler) ResumeRecurring(c *gin.Context) {
	h.setRecurringActive(c, true, "Recorrência reativada com sucesso")
}

func (h *Handler) setRecurringActive(c *gin.Context, active bool, message string) {
	recurringID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if err := h.RecurringService.SetActive(ctx, recurringID, active); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: message})
}

func (h *Handler) ProcessRecurring(c *gin.Context) {
	ctx := c.Request.Context()
	inserted, err := h.RecurringService.ProcessDue(ctx, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.RecurringProcessResponse{
		Message:  "Recorrências processadas",
		Inserted: inserted,
	})
}

func (h *Handler) ProcessRecurringManually(c *gin.Context) {
	recurringID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var processDate *time.Time
	if raw := c.Query("date"); raw != "" {
		date, err := dateutil.ParseDay(raw)
		if err != nil {
			h.respondError(c, err)
			return
		}
		processDate = &date
	}

	ctx := c.Request.Context()
	tx, err := h.RecurringService.ProcessRecurringManually(ctx, recurringID, processDate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.TransactionCreateResponse{
		Message:     "Recorrência lançada com sucesso",
		Transaction: tx,
	})
}

func (h *Handler) GetRecurringOccurrences(c *gin.Context) {
	month, year, err := h.parsePeriod(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	occurrences, err := h.RecurringService.MonthOccurrences(ctx, month, year)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.RecurringOccurrencesResponse{
		Month:       month,
		Year:        year,
		Occurrences: occurrences,
	})
}
