package routes

import (
	"time"

	"Fluxo/internal/domain/budget"
	"Fluxo/internal/domain/creditcard"
	"Fluxo/internal/domain/dashboard"
	"Fluxo/internal/domain/debt"
	"Fluxo/internal/domain/recurring"
	"Fluxo/internal/domain/report"
	"Fluxo/internal/domain/transaction"
	appErrors "Fluxo/internal/errors"
	"Fluxo/internal/logger"
	"Fluxo/internal/pkg"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	TransactionService *transaction.Service
	RecurringService   *recurring.Service
	DebtService        *debt.Service
	CreditCardService  *creditcard.Service
	BudgetService      *budget.Service
	DashboardService   *dashboard.Service
	ReportService      *report.Service
}

func (h *Handler) parsePagination(c *gin.Context) *pkg.PaginationParams {
	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "10")

	var pageNum, limitNum int
	if p, err := pkg.ParseInt(page); err == nil && p > 0 {
		pageNum = p
	} else {
		pageNum = 1
	}

	if l, err := pkg.ParseInt(limit); err == nil && l > 0 {
		limitNum = l
	} else {
		limitNum = 10
	}

	return &pkg.PaginationParams{
		Page:  pageNum,
		Limit: limitNum,
	}
}

// parsePeriod lê month/year da query, caindo no mês corrente quando ausentes.
func (h *Handler) parsePeriod(c *gin.Context) (int, int, error) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if raw := c.Query("month"); raw != "" {
		parsed, err := pkg.ParseInt(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, appErrors.NewValidationError("month", "deve estar entre 1 e 12")
		}
		month = parsed
	}

	if raw := c.Query("year"); raw != "" {
		parsed, err := pkg.ParseInt(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			return 0, 0, appErrors.NewValidationError("year", "deve ser um ano válido")
		}
		year = parsed
	}

	return month, year, nil
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	event := logger.Error().Str("code", appErr.Code).Str("path", c.FullPath())
	if appErr.Err != nil {
		event = event.Err(appErr.Err)
	}
	event.Msg("request_error")
	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.JSON(appErr.StatusCode, payload)
}
