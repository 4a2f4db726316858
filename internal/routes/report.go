package routes

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"Fluxo/internal/contracts"
	appErrors "Fluxo/internal/errors"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetMonthlyReport(c *gin.Context) {
	month, year, err := h.parsePeriod(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	monthly, err := h.ReportService.GetMonthlyReport(ctx, month, year)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MonthlyReportResponse{Report: monthly})
}

func (h *Handler) GetYearlyReport(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := pkg.ParseInt(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			h.respondError(c, appErrors.NewValidationError("year", "deve ser um ano válido"))
			return
		}
		year = parsed
	}

	ctx := c.Request.Context()
	yearly, err := h.ReportService.GetYearlyReport(ctx, year)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.YearlyReportResponse{Report: yearly})
}

func (h *Handler) GetCategoryReport(c *gin.Context) {
	categoryID, err := pkg.ParseULID(c.Param("category_id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
		return
	}

	endDate := dateutil.Today()
	startDate := dateutil.AddMonths(endDate, -6)

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := dateutil.ParseDay(raw)
		if err != nil {
			h.respondError(c, err)
			return
		}
		startDate = parsed
	}

	if raw := c.Query("end_date"); raw != "" {
		parsed, err := dateutil.ParseDay(raw)
		if err != nil {
			h.respondError(c, err)
			return
		}
		endDate = parsed
	}

	ctx := c.Request.Context()
	categoryReport, err := h.ReportService.GetCategoryReport(ctx, categoryID, startDate, endDate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CategoryReportResponse{Report: categoryReport})
}

func (h *Handler) ExportTransactionsCSV(c *gin.Context) {
	month, year, err := h.parsePeriod(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	data, err := h.ReportService.ExportTransactionsCSV(ctx, month, year)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filename := fmt.Sprintf("transacoes-%04d-%02d.csv", year, month)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *Handler) ExportMonthlyJSON(c *gin.Context) {
	month, year, err := h.parsePeriod(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	data, err := h.ReportService.ExportMonthlyJSON(ctx, month, year)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filename := fmt.Sprintf("relatorio-%04d-%02d.json", year, month)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

func (h *Handler) ExportMonthlyHTML(c *gin.Context) {
	month, year, err := h.parsePeriod(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	data, err := h.ReportService.ExportMonthlyHTML(ctx, month, year)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

func (h *Handler) ExportBackup(c *gin.Context) {
	ctx := c.Request.Context()
	data, err := h.ReportService.ExportBackup(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filename := fmt.Sprintf("backup-%s.json", dateutil.FormatDay(time.Now()))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

func (h *Handler) ImportBackup(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	ctx := c.Request.Context()
	backup, err := h.ReportService.ImportBackup(ctx, data)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BackupImportResponse{
		Message:      "Backup restaurado com sucesso",
		Transactions: len(backup.Transactions),
		Categories:   len(backup.Categories),
		Recurring:    len(backup.Recurring),
		Debts:        len(backup.Debts),
		Cards:        len(backup.Cards),
		BudgetGoals:  len(backup.BudgetGoals),
	})
}
