package routes

import (
	"net/http"
	"time"

	"Fluxo/internal/contracts"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetDashboard(c *gin.Context) {
	month, year, err := h.parsePeriod(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	board, err := h.DashboardService.GetDashboard(ctx, month, year)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.DashboardSingleResponse{Dashboard: board})
}

func (h *Handler) GetProjection(c *gin.Context) {
	ctx := c.Request.Context()
	projection, err := h.DashboardService.ProjectEndOfMonth(ctx, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ProjectionResponse{Projection: projection})
}
