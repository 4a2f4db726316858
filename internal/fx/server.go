package fx

import (
	"context"

	"Fluxo/config"
	"Fluxo/internal/logger"
	"Fluxo/internal/middleware"
	"Fluxo/internal/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// ServerModule fornece a configuração do servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter() *gin.Engine {
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	rateLimiter *middleware.RateLimiter,
) {
	router.Use(middleware.CORSMiddleware())

	api := router.Group("/api")
	api.Use(middleware.RateLimit(rateLimiter))
	{
		api.GET("/dashboard", handler.GetDashboard)
		api.GET("/dashboard/projection", handler.GetProjection)

		transactions := api.Group("/transactions")
		{
			transactions.POST("", handler.CreateTransaction)
			transactions.GET("", handler.GetTransactions)
			transactions.GET("/totals", handler.GetMonthTotals)
			transactions.GET("/:id", handler.GetTransaction)
			transactions.PATCH("/:id", handler.UpdateTransaction)
			transactions.DELETE("/:id", handler.DeleteTransaction)
		}

		categories := api.Group("/categories")
		{
			categories.POST("", handler.CreateCategory)
			categories.GET("", handler.GetCategories)
			categories.PATCH("/:id", handler.UpdateCategory)
			categories.DELETE("/:id", handler.DeleteCategory)
		}

		recurring := api.Group("/recurring")
		{
			recurring.POST("", handler.CreateRecurring)
			recurring.GET("", handler.GetRecurringList)
			recurring.GET("/occurrences", handler.GetRecurringOccurrences)
			recurring.POST("/process", handler.ProcessRecurring)
			recurring.GET("/:id", handler.GetRecurring)
			recurring.PATCH("/:id", handler.UpdateRecurring)
			recurring.DELETE("/:id", handler.DeleteRecurring)
			recurring.POST("/:id/pause", handler.PauseRecurring)
			recurring.POST("/:id/resume", handler.ResumeRecurring)
			recurring.POST("/:id/process", handler.ProcessRecurringManually)
		}

		debts := api.Group("/debts")
		{
			debts.POST("", handler.CreateDebt)
			debts.GET("", handler.GetDebts)
			debts.GET("/upcoming", handler.GetUpcomingDebts)
			debts.GET("/:id", handler.GetDebt)
			debts.PATCH("/:id", handler.UpdateDebt)
			debts.DELETE("/:id", handler.DeleteDebt)
			debts.POST("/:id/pay", handler.PayDebt)
			debts.POST("/:id/unpay", handler.UnpayDebt)
		}

		creditCards := api.Group("/credit-cards")
		{
			creditCards.POST("", handler.CreateCreditCard)
			creditCards.GET("", handler.ListCreditCards)
			creditCards.GET("/:id", handler.GetCreditCard)
			creditCards.PATCH("/:id", handler.UpdateCreditCard)
			creditCards.DELETE("/:id", handler.DeleteCreditCard)
			creditCards.POST("/:id/purchases", handler.CreatePurchase)
			creditCards.GET("/:id/charges", handler.ListCharges)
			creditCards.GET("/:id/invoice", handler.GetInvoice)
			creditCards.GET("/:id/invoice/reference", handler.GetCardDate)
			creditCards.POST("/:id/invoice/pay", handler.PayInvoice)
			creditCards.POST("/:id/invoice/unpay", handler.UnpayInvoice)
			creditCards.DELETE("/purchases/:purchase_id", handler.DeletePurchase)
		}

		budgets := api.Group("/budgets")
		{
			budgets.POST("", handler.CreateBudget)
			budgets.GET("", handler.ListBudgets)
			budgets.GET("/summary", handler.GetBudgetSummary)
			budgets.GET("/:id", handler.GetBudget)
			budgets.PATCH("/:id", handler.UpdateBudget)
			budgets.DELETE("/:id", handler.DeleteBudget)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/monthly", handler.GetMonthlyReport)
			reports.GET("/yearly", handler.GetYearlyReport)
			reports.GET("/category/:category_id", handler.GetCategoryReport)
			reports.GET("/export/csv", handler.ExportTransactionsCSV)
			reports.GET("/export/json", handler.ExportMonthlyJSON)
			reports.GET("/export/html", handler.ExportMonthlyHTML)
		}

		backup := api.Group("/backup")
		{
			backup.GET("/export", handler.ExportBackup)
			backup.POST("/import", handler.ImportBackup)
		}
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("Falha ao iniciar servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor parando...")
			return nil
		},
	})
}
