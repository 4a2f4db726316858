package fx

import (
	"time"

	"Fluxo/internal/domain/budget"
	"Fluxo/internal/domain/creditcard"
	"Fluxo/internal/domain/dashboard"
	"Fluxo/internal/domain/debt"
	"Fluxo/internal/domain/recurring"
	"Fluxo/internal/domain/report"
	"Fluxo/internal/domain/transaction"
	"Fluxo/internal/middleware"
	"Fluxo/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece o handler HTTP e o rate limiter
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newRateLimiter,
	),
)

func newHandler(
	transactionSvc *transaction.Service,
	recurringSvc *recurring.Service,
	debtSvc *debt.Service,
	creditCardSvc *creditcard.Service,
	budgetSvc *budget.Service,
	dashboardSvc *dashboard.Service,
	reportSvc *report.Service,
) *routes.Handler {
	return &routes.Handler{
		TransactionService: transactionSvc,
		RecurringService:   recurringSvc,
		DebtService:        debtSvc,
		CreditCardService:  creditCardSvc,
		BudgetService:      budgetSvc,
		DashboardService:   dashboardSvc,
		ReportService:      reportSvc,
	}
}

func newRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(100, time.Minute)
}
