package fx

import (
	"Fluxo/internal/domain/budget"
	"Fluxo/internal/domain/creditcard"
	"Fluxo/internal/domain/dashboard"
	"Fluxo/internal/domain/debt"
	"Fluxo/internal/domain/recurring"
	"Fluxo/internal/domain/report"
	"Fluxo/internal/domain/transaction"
	"Fluxo/internal/infrastructure"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newTransactionService,
		newRecurringService,
		newDebtService,
		newCreditCardService,
		newBudgetService,
		newDashboardService,
		newReportService,
	),
)

func newTransactionService(
	repo *infrastructure.TransactionRepository,
	categoryRepo *infrastructure.TransactionCategoryRepository,
) *transaction.Service {
	return transaction.NewService(repo, categoryRepo)
}

func newRecurringService(
	repo *infrastructure.RecurringRepository,
	transactionRepo *infrastructure.TransactionRepository,
	categoryRepo *infrastructure.TransactionCategoryRepository,
) *recurring.Service {
	return recurring.NewService(repo, transactionRepo, categoryRepo)
}

func newDebtService(repo *infrastructure.DebtRepository) *debt.Service {
	return debt.NewService(repo)
}

func newCreditCardService(repo *infrastructure.CreditCardRepository) *creditcard.Service {
	return creditcard.NewService(repo)
}

func newBudgetService(
	repo *infrastructure.BudgetRepository,
	transactionRepo *infrastructure.TransactionRepository,
	categoryRepo *infrastructure.TransactionCategoryRepository,
) *budget.Service {
	return budget.NewService(repo, transactionRepo, categoryRepo)
}

func newDashboardService(
	repo *infrastructure.DashboardRepository,
	transactionRepo *infrastructure.TransactionRepository,
	recurringRepo *infrastructure.RecurringRepository,
	debtRepo *infrastructure.DebtRepository,
	budgetSvc *budget.Service,
) *dashboard.Service {
	return dashboard.NewService(repo, transactionRepo, recurringRepo, debtRepo, budgetSvc)
}

func newReportService(
	repo *infrastructure.ReportRepository,
	transactionRepo *infrastructure.TransactionRepository,
	categoryRepo *infrastructure.TransactionCategoryRepository,
	recurringRepo *infrastructure.RecurringRepository,
	debtRepo *infrastructure.DebtRepository,
	cardRepo *infrastructure.CreditCardRepository,
	budgetRepo *infrastructure.BudgetRepository,
) *report.Service {
	return report.NewService(repo, transactionRepo, categoryRepo, recurringRepo, debtRepo, cardRepo, budgetRepo)
}
