package fx

import (
	"Fluxo/config"
	"Fluxo/internal/infrastructure"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newTransactionRepository,
		newCategoryRepository,
		newRecurringRepository,
		newDebtRepository,
		newCreditCardRepository,
		newBudgetRepository,
		newDashboardRepository,
		newReportRepository,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newTransactionRepository(db *gorm.DB) *infrastructure.TransactionRepository {
	return &infrastructure.TransactionRepository{DB: db}
}

func newCategoryRepository(db *gorm.DB) *infrastructure.TransactionCategoryRepository {
	return &infrastructure.TransactionCategoryRepository{DB: db}
}

func newRecurringRepository(db *gorm.DB) *infrastructure.RecurringRepository {
	return &infrastructure.RecurringRepository{DB: db}
}

func newDebtRepository(db *gorm.DB) *infrastructure.DebtRepository {
	return &infrastructure.DebtRepository{DB: db}
}

func newCreditCardRepository(db *gorm.DB) *infrastructure.CreditCardRepository {
	return &infrastructure.CreditCardRepository{DB: db}
}

func newBudgetRepository(db *gorm.DB) *infrastructure.BudgetRepository {
	return &infrastructure.BudgetRepository{DB: db}
}

func newDashboardRepository(db *gorm.DB) *infrastructure.DashboardRepository {
	return &infrastructure.DashboardRepository{DB: db}
}

func newReportRepository(db *gorm.DB) *infrastructure.ReportRepository {
	return &infrastructure.ReportRepository{DB: db}
}
