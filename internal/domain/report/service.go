package report

import (
	"context"
	"time"

	"Fluxo/internal/domain/budget"
	"Fluxo/internal/domain/creditcard"
	"Fluxo/internal/domain/debt"
	"Fluxo/internal/domain/recurring"
	"Fluxo/internal/domain/transaction"
	appErrors "Fluxo/internal/errors"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository      Repository
	TransactionRepo transaction.Repository
	CategoryRepo    transaction.CategoryRepository
	RecurringRepo   recurring.Repository
	DebtRepo        debt.Repository
	CardRepo        creditcard.Repository
	BudgetRepo      budget.Repository
}

func NewService(
	repo Repository,
	transactionRepo transaction.Repository,
	categoryRepo transaction.CategoryRepository,
	recurringRepo recurring.Repository,
	debtRepo debt.Repository,
	cardRepo creditcard.Repository,
	budgetRepo budget.Repository,
) *Service {
	return &Service{
		Repository:      repo,
		TransactionRepo: transactionRepo,
		CategoryRepo:    categoryRepo,
		RecurringRepo:   recurringRepo,
		DebtRepo:        debtRepo,
		CardRepo:        cardRepo,
		BudgetRepo:      budgetRepo,
	}
}

func (s *Service) GetMonthlyReport(ctx context.Context, month, year int) (*MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, appErrors.NewValidationError("month", "deve estar entre 1 e 12")
	}

	if year < 2000 || year > 2100 {
		return nil, appErrors.NewValidationError("year", "ano inválido")
	}

	return s.Repository.GetMonthlyReport(ctx, month, year)
}

func (s *Service) GetYearlyReport(ctx context.Context, year int) (*YearlyReport, error) {
	if year < 2000 || year > 2100 {
		return nil, appErrors.NewValidationError("year", "ano inválido")
	}

	return s.Repository.GetYearlyReport(ctx, year)
}

func (s *Service) GetCategoryReport(ctx context.Context, categoryID ulid.ULID, startDate, endDate time.Time) (*CategoryReport, error) {
	if endDate.Before(startDate) {
		return nil, appErrors.NewValidationError("end_date", "deve ser posterior à data inicial")
	}

	return s.Repository.GetCategoryReport(ctx, categoryID, startDate, endDate)
}
