package dashboard

import (
	"context"
	"time"

	"Fluxo/internal/domain/budget"
	"Fluxo/internal/domain/debt"
	"Fluxo/internal/domain/recurring"
	"Fluxo/internal/domain/transaction"
	appErrors "Fluxo/internal/errors"
	"Fluxo/internal/pkg/dateutil"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository      Repository
	TransactionRepo transaction.Repository
	RecurringRepo   recurring.Repository
	DebtRepo        debt.Repository
	BudgetService   *budget.Service
}

func NewService(
	repo Repository,
	transactionRepo transaction.Repository,
	recurringRepo recurring.Repository,
	debtRepo debt.Repository,
	budgetService *budget.Service,
) *Service {
	return &Service{
		Repository:      repo,
		TransactionRepo: transactionRepo,
		RecurringRepo:   recurringRepo,
		DebtRepo:        debtRepo,
		BudgetService:   budgetService,
	}
}

func (s *Service) GetDashboard(ctx context.Context, month, year int) (*DashboardResponse, error) {
	now := time.Now()
	if month <= 0 || month > 12 {
		month = int(now.Month())
	}
	if year <= 0 {
		year = now.Year()
	}

	summary, err := s.buildSummary(ctx, month, year)
	if err != nil {
		return nil, err
	}

	monthlyTrend, err := s.Repository.GetMonthlyTrend(ctx, 6)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	categoryExpenses, err := s.Repository.GetExpensesByCategory(ctx, month, year)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	recentTransactions, err := s.Repository.GetRecentTransactions(ctx, 5)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	budgetStatus, _, err := s.BudgetService.ListGoalStatuses(ctx, month, year, nil)
	if err != nil {
		return nil, err
	}

	upcomingDebts, err := s.DebtRepo.GetUnpaidBetween(ctx, dateutil.Today(), dateutil.AddDays(dateutil.Today(), 30))
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	projection, err := s.ProjectEndOfMonth(ctx, dateutil.Today())
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Summary:            summary,
		MonthlyTrend:       monthlyTrend,
		CategoryExpenses:   categoryExpenses,
		RecentTransactions: recentTransactions,
		BudgetStatus:       budgetStatus,
		UpcomingDebts:      upcomingDebts,
		Projection:         projection,
	}, nil
}

func (s *Service) buildSummary(ctx context.Context, month, year int) (*FinancialSummary, error) {
	totalBalance, err := s.Repository.GetTotalBalance(ctx)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	totals, err := s.TransactionRepo.GetMonthTotals(ctx, month, year)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return &FinancialSummary{
		TotalBalance:  totalBalance,
		MonthIncome:   totals.Income,
		MonthExpenses: totals.Expense,
		MonthBalance:  totals.Balance(),
	}, nil
}

// ProjectEndOfMonth estima o saldo no fim do mês corrente:
//
//	saldo atual
//	+ receitas recorrentes ainda não materializadas no mês
//	- despesas recorrentes ainda não materializadas no mês
//	- dívidas não pagas com vencimento após hoje, dentro do mês
//	- média diária de saída realizada x dias restantes
//
// A média é a saída realizada do mês corrente dividida pelos dias já
// decorridos; ocorrências projetadas nunca entram no cálculo da média.
func (s *Service) ProjectEndOfMonth(ctx context.Context, today time.Time) (*Projection, error) {
	today = dateutil.Truncate(today)
	monthEnd := dateutil.EndOfMonth(today)
	daysRemaining := dateutil.DaysBetween(today, monthEnd)

	balance, err := s.Repository.GetTotalBalance(ctx)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	rules, err := s.RecurringRepo.GetActive(ctx)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	var scheduledIncome, scheduledExpense float64
	for _, occurrence := range recurring.ExpandMonth(rules, today.Month(), today.Year()) {
		if !dateutil.After(occurrence.Date, today) {
			continue
		}
		switch occurrence.Type {
		case transaction.TypeReceipt:
			scheduledIncome += occurrence.Amount
		case transaction.TypeExpense:
			scheduledExpense += occurrence.Amount
		}
	}

	unpaidDebts, err := s.DebtRepo.SumUnpaidBetween(ctx, dateutil.AddDays(today, 1), monthEnd)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	monthToDate, err := s.TransactionRepo.GetTotalsBetween(ctx, dateutil.StartOfMonth(today), today)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	avgDailyOutflow := monthToDate.Expense / float64(today.Day())

	projected := balance + scheduledIncome - scheduledExpense - unpaidDebts - avgDailyOutflow*float64(daysRemaining)

	return &Projection{
		ReferenceDate:    today,
		MonthEnd:         monthEnd,
		DaysRemaining:    daysRemaining,
		CurrentBalance:   balance,
		ScheduledIncome:  scheduledIncome,
		ScheduledExpense: scheduledExpense,
		UnpaidDebts:      unpaidDebts,
		AvgDailyOutflow:  avgDailyOutflow,
		ProjectedBalance: projected,
	}, nil
}

type DashboardResponse struct {
	Summary            *FinancialSummary     `json:"summary"`
	MonthlyTrend       []*MonthlyTrendItem   `json:"monthlyTrend"`
	CategoryExpenses   []*CategoryExpense    `json:"categoryExpenses"`
	RecentTransactions []*TransactionSummary `json:"recentTransactions"`
	BudgetStatus       []*budget.GoalStatus  `json:"budgetStatus"`
	UpcomingDebts      []*debt.Debt          `json:"upcomingDebts"`
	Projection         *Projection           `json:"projection"`
}

type FinancialSummary struct {
	TotalBalance  float64 `json:"totalBalance"`
	MonthIncome   float64 `json:"monthIncome"`
	MonthExpenses float64 `json:"monthExpenses"`
	MonthBalance  float64 `json:"monthBalance"`
}

type MonthlyTrendItem struct {
	Month    string  `json:"month"`
	Year     int     `json:"year"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

type CategoryExpense struct {
	CategoryId   ulid.ULID `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Amount       float64   `json:"amount"`
	Percentage   float64   `json:"percentage"`
}

type TransactionSummary struct {
	Id          ulid.ULID `json:"id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CategoryId  ulid.ULID `json:"categoryId"`
	Date        time.Time `json:"date"`
}

// Projection é a estimativa de saldo para o fim do mês corrente, com as
// parcelas que a compõem expostas para o painel.
type Projection struct {
	ReferenceDate    time.Time `json:"referenceDate"`
	MonthEnd         time.Time `json:"monthEnd"`
	DaysRemaining    int       `json:"daysRemaining"`
	CurrentBalance   float64   `json:"currentBalance"`
	ScheduledIncome  float64   `json:"scheduledIncome"`
	ScheduledExpense float64   `json:"scheduledExpense"`
	UnpaidDebts      float64   `json:"unpaidDebts"`
	AvgDailyOutflow  float64   `json:"avgDailyOutflow"`
	ProjectedBalance float64   `json:"projectedBalance"`
}
