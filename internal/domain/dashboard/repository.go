package dashboard

import (
	"context"
)

// Repository concentra as consultas agregadas do painel, que cruzam tabelas
// e não pertencem a nenhum domínio isolado.
type Repository interface {
	GetTotalBalance(ctx context.Context) (float64, error)
	GetMonthlyTrend(ctx context.Context, months int) ([]*MonthlyTrendItem, error)
	GetExpensesByCategory(ctx context.Context, month, year int) ([]*CategoryExpense, error)
	GetRecentTransactions(ctx context.Context, limit int) ([]*TransactionSummary, error)
}
