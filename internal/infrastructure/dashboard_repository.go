package infrastructure

import (
	"context"
	"time"

	"Fluxo/internal/domain/dashboard"
	"Fluxo/internal/domain/transaction"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"gorm.io/gorm"
)

type DashboardRepository struct {
	DB *gorm.DB
}

var _ dashboard.Repository = (*DashboardRepository)(nil)

func (r *DashboardRepository) GetTotalBalance(ctx context.Context) (float64, error) {
	var balance float64
	err := r.DB.WithContext(ctx).Table("transactions").
		Select(
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0)",
			string(transaction.TypeReceipt),
		).
		Scan(&balance).Error
	return balance, err
}

func (r *DashboardRepository) GetMonthlyTrend(ctx context.Context, months int) ([]*dashboard.MonthlyTrendItem, error) {
	if months <= 0 {
		months = 6
	}

	// Um item por mês, do mais antigo ao atual, incluindo meses sem movimento.
	items := make([]*dashboard.MonthlyTrendItem, 0, months)
	current := dateutil.StartOfMonth(dateutil.Today())

	for i := months - 1; i >= 0; i-- {
		monthStart := dateutil.AddMonths(current, -i)
		monthEnd := dateutil.EndOfMonth(monthStart)

		var row struct {
			Income  float64
			Expense float64
		}
		err := r.DB.WithContext(ctx).Table("transactions").
			Select(
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) as income, "+
					"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) as expense",
				string(transaction.TypeReceipt), string(transaction.TypeExpense),
			).
			Where("date >= ? AND date <= ?", monthStart, monthEnd).
			Scan(&row).Error
		if err != nil {
			return nil, err
		}

		items = append(items, &dashboard.MonthlyTrendItem{
			Month:    monthStart.Format("01"),
			Year:     monthStart.Year(),
			Income:   row.Income,
			Expenses: row.Expense,
			Balance:  row.Income - row.Expense,
		})
	}

	return items, nil
}

func (r *DashboardRepository) GetExpensesByCategory(ctx context.Context, month, year int) ([]*dashboard.CategoryExpense, error) {
	start := dateutil.Date(year, time.Month(month), 1)
	end := dateutil.EndOfMonth(start)

	var rows []struct {
		CategoryId   string
		CategoryName string
		Amount       float64
	}

	err := r.DB.WithContext(ctx).Table("transactions t").
		Select("t.category_id, c.name as category_name, SUM(t.amount) as amount").
		Joins("LEFT JOIN categories c ON t.category_id = c.id").
		Where("t.type = ? AND t.date >= ? AND t.date <= ?", string(transaction.TypeExpense), start, end).
		Group("t.category_id, c.name").
		Order("amount DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	var totalExpenses float64
	for _, row := range rows {
		totalExpenses += row.Amount
	}

	out := make([]*dashboard.CategoryExpense, 0, len(rows))
	for _, row := range rows {
		categoryID, err := pkg.ParseULID(row.CategoryId)
		if err != nil {
			continue
		}

		percentage := 0.0
		if totalExpenses > 0 {
			percentage = (row.Amount / totalExpenses) * 100
		}

		out = append(out, &dashboard.CategoryExpense{
			CategoryId:   categoryID,
			CategoryName: row.CategoryName,
			Amount:       row.Amount,
			Percentage:   percentage,
		})
	}

	return out, nil
}

func (r *DashboardRepository) GetRecentTransactions(ctx context.Context, limit int) ([]*dashboard.TransactionSummary, error) {
	if limit <= 0 {
		limit = 5
	}

	var rows []transactionDB
	err := r.DB.WithContext(ctx).Table("transactions").
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*dashboard.TransactionSummary, 0, len(rows))
	for i := range rows {
		tx, err := toDomainTransaction(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, &dashboard.TransactionSummary{
			Id:          tx.Id,
			Type:        string(tx.Type),
			Amount:      tx.Amount,
			Description: tx.Description,
			CategoryId:  tx.CategoryId,
			Date:        tx.Date,
		})
	}

	return out, nil
}
