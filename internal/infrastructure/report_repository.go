package infrastructure

import (
	"context"
	"sort"
	"time"

	"Fluxo/internal/domain/report"
	"Fluxo/internal/domain/transaction"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

var _ report.Repository = (*ReportRepository)(nil)

func (r *ReportRepository) GetMonthlyReport(ctx context.Context, month, year int) (*report.MonthlyReport, error) {
	start := dateutil.Date(year, time.Month(month), 1)
	end := dateutil.EndOfMonth(start)

	income, expenses, err := r.totalsBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	monthly := &report.MonthlyReport{
		Month:         month,
		Year:          year,
		TotalIncome:   income,
		TotalExpenses: expenses,
		NetBalance:    income - expenses,
	}
	if income > 0 {
		monthly.SavingsRate = ((income - expenses) / income) * 100
	}

	monthly.IncomeByCategory, err = r.amountsByCategory(ctx, string(transaction.TypeReceipt), start, end, income)
	if err != nil {
		return nil, err
	}

	monthly.ExpensesByCategory, err = r.amountsByCategory(ctx, string(transaction.TypeExpense), start, end, expenses)
	if err != nil {
		return nil, err
	}

	monthly.DailyBalance, err = r.dailyBalance(ctx, start, end)
	if err != nil {
		return nil, err
	}

	monthly.TopExpenses, err = r.topExpenses(ctx, start, end, 5)
	if err != nil {
		return nil, err
	}

	monthly.Comparison, err = r.monthComparison(ctx, start, income, expenses)
	if err != nil {
		return nil, err
	}

	return monthly, nil
}

func (r *ReportRepository) GetYearlyReport(ctx context.Context, year int) (*report.YearlyReport, error) {
	yearly := &report.YearlyReport{Year: year}

	for month := 1; month <= 12; month++ {
		start := dateutil.Date(year, time.Month(month), 1)
		income, expenses, err := r.totalsBetween(ctx, start, dateutil.EndOfMonth(start))
		if err != nil {
			return nil, err
		}

		yearly.TotalIncome += income
		yearly.TotalExpenses += expenses
		yearly.MonthlyBreakdown = append(yearly.MonthlyBreakdown, report.MonthSummary{
			Month:    month,
			Income:   income,
			Expenses: expenses,
			Balance:  income - expenses,
		})
	}

	yearly.NetBalance = yearly.TotalIncome - yearly.TotalExpenses
	yearly.AverageSavings = yearly.NetBalance / 12

	yearStart := dateutil.Date(year, time.January, 1)
	yearEnd := dateutil.Date(year, time.December, 31)

	categories, err := r.amountsByCategory(ctx, string(transaction.TypeExpense), yearStart, yearEnd, yearly.TotalExpenses)
	if err != nil {
		return nil, err
	}
	if len(categories) > 5 {
		categories = categories[:5]
	}
	yearly.TopCategories = categories

	return yearly, nil
}

func (r *ReportRepository) GetCategoryReport(ctx context.Context, categoryID ulid.ULID, startDate, endDate time.Time) (*report.CategoryReport, error) {
	var rows []transactionDB
	err := r.DB.WithContext(ctx).Table("transactions").
		Where("category_id = ? AND date >= ? AND date <= ?", categoryID.String(), startDate, endDate).
		Order("date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	categoryName := ""
	var cdb categoryDB
	if err := r.DB.WithContext(ctx).Table("categories").Where("id = ?", categoryID.String()).First(&cdb).Error; err == nil {
		categoryName = cdb.Name
	}

	result := &report.CategoryReport{
		CategoryId:   categoryID,
		CategoryName: categoryName,
		Count:        len(rows),
	}

	byMonth := make(map[string]*report.MonthSummary)
	for i := range rows {
		tx, err := toDomainTransaction(&rows[i])
		if err != nil {
			continue
		}

		result.TotalAmount += tx.Amount
		result.Transactions = append(result.Transactions, report.TransactionItem{
			Id:          tx.Id,
			Description: tx.Description,
			Amount:      tx.Amount,
			Category:    categoryName,
			Date:        tx.Date,
		})

		key := tx.Date.Format("2006-01")
		summary, ok := byMonth[key]
		if !ok {
			summary = &report.MonthSummary{Month: int(tx.Date.Month())}
			byMonth[key] = summary
		}
		if tx.Type == transaction.TypeReceipt {
			summary.Income += tx.Amount
		} else {
			summary.Expenses += tx.Amount
		}
		summary.Balance = summary.Income - summary.Expenses
	}

	if result.Count > 0 {
		result.Average = result.TotalAmount / float64(result.Count)
	}

	keys := make([]string, 0, len(byMonth))
	for key := range byMonth {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		result.MonthlyTrend = append(result.MonthlyTrend, *byMonth[key])
	}

	return result, nil
}

func (r *ReportRepository) totalsBetween(ctx context.Context, from, to time.Time) (income, expenses float64, err error) {
	var row struct {
		Income  float64
		Expense float64
	}
	err = r.DB.WithContext(ctx).Table("transactions").
		Select(
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) as income, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) as expense",
			string(transaction.TypeReceipt), string(transaction.TypeExpense),
		).
		Where("date >= ? AND date <= ?", from, to).
		Scan(&row).Error
	return row.Income, row.Expense, err
}

func (r *ReportRepository) amountsByCategory(ctx context.Context, txType string, from, to time.Time, total float64) ([]report.CategoryAmount, error) {
	var rows []struct {
		CategoryId   string
		CategoryName string
		Amount       float64
		Count        int
	}

	err := r.DB.WithContext(ctx).Table("transactions t").
		Select("t.category_id, c.name as category_name, SUM(t.amount) as amount, COUNT(*) as count").
		Joins("LEFT JOIN categories c ON t.category_id = c.id").
		Where("t.type = ? AND t.date >= ? AND t.date <= ?", txType, from, to).
		Group("t.category_id, c.name").
		Order("amount DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]report.CategoryAmount, 0, len(rows))
	for _, row := range rows {
		categoryID, err := pkg.ParseULID(row.CategoryId)
		if err != nil {
			continue
		}

		percentage := 0.0
		if total > 0 {
			percentage = (row.Amount / total) * 100
		}

		out = append(out, report.CategoryAmount{
			CategoryId:   categoryID,
			CategoryName: row.CategoryName,
			Amount:       row.Amount,
			Percentage:   percentage,
			Count:        row.Count,
		})
	}
	return out, nil
}

func (r *ReportRepository) dailyBalance(ctx context.Context, from, to time.Time) ([]report.DailyBalance, error) {
	var rows []transactionDB
	err := r.DB.WithContext(ctx).Table("transactions").
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*report.DailyBalance)
	var keys []string
	for i := range rows {
		key := dateutil.FormatDay(rows[i].Date)
		day, ok := byDay[key]
		if !ok {
			day = &report.DailyBalance{Date: key}
			byDay[key] = day
			keys = append(keys, key)
		}
		if rows[i].Type == string(transaction.TypeReceipt) {
			day.Income += rows[i].Amount
		} else {
			day.Expenses += rows[i].Amount
		}
	}

	sort.Strings(keys)

	// Saldo acumulado dia a dia dentro do período.
	out := make([]report.DailyBalance, 0, len(keys))
	running := 0.0
	for _, key := range keys {
		day := byDay[key]
		running += day.Income - day.Expenses
		day.Balance = running
		out = append(out, *day)
	}
	return out, nil
}

func (r *ReportRepository) topExpenses(ctx context.Context, from, to time.Time, limit int) ([]report.TransactionItem, error) {
	var rows []struct {
		transactionDB
		CategoryName string
	}

	err := r.DB.WithContext(ctx).Table("transactions t").
		Select("t.*, c.name as category_name").
		Joins("LEFT JOIN categories c ON t.category_id = c.id").
		Where("t.type = ? AND t.date >= ? AND t.date <= ?", string(transaction.TypeExpense), from, to).
		Order("t.amount DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]report.TransactionItem, 0, len(rows))
	for i := range rows {
		tx, err := toDomainTransaction(&rows[i].transactionDB)
		if err != nil {
			continue
		}
		out = append(out, report.TransactionItem{
			Id:          tx.Id,
			Description: tx.Description,
			Amount:      tx.Amount,
			Category:    rows[i].CategoryName,
			Date:        tx.Date,
		})
	}
	return out, nil
}

func (r *ReportRepository) monthComparison(ctx context.Context, monthStart time.Time, income, expenses float64) (*report.MonthComparison, error) {
	previousStart := dateutil.AddMonths(monthStart, -1)
	previousIncome, previousExpenses, err := r.totalsBetween(ctx, previousStart, dateutil.EndOfMonth(previousStart))
	if err != nil {
		return nil, err
	}

	comparison := &report.MonthComparison{
		PreviousIncome:   previousIncome,
		PreviousExpenses: previousExpenses,
		IncomeChange:     income - previousIncome,
		ExpensesChange:   expenses - previousExpenses,
	}
	if previousIncome > 0 {
		comparison.IncomeChangePerc = (comparison.IncomeChange / previousIncome) * 100
	}
	if previousExpenses > 0 {
		comparison.ExpensesChangePerc = (comparison.ExpensesChange / previousExpenses) * 100
	}
	return comparison, nil
}
