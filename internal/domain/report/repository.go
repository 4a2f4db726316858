package report

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	GetMonthlyReport(ctx context.Context, month, year int) (*MonthlyReport, error)
	GetYearlyReport(ctx context.Context, year int) (*YearlyReport, error)
	GetCategoryReport(ctx context.Context, categoryID ulid.ULID, startDate, endDate time.Time) (*CategoryReport, error)
}
