package debt

import (
	"context"
	"time"

	"Fluxo/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Filter struct {
	Paid       *bool
	CategoryId *ulid.ULID
	Month      int
	Year       int
}

type Repository interface {
	Create(ctx context.Context, debts []*Debt) error
	Update(ctx context.Context, debt *Debt) error
	Delete(ctx context.Context, debtID ulid.ULID) error
	DeleteByParent(ctx context.Context, parentID ulid.ULID) error
	GetByID(ctx context.Context, debtID ulid.ULID) (*Debt, error)
	GetAll(ctx context.Context, filter *Filter, pagination *pkg.PaginationParams) ([]*Debt, int64, error)
	GetUnpaidBetween(ctx context.Context, from, to time.Time) ([]*Debt, error)
	SumUnpaidBetween(ctx context.Context, from, to time.Time) (float64, error)
	ReplaceAll(ctx context.Context, debts []*Debt) error
}
