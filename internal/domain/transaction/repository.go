package transaction

import (
	"context"
	"time"

	"Fluxo/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// Filter restringe a listagem de transações.
type Filter struct {
	Type       *Types
	CategoryId *ulid.ULID
	Month      int
	Year       int
}

type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	Update(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, id ulid.ULID) error
	GetByID(ctx context.Context, id ulid.ULID) (*Transaction, error)
	GetAll(ctx context.Context, filter *Filter, pagination *pkg.PaginationParams) ([]*Transaction, int64, error)
	// GetByOccurrence busca pela chave de idempotência (regra, data da
	// ocorrência). Retorna (nil, nil) quando não há registro; erro só em
	// falha de consulta.
	GetByOccurrence(ctx context.Context, recurringID ulid.ULID, occurrenceDate time.Time) (*Transaction, error)
	GetMonthTotals(ctx context.Context, month, year int) (*MonthTotals, error)
	GetTotalsBetween(ctx context.Context, from, to time.Time) (*MonthTotals, error)
	SumExpensesByCategory(ctx context.Context, categoryID ulid.ULID, month, year int) (float64, error)
	ReplaceAll(ctx context.Context, txs []*Transaction) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id ulid.ULID) error
	GetByID(ctx context.Context, id ulid.ULID) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	CountTransactions(ctx context.Context, categoryID ulid.ULID) (int64, error)
	ReplaceAll(ctx context.Context, categories []*Category) error
}
