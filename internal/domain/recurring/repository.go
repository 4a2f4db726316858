package recurring

import (
	"context"
	"time"

	"Fluxo/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, recurring *RecurringTransaction) error
	Update(ctx context.Context, recurring *RecurringTransaction) error
	Delete(ctx context.Context, recurringID ulid.ULID) error
	GetByID(ctx context.Context, recurringID ulid.ULID) (*RecurringTransaction, error)
	GetAll(ctx context.Context, pagination *pkg.PaginationParams) ([]*RecurringTransaction, int64, error)
	GetActive(ctx context.Context) ([]*RecurringTransaction, error)
	GetDue(ctx context.Context, date time.Time) ([]*RecurringTransaction, error)
	UpdateLastProcessed(ctx context.Context, recurringID ulid.ULID, processedDate, nextDue time.Time) error
	ReplaceAll(ctx context.Context, rules []*RecurringTransaction) error
}
