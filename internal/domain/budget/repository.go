package budget

import (
	"context"

	"Fluxo/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, goal *BudgetGoal) error
	Update(ctx context.Context, goal *BudgetGoal) error
	Delete(ctx context.Context, goalID ulid.ULID) error
	GetByID(ctx context.Context, goalID ulid.ULID) (*BudgetGoal, error)
	GetByPeriod(ctx context.Context, month, year int, pagination *pkg.PaginationParams) ([]*BudgetGoal, int64, error)
	GetByCategory(ctx context.Context, categoryID ulid.ULID, month, year int) (*BudgetGoal, error)
	GetRecurring(ctx context.Context) ([]*BudgetGoal, error)
	ReplaceAll(ctx context.Context, goals []*BudgetGoal) error
}
