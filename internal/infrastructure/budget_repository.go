package infrastructure

import (
	"context"
	"time"

	"Fluxo/internal/domain/budget"
	"Fluxo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type BudgetRepository struct {
	DB *gorm.DB
}

var _ budget.Repository = (*BudgetRepository)(nil)

type budgetGoalDB struct {
	Id          string    `gorm:"type:varchar(26);primaryKey;column:id"`
	CategoryId  string    `gorm:"type:varchar(26);index;not null;column:category_id"`
	Amount      float64   `gorm:"not null;column:amount"`
	Month       int       `gorm:"not null;column:month"`
	Year        int       `gorm:"not null;column:year"`
	AlertAt     float64   `gorm:"column:alert_at"`
	IsRecurring bool      `gorm:"not null;column:is_recurring"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`
	UpdatedAt   time.Time `gorm:"not null;column:updated_at"`
}

func toDomainGoal(gdb *budgetGoalDB) (*budget.BudgetGoal, error) {
	id, err := pkg.ParseULID(gdb.Id)
	if err != nil {
		return nil, err
	}
	categoryID, err := pkg.ParseULID(gdb.CategoryId)
	if err != nil {
		return nil, err
	}

	return &budget.BudgetGoal{
		Id:          id,
		CategoryId:  categoryID,
		Amount:      gdb.Amount,
		Month:       gdb.Month,
		Year:        gdb.Year,
		AlertAt:     gdb.AlertAt,
		IsRecurring: gdb.IsRecurring,
		CreatedAt:   gdb.CreatedAt,
		UpdatedAt:   gdb.UpdatedAt,
	}, nil
}

func toDBGoal(g *budget.BudgetGoal) *budgetGoalDB {
	return &budgetGoalDB{
		Id:          g.Id.String(),
		CategoryId:  g.CategoryId.String(),
		Amount:      g.Amount,
		Month:       g.Month,
		Year:        g.Year,
		AlertAt:     g.AlertAt,
		IsRecurring: g.IsRecurring,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func (r *BudgetRepository) Create(ctx context.Context, goal *budget.BudgetGoal) error {
	return r.DB.WithContext(ctx).Table("budget_goals").Create(toDBGoal(goal)).Error
}

func (r *BudgetRepository) Update(ctx context.Context, goal *budget.BudgetGoal) error {
	gdb := toDBGoal(goal)
	return r.DB.WithContext(ctx).Table("budget_goals").
		Where("id = ?", gdb.Id).
		Select("*").
		Updates(gdb).Error
}

func (r *BudgetRepository) Delete(ctx context.Context, goalID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("budget_goals").Where("id = ?", goalID.String()).Delete(&budgetGoalDB{}).Error
}

func (r *BudgetRepository) GetByID(ctx context.Context, goalID ulid.ULID) (*budget.BudgetGoal, error) {
	var gdb budgetGoalDB
	err := r.DB.WithContext(ctx).Table("budget_goals").Where("id = ?", goalID.String()).First(&gdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainGoal(&gdb)
}

func (r *BudgetRepository) GetByPeriod(ctx context.Context, month, year int, pagination *pkg.PaginationParams) ([]*budget.BudgetGoal, int64, error) {
	countQuery := r.DB.WithContext(ctx).Table("budget_goals")
	dataQuery := r.DB.WithContext(ctx).Table("budget_goals")

	if month >= 1 && month <= 12 && year > 0 {
		countQuery = countQuery.Where("month = ? AND year = ?", month, year)
		dataQuery = dataQuery.Where("month = ? AND year = ?", month, year)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dataQuery = dataQuery.Order("year DESC, month DESC, created_at ASC")
	if pagination != nil {
		pagination = pkg.NormalizePagination(pagination)
		dataQuery = dataQuery.Offset(pagination.Offset()).Limit(pagination.Limit)
	}

	var rows []budgetGoalDB
	if err := dataQuery.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*budget.BudgetGoal, 0, len(rows))
	for i := range rows {
		goal, err := toDomainGoal(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, goal)
	}
	return out, total, nil
}

func (r *BudgetRepository) GetByCategory(ctx context.Context, categoryID ulid.ULID, month, year int) (*budget.BudgetGoal, error) {
	var gdb budgetGoalDB
	err := r.DB.WithContext(ctx).Table("budget_goals").
		Where("category_id = ? AND month = ? AND year = ?", categoryID.String(), month, year).
		First(&gdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainGoal(&gdb)
}

func (r *BudgetRepository) GetRecurring(ctx context.Context) ([]*budget.BudgetGoal, error) {
	// Uma meta recorrente por categoria, a do período mais recente.
	var rows []budgetGoalDB
	err := r.DB.WithContext(ctx).Table("budget_goals").
		Where("is_recurring = ?", true).
		Order("year DESC, month DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	out := make([]*budget.BudgetGoal, 0, len(rows))
	for i := range rows {
		if seen[rows[i].CategoryId] {
			continue
		}
		goal, err := toDomainGoal(&rows[i])
		if err != nil {
			continue
		}
		seen[rows[i].CategoryId] = true
		out = append(out, goal)
	}
	return out, nil
}

func (r *BudgetRepository) ReplaceAll(ctx context.Context, goals []*budget.BudgetGoal) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("budget_goals").Where("1 = 1").Delete(&budgetGoalDB{}).Error; err != nil {
			return err
		}
		for _, goal := range goals {
			if err := tx.Table("budget_goals").Create(toDBGoal(goal)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
