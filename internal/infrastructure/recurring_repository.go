package infrastructure

import (
	"context"
	"time"

	"Fluxo/internal/domain/recurring"
	"Fluxo/internal/domain/transaction"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type RecurringRepository struct {
	DB *gorm.DB
}

var _ recurring.Repository = (*RecurringRepository)(nil)

type recurringDB struct {
	Id            string     `gorm:"type:varchar(26);primaryKey;column:id"`
	Type          string     `gorm:"type:varchar(10);not null;column:type"`
	CategoryId    string     `gorm:"type:varchar(26);index;column:category_id"`
	Amount        float64    `gorm:"not null;column:amount"`
	Description   string     `gorm:"size:255;column:description"`
	Frequency     string     `gorm:"type:varchar(20);not null;column:frequency"`
	DayOfMonth    int        `gorm:"column:day_of_month"`
	DayOfWeek     int        `gorm:"column:day_of_week"`
	StartDate     time.Time  `gorm:"not null;column:start_date"`
	EndDate       *time.Time `gorm:"column:end_date"`
	LastProcessed *time.Time `gorm:"column:last_processed"`
	NextDue       time.Time  `gorm:"not null;index;column:next_due"`
	IsActive      bool       `gorm:"not null;column:is_active"`
	CreatedAt     time.Time  `gorm:"not null;column:created_at"`
	UpdatedAt     time.Time  `gorm:"not null;column:updated_at"`
}

func toDomainRecurring(rdb *recurringDB) (*recurring.RecurringTransaction, error) {
	id, err := pkg.ParseULID(rdb.Id)
	if err != nil {
		return nil, err
	}
	categoryID, err := pkg.ParseULID(rdb.CategoryId)
	if err != nil {
		return nil, err
	}

	return &recurring.RecurringTransaction{
		Id:            id,
		Type:          transaction.Types(rdb.Type),
		CategoryId:    categoryID,
		Amount:        rdb.Amount,
		Description:   rdb.Description,
		Frequency:     recurring.FrequencyType(rdb.Frequency),
		DayOfMonth:    rdb.DayOfMonth,
		DayOfWeek:     rdb.DayOfWeek,
		StartDate:     rdb.StartDate,
		EndDate:       rdb.EndDate,
		LastProcessed: rdb.LastProcessed,
		NextDue:       rdb.NextDue,
		IsActive:      rdb.IsActive,
		CreatedAt:     rdb.CreatedAt,
		UpdatedAt:     rdb.UpdatedAt,
	}, nil
}

func toDBRecurring(r *recurring.RecurringTransaction) *recurringDB {
	return &recurringDB{
		Id:            r.Id.String(),
		Type:          string(r.Type),
		CategoryId:    r.CategoryId.String(),
		Amount:        r.Amount,
		Description:   r.Description,
		Frequency:     string(r.Frequency),
		DayOfMonth:    r.DayOfMonth,
		DayOfWeek:     r.DayOfWeek,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		LastProcessed: r.LastProcessed,
		NextDue:       r.NextDue,
		IsActive:      r.IsActive,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *RecurringRepository) Create(ctx context.Context, rule *recurring.RecurringTransaction) error {
	return r.DB.WithContext(ctx).Table("recurring_transactions").Create(toDBRecurring(rule)).Error
}

func (r *RecurringRepository) Update(ctx context.Context, rule *recurring.RecurringTransaction) error {
	rdb := toDBRecurring(rule)
	// Select força a persistência de campos zerados como is_active = false.
	return r.DB.WithContext(ctx).Table("recurring_transactions").
		Where("id = ?", rdb.Id).
		Select("*").
		Updates(rdb).Error
}

func (r *RecurringRepository) Delete(ctx context.Context, recurringID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("recurring_transactions").
		Where("id = ?", recurringID.String()).
		Delete(&recurringDB{}).Error
}

func (r *RecurringRepository) GetByID(ctx context.Context, recurringID ulid.ULID) (*recurring.RecurringTransaction, error) {
	var rdb recurringDB
	err := r.DB.WithContext(ctx).Table("recurring_transactions").
		Where("id = ?", recurringID.String()).
		First(&rdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainRecurring(&rdb)
}

func (r *RecurringRepository) GetAll(ctx context.Context, pagination *pkg.PaginationParams) ([]*recurring.RecurringTransaction, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Table("recurring_transactions").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.DB.WithContext(ctx).Table("recurring_transactions").Order("next_due ASC")
	if pagination != nil {
		pagination = pkg.NormalizePagination(pagination)
		query = query.Offset(pagination.Offset()).Limit(pagination.Limit)
	}

	var rows []recurringDB
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*recurring.RecurringTransaction, 0, len(rows))
	for i := range rows {
		rule, err := toDomainRecurring(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, rule)
	}
	return out, total, nil
}

func (r *RecurringRepository) GetActive(ctx context.Context) ([]*recurring.RecurringTransaction, error) {
	var rows []recurringDB
	err := r.DB.WithContext(ctx).Table("recurring_transactions").
		Where("is_active = ?", true).
		Order("next_due ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*recurring.RecurringTransaction, 0, len(rows))
	for i := range rows {
		rule, err := toDomainRecurring(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, rule)
	}
	return out, nil
}

func (r *RecurringRepository) GetDue(ctx context.Context, date time.Time) ([]*recurring.RecurringTransaction, error) {
	var rows []recurringDB
	err := r.DB.WithContext(ctx).Table("recurring_transactions").
		Where("is_active = ? AND next_due <= ?", true, dateutil.Truncate(date)).
		Order("next_due ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*recurring.RecurringTransaction, 0, len(rows))
	for i := range rows {
		rule, err := toDomainRecurring(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, rule)
	}
	return out, nil
}

func (r *RecurringRepository) UpdateLastProcessed(ctx context.Context, recurringID ulid.ULID, processedDate, nextDue time.Time) error {
	return r.DB.WithContext(ctx).Table("recurring_transactions").
		Where("id = ?", recurringID.String()).
		Updates(map[string]interface{}{
			"last_processed": processedDate,
			"next_due":       nextDue,
			"updated_at":     time.Now(),
		}).Error
}

func (r *RecurringRepository) ReplaceAll(ctx context.Context, rules []*recurring.RecurringTransaction) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("recurring_transactions").Where("1 = 1").Delete(&recurringDB{}).Error; err != nil {
			return err
		}
		for _, rule := range rules {
			if err := tx.Table("recurring_transactions").Create(toDBRecurring(rule)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
