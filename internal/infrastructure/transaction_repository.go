package infrastructure

import (
	"context"
	"errors"
	"time"

	"Fluxo/internal/domain/transaction"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	DB *gorm.DB
}

var _ transaction.Repository = (*TransactionRepository)(nil)

type transactionDB struct {
	Id             string     `gorm:"type:varchar(26);primaryKey;column:id"`
	Type           string     `gorm:"type:varchar(15);not null;column:type"`
	CategoryId     string     `gorm:"type:varchar(26);index;column:category_id"`
	Amount         float64    `gorm:"not null;column:amount"`
	Description    string     `gorm:"size:255;column:description"`
	Note           string     `gorm:"size:500;column:note"`
	Date           time.Time  `gorm:"not null;column:date"`
	RecurringId    *string    `gorm:"type:varchar(26);index;column:recurring_id"`
	OccurrenceDate *time.Time `gorm:"column:occurrence_date"`
	CreatedAt      time.Time  `gorm:"not null;column:created_at"`
	UpdatedAt      time.Time  `gorm:"not null;column:updated_at"`
}

func toDomainTransaction(tdb *transactionDB) (*transaction.Transaction, error) {
	id, err := pkg.ParseULID(tdb.Id)
	if err != nil {
		return nil, err
	}
	categoryID, err := pkg.ParseULID(tdb.CategoryId)
	if err != nil {
		return nil, err
	}

	var recurringID *ulid.ULID
	if tdb.RecurringId != nil && *tdb.RecurringId != "" {
		parsed, err := pkg.ParseULID(*tdb.RecurringId)
		if err != nil {
			return nil, err
		}
		recurringID = &parsed
	}

	return &transaction.Transaction{
		Id:             id,
		Type:           transaction.Types(tdb.Type),
		CategoryId:     categoryID,
		Amount:         tdb.Amount,
		Description:    tdb.Description,
		Note:           tdb.Note,
		Date:           tdb.Date,
		RecurringId:    recurringID,
		OccurrenceDate: tdb.OccurrenceDate,
		CreatedAt:      tdb.CreatedAt,
		UpdatedAt:      tdb.UpdatedAt,
	}, nil
}

func toDBTransaction(t *transaction.Transaction) *transactionDB {
	var recurringID *string
	if t.RecurringId != nil {
		s := t.RecurringId.String()
		recurringID = &s
	}
	return &transactionDB{
		Id:             t.Id.String(),
		Type:           string(t.Type),
		CategoryId:     t.CategoryId.String(),
		Amount:         t.Amount,
		Description:    t.Description,
		Note:           t.Note,
		Date:           t.Date,
		RecurringId:    recurringID,
		OccurrenceDate: t.OccurrenceDate,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	return r.DB.WithContext(ctx).Table("transactions").Create(toDBTransaction(t)).Error
}

func (r *TransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	tdb := toDBTransaction(t)
	return r.DB.WithContext(ctx).Table("transactions").Where("id = ?", tdb.Id).Updates(tdb).Error
}

func (r *TransactionRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("transactions").Where("id = ?", id.String()).Delete(&transactionDB{}).Error
}

func (r *TransactionRepository) GetByID(ctx context.Context, id ulid.ULID) (*transaction.Transaction, error) {
	var tdb transactionDB
	err := r.DB.WithContext(ctx).Table("transactions").
		Where("id = ?", id.String()).
		First(&tdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(&tdb)
}

func (r *TransactionRepository) GetAll(ctx context.Context, filter *transaction.Filter, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	countQuery := r.DB.WithContext(ctx).Table("transactions")
	dataQuery := r.DB.WithContext(ctx).Table("transactions")

	if filter != nil {
		if filter.Type != nil && *filter.Type != "" {
			countQuery = countQuery.Where("type = ?", string(*filter.Type))
			dataQuery = dataQuery.Where("type = ?", string(*filter.Type))
		}

		if filter.CategoryId != nil {
			countQuery = countQuery.Where("category_id = ?", filter.CategoryId.String())
			dataQuery = dataQuery.Where("category_id = ?", filter.CategoryId.String())
		}

		if filter.Month >= 1 && filter.Month <= 12 && filter.Year > 0 {
			start := dateutil.Date(filter.Year, time.Month(filter.Month), 1)
			end := dateutil.EndOfMonth(start)
			countQuery = countQuery.Where("date >= ? AND date <= ?", start, end)
			dataQuery = dataQuery.Where("date >= ? AND date <= ?", start, end)
		}
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dataQuery = dataQuery.Order("date DESC, created_at DESC")
	if pagination != nil {
		pagination = pkg.NormalizePagination(pagination)
		dataQuery = dataQuery.Offset(pagination.Offset()).Limit(pagination.Limit)
	}

	var rows []transactionDB
	if err := dataQuery.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*transaction.Transaction, 0, len(rows))
	for i := range rows {
		item, err := toDomainTransaction(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, item)
	}

	return out, total, nil
}

func (r *TransactionRepository) GetByOccurrence(ctx context.Context, recurringID ulid.ULID, occurrenceDate time.Time) (*transaction.Transaction, error) {
	var tdb transactionDB
	err := r.DB.WithContext(ctx).Table("transactions").
		Where("recurring_id = ? AND occurrence_date = ?", recurringID.String(), dateutil.Truncate(occurrenceDate)).
		First(&tdb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(&tdb)
}

func (r *TransactionRepository) GetMonthTotals(ctx context.Context, month, year int) (*transaction.MonthTotals, error) {
	start := dateutil.Date(year, time.Month(month), 1)
	return r.GetTotalsBetween(ctx, start, dateutil.EndOfMonth(start))
}

func (r *TransactionRepository) GetTotalsBetween(ctx context.Context, from, to time.Time) (*transaction.MonthTotals, error) {
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
		Where("date >= ? AND date <= ?", from, to).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &transaction.MonthTotals{Income: row.Income, Expense: row.Expense}, nil
}

func (r *TransactionRepository) SumExpensesByCategory(ctx context.Context, categoryID ulid.ULID, month, year int) (float64, error) {
	start := dateutil.Date(year, time.Month(month), 1)
	end := dateutil.EndOfMonth(start)

	var total float64
	err := r.DB.WithContext(ctx).Table("transactions").
		Select("COALESCE(SUM(amount), 0)").
		Where("category_id = ? AND type = ? AND date >= ? AND date <= ?",
			categoryID.String(), string(transaction.TypeExpense), start, end).
		Scan(&total).Error
	return total, err
}

func (r *TransactionRepository) ReplaceAll(ctx context.Context, txs []*transaction.Transaction) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("transactions").Where("1 = 1").Delete(&transactionDB{}).Error; err != nil {
			return err
		}
		for _, t := range txs {
			if err := tx.Table("transactions").Create(toDBTransaction(t)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
