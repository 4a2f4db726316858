package infrastructure

import (
	"context"
	"time"

	"Fluxo/internal/domain/debt"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type DebtRepository struct {
	DB *gorm.DB
}

var _ debt.Repository = (*DebtRepository)(nil)

type debtDB struct {
	Id                 string     `gorm:"type:varchar(26);primaryKey;column:id"`
	ParentId           *string    `gorm:"type:varchar(26);index;column:parent_id"`
	CategoryId         string     `gorm:"type:varchar(26);index;column:category_id"`
	Description        string     `gorm:"size:255;not null;column:description"`
	Creditor           string     `gorm:"size:100;column:creditor"`
	Amount             float64    `gorm:"not null;column:amount"`
	DueDate            time.Time  `gorm:"not null;index;column:due_date"`
	Installments       int        `gorm:"not null;column:installments"`
	CurrentInstallment int        `gorm:"not null;column:current_installment"`
	Paid               bool       `gorm:"not null;index;column:paid"`
	PaidAt             *time.Time `gorm:"column:paid_at"`
	CreatedAt          time.Time  `gorm:"not null;column:created_at"`
	UpdatedAt          time.Time  `gorm:"not null;column:updated_at"`
}

func toDomainDebt(ddb *debtDB) (*debt.Debt, error) {
	id, err := pkg.ParseULID(ddb.Id)
	if err != nil {
		return nil, err
	}
	categoryID, err := pkg.ParseULID(ddb.CategoryId)
	if err != nil {
		return nil, err
	}

	var parentID *ulid.ULID
	if ddb.ParentId != nil && *ddb.ParentId != "" {
		parsed, err := pkg.ParseULID(*ddb.ParentId)
		if err != nil {
			return nil, err
		}
		parentID = &parsed
	}

	return &debt.Debt{
		Id:                 id,
		ParentId:           parentID,
		CategoryId:         categoryID,
		Description:        ddb.Description,
		Creditor:           ddb.Creditor,
		Amount:             ddb.Amount,
		DueDate:            ddb.DueDate,
		Installments:       ddb.Installments,
		CurrentInstallment: ddb.CurrentInstallment,
		Paid:               ddb.Paid,
		PaidAt:             ddb.PaidAt,
		CreatedAt:          ddb.CreatedAt,
		UpdatedAt:          ddb.UpdatedAt,
	}, nil
}

func toDBDebt(d *debt.Debt) *debtDB {
	var parentID *string
	if d.ParentId != nil {
		s := d.ParentId.String()
		parentID = &s
	}
	return &debtDB{
		Id:                 d.Id.String(),
		ParentId:           parentID,
		CategoryId:         d.CategoryId.String(),
		Description:        d.Description,
		Creditor:           d.Creditor,
		Amount:             d.Amount,
		DueDate:            d.DueDate,
		Installments:       d.Installments,
		CurrentInstallment: d.CurrentInstallment,
		Paid:               d.Paid,
		PaidAt:             d.PaidAt,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

func (r *DebtRepository) Create(ctx context.Context, debts []*debt.Debt) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range debts {
			if err := tx.Table("debts").Create(toDBDebt(d)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *DebtRepository) Update(ctx context.Context, d *debt.Debt) error {
	ddb := toDBDebt(d)
	return r.DB.WithContext(ctx).Table("debts").
		Where("id = ?", ddb.Id).
		Select("*").
		Updates(ddb).Error
}

func (r *DebtRepository) Delete(ctx context.Context, debtID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("debts").Where("id = ?", debtID.String()).Delete(&debtDB{}).Error
}

func (r *DebtRepository) DeleteByParent(ctx context.Context, parentID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("debts").
		Where("parent_id = ? OR id = ?", parentID.String(), parentID.String()).
		Delete(&debtDB{}).Error
}

func (r *DebtRepository) GetByID(ctx context.Context, debtID ulid.ULID) (*debt.Debt, error) {
	var ddb debtDB
	err := r.DB.WithContext(ctx).Table("debts").Where("id = ?", debtID.String()).First(&ddb).Error
	if err != nil {
		return nil, err
	}
	return toDomainDebt(&ddb)
}

func (r *DebtRepository) GetAll(ctx context.Context, filter *debt.Filter, pagination *pkg.PaginationParams) ([]*debt.Debt, int64, error) {
	countQuery := r.DB.WithContext(ctx).Table("debts")
	dataQuery := r.DB.WithContext(ctx).Table("debts")

	if filter != nil {
		if filter.Paid != nil {
			countQuery = countQuery.Where("paid = ?", *filter.Paid)
			dataQuery = dataQuery.Where("paid = ?", *filter.Paid)
		}
		if filter.CategoryId != nil {
			countQuery = countQuery.Where("category_id = ?", filter.CategoryId.String())
			dataQuery = dataQuery.Where("category_id = ?", filter.CategoryId.String())
		}
		if filter.Month >= 1 && filter.Month <= 12 && filter.Year > 0 {
			start := dateutil.Date(filter.Year, time.Month(filter.Month), 1)
			end := dateutil.EndOfMonth(start)
			countQuery = countQuery.Where("due_date >= ? AND due_date <= ?", start, end)
			dataQuery = dataQuery.Where("due_date >= ? AND due_date <= ?", start, end)
		}
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dataQuery = dataQuery.Order("due_date ASC")
	if pagination != nil {
		pagination = pkg.NormalizePagination(pagination)
		dataQuery = dataQuery.Offset(pagination.Offset()).Limit(pagination.Limit)
	}

	var rows []debtDB
	if err := dataQuery.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*debt.Debt, 0, len(rows))
	for i := range rows {
		d, err := toDomainDebt(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out, total, nil
}

func (r *DebtRepository) GetUnpaidBetween(ctx context.Context, from, to time.Time) ([]*debt.Debt, error) {
	var rows []debtDB
	err := r.DB.WithContext(ctx).Table("debts").
		Where("paid = ? AND due_date >= ? AND due_date <= ?", false, from, to).
		Order("due_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*debt.Debt, 0, len(rows))
	for i := range rows {
		d, err := toDomainDebt(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *DebtRepository) SumUnpaidBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.DB.WithContext(ctx).Table("debts").
		Select("COALESCE(SUM(amount), 0)").
		Where("paid = ? AND due_date >= ? AND due_date <= ?", false, from, to).
		Scan(&total).Error
	return total, err
}

func (r *DebtRepository) ReplaceAll(ctx context.Context, debts []*debt.Debt) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("debts").Where("1 = 1").Delete(&debtDB{}).Error; err != nil {
			return err
		}
		for _, d := range debts {
			if err := tx.Table("debts").Create(toDBDebt(d)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
