package infrastructure

import (
	"context"
	"time"

	"Fluxo/internal/domain/transaction"
	"Fluxo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type TransactionCategoryRepository struct {
	DB *gorm.DB
}

var _ transaction.CategoryRepository = (*TransactionCategoryRepository)(nil)

type categoryDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey;column:id"`
	Name      string    `gorm:"size:100;not null;column:name"`
	Icon      string    `gorm:"size:50;column:icon"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

func toDomainCategory(cdb *categoryDB) (*transaction.Category, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, err
	}
	return &transaction.Category{
		Id:        id,
		Name:      cdb.Name,
		Icon:      cdb.Icon,
		CreatedAt: cdb.CreatedAt,
		UpdatedAt: cdb.UpdatedAt,
	}, nil
}

func toDBCategory(c *transaction.Category) *categoryDB {
	return &categoryDB{
		Id:        c.Id.String(),
		Name:      c.Name,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *TransactionCategoryRepository) Create(ctx context.Context, category *transaction.Category) error {
	return r.DB.WithContext(ctx).Table("categories").Create(toDBCategory(category)).Error
}

func (r *TransactionCategoryRepository) Update(ctx context.Context, category *transaction.Category) error {
	cdb := toDBCategory(category)
	return r.DB.WithContext(ctx).Table("categories").Where("id = ?", cdb.Id).Updates(cdb).Error
}

func (r *TransactionCategoryRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("categories").Where("id = ?", id.String()).Delete(&categoryDB{}).Error
}

func (r *TransactionCategoryRepository) GetByID(ctx context.Context, id ulid.ULID) (*transaction.Category, error) {
	var cdb categoryDB
	err := r.DB.WithContext(ctx).Table("categories").Where("id = ?", id.String()).First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCategory(&cdb)
}

func (r *TransactionCategoryRepository) GetByName(ctx context.Context, name string) (*transaction.Category, error) {
	var cdb categoryDB
	err := r.DB.WithContext(ctx).Table("categories").Where("name = ?", name).First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCategory(&cdb)
}

func (r *TransactionCategoryRepository) List(ctx context.Context) ([]*transaction.Category, error) {
	var rows []categoryDB
	if err := r.DB.WithContext(ctx).Table("categories").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*transaction.Category, 0, len(rows))
	for i := range rows {
		category, err := toDomainCategory(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, category)
	}
	return out, nil
}

func (r *TransactionCategoryRepository) CountTransactions(ctx context.Context, categoryID ulid.ULID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Table("transactions").
		Where("category_id = ?", categoryID.String()).
		Count(&count).Error
	return count, err
}

func (r *TransactionCategoryRepository) ReplaceAll(ctx context.Context, categories []*transaction.Category) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("categories").Where("1 = 1").Delete(&categoryDB{}).Error; err != nil {
			return err
		}
		for _, category := range categories {
			if err := tx.Table("categories").Create(toDBCategory(category)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
