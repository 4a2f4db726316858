package infrastructure

import (
	"context"
	"time"

	"Fluxo/internal/domain/creditcard"
	"Fluxo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type CreditCardRepository struct {
	DB *gorm.DB
}

var _ creditcard.Repository = (*CreditCardRepository)(nil)

type creditCardDB struct {
	Id          string    `gorm:"type:varchar(26);primaryKey;column:id"`
	Name        string    `gorm:"size:100;not null;column:name"`
	CreditLimit float64   `gorm:"not null;column:credit_limit"`
	ClosingDay  int       `gorm:"not null;column:closing_day"`
	DueDay      int       `gorm:"not null;column:due_day"`
	Brand       string    `gorm:"type:varchar(20);not null;column:brand"`
	IsActive    bool      `gorm:"not null;column:is_active"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`
	UpdatedAt   time.Time `gorm:"not null;column:updated_at"`
}

type cardChargeDB struct {
	Id                 string    `gorm:"type:varchar(26);primaryKey;column:id"`
	CardId             string    `gorm:"type:varchar(26);index;not null;column:card_id"`
	CategoryId         string    `gorm:"type:varchar(26);index;column:category_id"`
	PurchaseId         string    `gorm:"type:varchar(26);index;not null;column:purchase_id"`
	Amount             float64   `gorm:"not null;column:amount"`
	Description        string    `gorm:"size:255;column:description"`
	Date               time.Time `gorm:"not null;index;column:date"`
	Installments       int       `gorm:"not null;column:installments"`
	CurrentInstallment int       `gorm:"not null;column:current_installment"`
	CreatedAt          time.Time `gorm:"not null;column:created_at"`
	UpdatedAt          time.Time `gorm:"not null;column:updated_at"`
}

type invoicePaymentDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey;column:id"`
	CardId    string    `gorm:"type:varchar(26);uniqueIndex:idx_invoice_payments_ref;not null;column:card_id"`
	Month     int       `gorm:"uniqueIndex:idx_invoice_payments_ref;not null;column:month"`
	Year      int       `gorm:"uniqueIndex:idx_invoice_payments_ref;not null;column:year"`
	PaidAt    time.Time `gorm:"not null;column:paid_at"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

func toDomainCard(cdb *creditCardDB) (*creditcard.CreditCard, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, err
	}
	return &creditcard.CreditCard{
		Id:          id,
		Name:        cdb.Name,
		CreditLimit: cdb.CreditLimit,
		ClosingDay:  cdb.ClosingDay,
		DueDay:      cdb.DueDay,
		Brand:       creditcard.CardBrand(cdb.Brand),
		IsActive:    cdb.IsActive,
		CreatedAt:   cdb.CreatedAt,
		UpdatedAt:   cdb.UpdatedAt,
	}, nil
}

func toDBCard(c *creditcard.CreditCard) *creditCardDB {
	return &creditCardDB{
		Id:          c.Id.String(),
		Name:        c.Name,
		CreditLimit: c.CreditLimit,
		ClosingDay:  c.ClosingDay,
		DueDay:      c.DueDay,
		Brand:       string(c.Brand),
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toDomainCharge(cdb *cardChargeDB) (*creditcard.CardCharge, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, err
	}
	cardID, err := pkg.ParseULID(cdb.CardId)
	if err != nil {
		return nil, err
	}
	categoryID, err := pkg.ParseULID(cdb.CategoryId)
	if err != nil {
		return nil, err
	}
	purchaseID, err := pkg.ParseULID(cdb.PurchaseId)
	if err != nil {
		return nil, err
	}

	return &creditcard.CardCharge{
		Id:                 id,
		CardId:             cardID,
		CategoryId:         categoryID,
		PurchaseId:         purchaseID,
		Amount:             cdb.Amount,
		Description:        cdb.Description,
		Date:               cdb.Date,
		Installments:       cdb.Installments,
		CurrentInstallment: cdb.CurrentInstallment,
		CreatedAt:          cdb.CreatedAt,
		UpdatedAt:          cdb.UpdatedAt,
	}, nil
}

func toDBCharge(c *creditcard.CardCharge) *cardChargeDB {
	return &cardChargeDB{
		Id:                 c.Id.String(),
		CardId:             c.CardId.String(),
		CategoryId:         c.CategoryId.String(),
		PurchaseId:         c.PurchaseId.String(),
		Amount:             c.Amount,
		Description:        c.Description,
		Date:               c.Date,
		Installments:       c.Installments,
		CurrentInstallment: c.CurrentInstallment,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func (r *CreditCardRepository) CreateCard(ctx context.Context, card *creditcard.CreditCard) error {
	return r.DB.WithContext(ctx).Table("credit_cards").Create(toDBCard(card)).Error
}

func (r *CreditCardRepository) UpdateCard(ctx context.Context, card *creditcard.CreditCard) error {
	cdb := toDBCard(card)
	return r.DB.WithContext(ctx).Table("credit_cards").
		Where("id = ?", cdb.Id).
		Select("*").
		Updates(cdb).Error
}

func (r *CreditCardRepository) DeleteCard(ctx context.Context, cardID ulid.ULID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("card_charges").Where("card_id = ?", cardID.String()).Delete(&cardChargeDB{}).Error; err != nil {
			return err
		}
		if err := tx.Table("invoice_payments").Where("card_id = ?", cardID.String()).Delete(&invoicePaymentDB{}).Error; err != nil {
			return err
		}
		return tx.Table("credit_cards").Where("id = ?", cardID.String()).Delete(&creditCardDB{}).Error
	})
}

func (r *CreditCardRepository) GetCardByID(ctx context.Context, cardID ulid.ULID) (*creditcard.CreditCard, error) {
	var cdb creditCardDB
	err := r.DB.WithContext(ctx).Table("credit_cards").
		Where("id = ?", cardID.String()).
		First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCard(&cdb)
}

func (r *CreditCardRepository) GetCards(ctx context.Context, pagination *pkg.PaginationParams) ([]*creditcard.CreditCard, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Table("credit_cards").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.DB.WithContext(ctx).Table("credit_cards").Order("name ASC")
	if pagination != nil {
		pagination = pkg.NormalizePagination(pagination)
		query = query.Offset(pagination.Offset()).Limit(pagination.Limit)
	}

	var rows []creditCardDB
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*creditcard.CreditCard, 0, len(rows))
	for i := range rows {
		card, err := toDomainCard(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, card)
	}
	return out, total, nil
}

func (r *CreditCardRepository) CreateCharges(ctx context.Context, charges []*creditcard.CardCharge) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, charge := range charges {
			if err := tx.Table("card_charges").Create(toDBCharge(charge)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *CreditCardRepository) DeletePurchase(ctx context.Context, purchaseID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("card_charges").
		Where("purchase_id = ?", purchaseID.String()).
		Delete(&cardChargeDB{}).Error
}

func (r *CreditCardRepository) GetChargesInWindow(ctx context.Context, cardID ulid.ULID, opening, closing time.Time) ([]*creditcard.CardCharge, error) {
	var rows []cardChargeDB
	// Janela half-open: abertura exclusiva, fechamento inclusivo.
	err := r.DB.WithContext(ctx).Table("card_charges").
		Where("card_id = ? AND date > ? AND date <= ?", cardID.String(), opening, closing).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*creditcard.CardCharge, 0, len(rows))
	for i := range rows {
		charge, err := toDomainCharge(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, charge)
	}
	return out, nil
}

func (r *CreditCardRepository) GetChargesByCard(ctx context.Context, cardID ulid.ULID, pagination *pkg.PaginationParams) ([]*creditcard.CardCharge, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Table("card_charges").
		Where("card_id = ?", cardID.String()).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.DB.WithContext(ctx).Table("card_charges").
		Where("card_id = ?", cardID.String()).
		Order("date DESC")
	if pagination != nil {
		pagination = pkg.NormalizePagination(pagination)
		query = query.Offset(pagination.Offset()).Limit(pagination.Limit)
	}

	var rows []cardChargeDB
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*creditcard.CardCharge, 0, len(rows))
	for i := range rows {
		charge, err := toDomainCharge(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, charge)
	}
	return out, total, nil
}

func (r *CreditCardRepository) GetPayment(ctx context.Context, cardID ulid.ULID, month, year int) (*creditcard.InvoicePayment, error) {
	var pdb invoicePaymentDB
	err := r.DB.WithContext(ctx).Table("invoice_payments").
		Where("card_id = ? AND month = ? AND year = ?", cardID.String(), month, year).
		First(&pdb).Error
	if err != nil {
		return nil, err
	}

	id, err := pkg.ParseULID(pdb.Id)
	if err != nil {
		return nil, err
	}
	parsedCardID, err := pkg.ParseULID(pdb.CardId)
	if err != nil {
		return nil, err
	}

	return &creditcard.InvoicePayment{
		Id:        id,
		CardId:    parsedCardID,
		Month:     pdb.Month,
		Year:      pdb.Year,
		PaidAt:    pdb.PaidAt,
		CreatedAt: pdb.CreatedAt,
	}, nil
}

func (r *CreditCardRepository) SavePayment(ctx context.Context, payment *creditcard.InvoicePayment) error {
	return r.DB.WithContext(ctx).Table("invoice_payments").Create(&invoicePaymentDB{
		Id:        payment.Id.String(),
		CardId:    payment.CardId.String(),
		Month:     payment.Month,
		Year:      payment.Year,
		PaidAt:    payment.PaidAt,
		CreatedAt: payment.CreatedAt,
	}).Error
}

func (r *CreditCardRepository) DeletePayment(ctx context.Context, cardID ulid.ULID, month, year int) error {
	return r.DB.WithContext(ctx).Table("invoice_payments").
		Where("card_id = ? AND month = ? AND year = ?", cardID.String(), month, year).
		Delete(&invoicePaymentDB{}).Error
}

func (r *CreditCardRepository) ReplaceAllCards(ctx context.Context, cards []*creditcard.CreditCard) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("credit_cards").Where("1 = 1").Delete(&creditCardDB{}).Error; err != nil {
			return err
		}
		for _, card := range cards {
			if err := tx.Table("credit_cards").Create(toDBCard(card)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *CreditCardRepository) ReplaceAllCharges(ctx context.Context, charges []*creditcard.CardCharge) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("card_charges").Where("1 = 1").Delete(&cardChargeDB{}).Error; err != nil {
			return err
		}
		for _, charge := range charges {
			if err := tx.Table("card_charges").Create(toDBCharge(charge)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
