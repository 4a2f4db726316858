package creditcard

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type CreditCard struct {
	Id          ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	CreditLimit float64   `gorm:"type:decimal(15,2);not null" json:"creditLimit"`
	ClosingDay  int       `gorm:"not null;check:closing_day >= 1 AND closing_day <= 31" json:"closingDay"`
	DueDay      int       `gorm:"not null;check:due_day >= 1 AND due_day <= 31" json:"dueDay"`
	Brand       CardBrand `gorm:"type:varchar(20);not null" json:"brand"`
	IsActive    bool      `gorm:"not null;default:true;index:idx_credit_cards_active" json:"isActive"`
	CreatedAt   time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (CreditCard) TableName() string {
	return "credit_cards"
}

type CardBrand string

const (
	BrandVisa       CardBrand = "VISA"
	BrandMastercard CardBrand = "MASTERCARD"
	BrandElo        CardBrand = "ELO"
	BrandAmex       CardBrand = "AMEX"
	BrandHipercard  CardBrand = "HIPERCARD"
	BrandOther      CardBrand = "OTHER"
)

func (b CardBrand) IsValid() bool {
	switch b {
	case BrandVisa, BrandMastercard, BrandElo, BrandAmex, BrandHipercard, BrandOther:
		return true
	}
	return false
}

// CardCharge é uma parcela lançada no cartão. Compras parceladas geram uma
// CardCharge por parcela, compartilhando PurchaseId, com datas deslocadas em
// meses inteiros — cada parcela cai na janela da sua própria fatura.
type CardCharge struct {
	Id                 ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	CardId             ulid.ULID `gorm:"type:varchar(26);index:idx_card_charges_card_id;not null" json:"cardId"`
	CategoryId         ulid.ULID `gorm:"type:varchar(26);index:idx_card_charges_category_id" json:"categoryId"`
	PurchaseId         ulid.ULID `gorm:"type:varchar(26);index:idx_card_charges_purchase_id;not null" json:"purchaseId"`
	Amount             float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description        string    `gorm:"type:varchar(255)" json:"description"`
	Date               time.Time `gorm:"type:date;not null;index:idx_card_charges_date" json:"date"`
	Installments       int       `gorm:"not null;default:1;check:installments >= 1" json:"installments"`
	CurrentInstallment int       `gorm:"not null;default:1;check:current_installment >= 1" json:"currentInstallment"`
	CreatedAt          time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (CardCharge) TableName() string {
	return "card_charges"
}

// InvoicePayment persiste a marcação de fatura paga, chaveada por
// (cartão, mês, ano). A fatura em si é uma visão derivada.
type InvoicePayment struct {
	Id        ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	CardId    ulid.ULID `gorm:"type:varchar(26);uniqueIndex:idx_invoice_payments_ref;not null" json:"cardId"`
	Month     int       `gorm:"uniqueIndex:idx_invoice_payments_ref;not null;check:month >= 1 AND month <= 12" json:"month"`
	Year      int       `gorm:"uniqueIndex:idx_invoice_payments_ref;not null" json:"year"`
	PaidAt    time.Time `gorm:"not null" json:"paidAt"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
}

func (InvoicePayment) TableName() string {
	return "invoice_payments"
}
