package debt

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Debt é uma conta a pagar com vencimento. Dívidas parceladas geram um
// registro por parcela, todos apontando para o mesmo ParentId, com
// vencimentos espaçados de um mês.
type Debt struct {
	Id                 ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	ParentId           *ulid.ULID `gorm:"type:varchar(26);index:idx_debts_parent_id" json:"parentId,omitempty"`
	CategoryId         ulid.ULID  `gorm:"type:varchar(26);index:idx_debts_category_id" json:"categoryId"`
	Description        string     `gorm:"type:varchar(255);not null" json:"description"`
	Creditor           string     `gorm:"type:varchar(100)" json:"creditor"`
	Amount             float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	DueDate            time.Time  `gorm:"type:date;not null;index:idx_debts_due_date" json:"dueDate"`
	Installments       int        `gorm:"not null;default:1;check:installments >= 1" json:"installments"`
	CurrentInstallment int        `gorm:"not null;default:1;check:current_installment >= 1" json:"currentInstallment"`
	Paid               bool       `gorm:"not null;default:false;index:idx_debts_paid" json:"paid"`
	PaidAt             *time.Time `json:"paidAt,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Debt) TableName() string {
	return "debts"
}

// Overdue informa se a dívida está vencida e não paga na data de referência.
func (d *Debt) Overdue(onDate time.Time) bool {
	return !d.Paid && d.DueDate.Before(onDate)
}
