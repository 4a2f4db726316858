package transaction

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Transaction struct {
	Id          ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	Type        Types     `gorm:"type:varchar(10);not null;index:idx_transactions_type" json:"type"`
	CategoryId  ulid.ULID `gorm:"type:varchar(26);index:idx_transactions_category_id" json:"categoryId"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	Note        string    `gorm:"type:varchar(500)" json:"note,omitempty"`
	Date        time.Time `gorm:"type:date;not null;index:idx_transactions_date" json:"date"`
	// RecurringId e OccurrenceDate formam a chave de idempotência de uma
	// materialização: uma transação por (regra, data de ocorrência). O índice
	// único faz o banco rejeitar a duplicata mesmo que a consulta prévia falhe.
	RecurringId    *ulid.ULID `gorm:"type:varchar(26);uniqueIndex:idx_transactions_occurrence" json:"recurringId,omitempty"`
	OccurrenceDate *time.Time `gorm:"type:date;uniqueIndex:idx_transactions_occurrence" json:"occurrenceDate,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}

type Types string

const (
	TypeReceipt Types = "RECEIPT"
	TypeExpense Types = "EXPENSE"
)

func (t Types) IsValid() bool {
	return t == TypeReceipt || t == TypeExpense
}

type Category struct {
	Id        ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_name" json:"name"`
	Icon      string    `gorm:"type:varchar(50)" json:"icon"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Category) TableName() string {
	return "categories"
}

// MonthTotals agrega os valores realizados de um mês.
type MonthTotals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

func (m MonthTotals) Balance() float64 {
	return m.Income - m.Expense
}
