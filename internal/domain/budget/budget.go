package budget

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// BudgetGoal é um teto de gasto por categoria em um mês de referência.
// O valor gasto nunca é armazenado: é derivado das transações de despesa da
// categoria no período, a cada leitura.
type BudgetGoal struct {
	Id           ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	CategoryId   ulid.ULID `gorm:"type:varchar(26);uniqueIndex:idx_budget_goals_ref;not null" json:"categoryId"`
	CategoryName string    `gorm:"-" json:"categoryName,omitempty"`
	Amount       float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Month        int       `gorm:"uniqueIndex:idx_budget_goals_ref;not null;check:month >= 1 AND month <= 12" json:"month"`
	Year         int       `gorm:"uniqueIndex:idx_budget_goals_ref;not null" json:"year"`
	AlertAt      float64   `gorm:"type:decimal(5,2);default:80" json:"alertAt"`
	IsRecurring  bool      `gorm:"not null;default:false" json:"isRecurring"`
	CreatedAt    time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (BudgetGoal) TableName() string {
	return "budget_goals"
}

const (
	StatusOk       = "ok"
	StatusWarning  = "warning"
	StatusExceeded = "exceeded"
)

// GoalStatus é a visão derivada de um teto: o gasto realizado da categoria no
// mês contra o limite definido.
type GoalStatus struct {
	Goal       *BudgetGoal `json:"goal"`
	Spent      float64     `json:"spent"`
	Remaining  float64     `json:"remaining"`
	Percentage float64     `json:"percentage"`
	Status     string      `json:"status"`
}

// Evaluate classifica o gasto contra o teto: warning a partir do limiar de
// alerta, exceeded a partir de 100%.
func (b *BudgetGoal) Evaluate(spent float64) *GoalStatus {
	percentage := 0.0
	if b.Amount > 0 {
		percentage = (spent / b.Amount) * 100
	}

	status := StatusOk
	if percentage >= 100 {
		status = StatusExceeded
	} else if percentage >= b.AlertAt {
		status = StatusWarning
	}

	remaining := b.Amount - spent
	if remaining < 0 {
		remaining = 0
	}

	return &GoalStatus{
		Goal:       b,
		Spent:      spent,
		Remaining:  remaining,
		Percentage: percentage,
		Status:     status,
	}
}

type Summary struct {
	TotalBudget    float64 `json:"totalBudget"`
	TotalSpent     float64 `json:"totalSpent"`
	TotalRemaining float64 `json:"totalRemaining"`
	Percentage     float64 `json:"percentage"`
	ExceededCount  int     `json:"exceededCount"`
	WarningCount   int     `json:"warningCount"`
}
