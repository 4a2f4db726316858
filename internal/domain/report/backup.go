package report

import (
	"context"
	"encoding/json"
	"time"

	"Fluxo/internal/domain/budget"
	"Fluxo/internal/domain/creditcard"
	"Fluxo/internal/domain/debt"
	"Fluxo/internal/domain/recurring"
	"Fluxo/internal/domain/transaction"
	appErrors "Fluxo/internal/errors"
)

const backupVersion = 1

// Backup é o despejo completo dos dados, usado para exportar e restaurar.
type Backup struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`

	Transactions []*transaction.Transaction        `json:"transactions"`
	Categories   []*transaction.Category           `json:"categories"`
	Recurring    []*recurring.RecurringTransaction `json:"recurring"`
	Debts        []*debt.Debt                      `json:"debts"`
	Cards        []*creditcard.CreditCard          `json:"cards"`
	Charges      []*creditcard.CardCharge          `json:"charges"`
	BudgetGoals  []*budget.BudgetGoal              `json:"budgetGoals"`
}

// ExportBackup serializa todas as coleções em um JSON identado.
func (s *Service) ExportBackup(ctx context.Context) ([]byte, error) {
	backup := &Backup{
		Version:    backupVersion,
		ExportedAt: time.Now(),
	}

	txs, _, err := s.TransactionRepo.GetAll(ctx, nil, nil)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	backup.Transactions = txs

	categories, err := s.CategoryRepo.List(ctx)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	backup.Categories = categories

	rules, _, err := s.RecurringRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	backup.Recurring = rules

	debts, _, err := s.DebtRepo.GetAll(ctx, nil, nil)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	backup.Debts = debts

	cards, _, err := s.CardRepo.GetCards(ctx, nil)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	backup.Cards = cards

	for _, card := range cards {
		charges, _, err := s.CardRepo.GetChargesByCard(ctx, card.Id, nil)
		if err != nil {
			return nil, appErrors.NewDatabaseError(err)
		}
		backup.Charges = append(backup.Charges, charges...)
	}

	goals, _, err := s.BudgetRepo.GetByPeriod(ctx, 0, 0, nil)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	backup.BudgetGoals = goals

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return data, nil
}

// ImportBackup restaura um despejo exportado, substituindo cada coleção por
// inteiro. Não há mesclagem: o estado anterior é descartado.
func (s *Service) ImportBackup(ctx context.Context, data []byte) (*Backup, error) {
	var backup Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, appErrors.NewValidationError("backup", "arquivo inválido").WithError(err)
	}

	if backup.Version != backupVersion {
		return nil, appErrors.NewValidationError("backup", "versão não suportada")
	}

	if err := s.CategoryRepo.ReplaceAll(ctx, backup.Categories); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	if err := s.TransactionRepo.ReplaceAll(ctx, backup.Transactions); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	if err := s.RecurringRepo.ReplaceAll(ctx, backup.Recurring); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	if err := s.DebtRepo.ReplaceAll(ctx, backup.Debts); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	if err := s.CardRepo.ReplaceAllCards(ctx, backup.Cards); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	if err := s.CardRepo.ReplaceAllCharges(ctx, backup.Charges); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	if err := s.BudgetRepo.ReplaceAll(ctx, backup.BudgetGoals); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return &backup, nil
}
