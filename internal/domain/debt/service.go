package debt

import (
	"context"
	"fmt"
	"strings"
	"time"

	appErrors "Fluxo/internal/errors"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

// CreateDebt registra uma conta a pagar. Quando Installments > 1, o total é
// dividido em parcelas de centavos exatos (a última absorve a sobra do
// arredondamento) com vencimentos espaçados de um mês, todas ligadas pelo
// ParentId da primeira.
func (s *Service) CreateDebt(ctx context.Context, req *CreateDebtRequest) ([]*Debt, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	installments := req.Installments
	if installments < 1 {
		installments = 1
	}

	amounts := splitAmount(req.Amount, installments)
	firstDue := dateutil.Truncate(req.DueDate)
	now := time.Now()

	parentID := pkg.GenerateULID()
	debts := make([]*Debt, 0, installments)
	for i := 0; i < installments; i++ {
		description := strings.TrimSpace(req.Description)
		if installments > 1 {
			description = fmt.Sprintf("%s (%d/%d)", description, i+1, installments)
		}

		entry := &Debt{
			Id:                 pkg.GenerateULID(),
			CategoryId:         req.CategoryId,
			Description:        description,
			Creditor:           strings.TrimSpace(req.Creditor),
			Amount:             amounts[i],
			DueDate:            dateutil.AddMonths(firstDue, i),
			Installments:       installments,
			CurrentInstallment: i + 1,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if installments > 1 {
			parent := parentID
			entry.ParentId = &parent
		}
		if i == 0 && installments > 1 {
			entry.Id = parentID
		}
		debts = append(debts, entry)
	}

	if err := s.Repository.Create(ctx, debts); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return debts, nil
}

func (s *Service) UpdateDebt(ctx context.Context, debtID ulid.ULID, req *UpdateDebtRequest) error {
	debt, err := s.GetDebtByID(ctx, debtID)
	if err != nil {
		return err
	}

	if debt.Paid {
		return appErrors.NewValidationError("debt", "dívida paga não pode ser alterada")
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return appErrors.NewValidationError("description", "não pode ser vazia")
		}
		debt.Description = description
	}

	if req.Creditor != nil {
		debt.Creditor = strings.TrimSpace(*req.Creditor)
	}

	if req.Amount != nil {
		if *req.Amount <= 0 {
			return appErrors.NewValidationError("amount", "deve ser maior que zero")
		}
		debt.Amount = *req.Amount
	}

	if req.DueDate != nil {
		debt.DueDate = dateutil.Truncate(*req.DueDate)
	}

	if req.CategoryId != nil {
		debt.CategoryId = *req.CategoryId
	}

	debt.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, debt); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) DeleteDebt(ctx context.Context, debtID ulid.ULID) error {
	if _, err := s.GetDebtByID(ctx, debtID); err != nil {
		return err
	}

	if err := s.Repository.Delete(ctx, debtID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// DeleteInstallmentGroup remove a dívida parcelada inteira, todas as parcelas
// ligadas ao mesmo ParentId.
func (s *Service) DeleteInstallmentGroup(ctx context.Context, parentID ulid.ULID) error {
	if err := s.Repository.DeleteByParent(ctx, parentID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) GetDebtByID(ctx context.Context, debtID ulid.ULID) (*Debt, error) {
	debt, err := s.Repository.GetByID(ctx, debtID)
	if err != nil {
		return nil, appErrors.ErrDebtNotFound.WithError(err)
	}
	return debt, nil
}

func (s *Service) ListDebts(ctx context.Context, filter *Filter, pagination *pkg.PaginationParams) ([]*Debt, int64, error) {
	return s.Repository.GetAll(ctx, filter, pagination)
}

// MarkPaid quita a dívida uma única vez.
func (s *Service) MarkPaid(ctx context.Context, debtID ulid.ULID) (*Debt, error) {
	debt, err := s.GetDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}

	if debt.Paid {
		return nil, appErrors.NewValidationError("debt", "dívida já está paga")
	}

	now := time.Now()
	debt.Paid = true
	debt.PaidAt = &now
	debt.UpdatedAt = now

	if err := s.Repository.Update(ctx, debt); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return debt, nil
}

// MarkUnpaid reverte uma quitação feita por engano.
func (s *Service) MarkUnpaid(ctx context.Context, debtID ulid.ULID) (*Debt, error) {
	debt, err := s.GetDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}

	if !debt.Paid {
		return nil, appErrors.NewValidationError("debt", "dívida não está paga")
	}

	debt.Paid = false
	debt.PaidAt = nil
	debt.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, debt); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return debt, nil
}

// Upcoming lista as dívidas não pagas com vencimento nos próximos dias,
// em ordem de vencimento.
func (s *Service) Upcoming(ctx context.Context, from time.Time, days int) ([]*Debt, error) {
	if days <= 0 {
		days = 30
	}
	start := dateutil.Truncate(from)
	debts, err := s.Repository.GetUnpaidBetween(ctx, start, dateutil.AddDays(start, days))
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return debts, nil
}

func (s *Service) validateCreateRequest(req *CreateDebtRequest) error {
	if strings.TrimSpace(req.Description) == "" {
		return appErrors.NewValidationError("description", "é obrigatória")
	}

	if req.Amount <= 0 {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	if req.DueDate.IsZero() {
		return appErrors.NewValidationError("due_date", "é obrigatória")
	}

	if req.Installments > 120 {
		return appErrors.NewValidationError("installments", "máximo de 120 parcelas")
	}

	return nil
}

// splitAmount divide o total em n parcelas de centavos exatos.
func splitAmount(total float64, n int) []float64 {
	totalDec := decimal.NewFromFloat(total).Round(2)
	per := totalDec.Div(decimal.NewFromInt(int64(n))).Round(2)

	amounts := make([]float64, n)
	sum := decimal.Zero
	for i := 0; i < n-1; i++ {
		amounts[i], _ = per.Float64()
		sum = sum.Add(per)
	}
	last, _ := totalDec.Sub(sum).Float64()
	amounts[n-1] = last
	return amounts
}

type CreateDebtRequest struct {
	CategoryId   ulid.ULID
	Description  string
	Creditor     string
	Amount       float64
	DueDate      time.Time
	Installments int
}

type UpdateDebtRequest struct {
	CategoryId  *ulid.ULID
	Description *string
	Creditor    *string
	Amount      *float64
	DueDate     *time.Time
}
