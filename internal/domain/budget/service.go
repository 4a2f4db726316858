package budget

import (
	"context"
	"time"

	"Fluxo/internal/domain/transaction"
	appErrors "Fluxo/internal/errors"
	"Fluxo/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository         Repository
	TransactionRepo    transaction.Repository
	CategoryRepository transaction.CategoryRepository
}

func NewService(repo Repository, transactionRepo transaction.Repository, categoryRepo transaction.CategoryRepository) *Service {
	return &Service{
		Repository:         repo,
		TransactionRepo:    transactionRepo,
		CategoryRepository: categoryRepo,
	}
}

func (s *Service) CreateGoal(ctx context.Context, req *CreateGoalRequest) (*BudgetGoal, error) {
	if err := s.validateCreateRequest(ctx, req); err != nil {
		return nil, err
	}

	existing, _ := s.Repository.GetByCategory(ctx, req.CategoryId, req.Month, req.Year)
	if existing != nil {
		return nil, appErrors.NewConflictError("meta para esta categoria neste período")
	}

	now := time.Now()
	goal := &BudgetGoal{
		Id:          pkg.GenerateULID(),
		CategoryId:  req.CategoryId,
		Amount:      req.Amount,
		Month:       req.Month,
		Year:        req.Year,
		AlertAt:     req.AlertAt,
		IsRecurring: req.IsRecurring,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if goal.AlertAt <= 0 {
		goal.AlertAt = 80
	}

	if err := s.Repository.Create(ctx, goal); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return goal, nil
}

func (s *Service) UpdateGoal(ctx context.Context, goalID ulid.ULID, req *UpdateGoalRequest) error {
	goal, err := s.GetGoalByID(ctx, goalID)
	if err != nil {
		return err
	}

	if req.Amount != nil {
		if *req.Amount <= 0 {
			return appErrors.NewValidationError("amount", "deve ser maior que zero")
		}
		goal.Amount = *req.Amount
	}

	if req.AlertAt != nil {
		if *req.AlertAt < 0 || *req.AlertAt > 100 {
			return appErrors.NewValidationError("alert_at", "deve estar entre 0 e 100")
		}
		goal.AlertAt = *req.AlertAt
	}

	if req.IsRecurring != nil {
		goal.IsRecurring = *req.IsRecurring
	}

	goal.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, goal); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) DeleteGoal(ctx context.Context, goalID ulid.ULID) error {
	if _, err := s.GetGoalByID(ctx, goalID); err != nil {
		return err
	}

	if err := s.Repository.Delete(ctx, goalID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) GetGoalByID(ctx context.Context, goalID ulid.ULID) (*BudgetGoal, error) {
	goal, err := s.Repository.GetByID(ctx, goalID)
	if err != nil {
		return nil, appErrors.ErrBudgetNotFound.WithError(err)
	}
	return goal, nil
}

// GetGoalStatus avalia um teto contra o gasto realizado da categoria no mês,
// derivado das transações de despesa.
func (s *Service) GetGoalStatus(ctx context.Context, goalID ulid.ULID) (*GoalStatus, error) {
	goal, err := s.GetGoalByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	spent, err := s.TransactionRepo.SumExpensesByCategory(ctx, goal.CategoryId, goal.Month, goal.Year)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return goal.Evaluate(spent), nil
}

// ListGoalStatuses avalia todos os tetos do período de referência.
func (s *Service) ListGoalStatuses(ctx context.Context, month, year int, pagination *pkg.PaginationParams) ([]*GoalStatus, int64, error) {
	month, year = normalizePeriod(month, year)

	goals, total, err := s.Repository.GetByPeriod(ctx, month, year, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}

	statuses := make([]*GoalStatus, 0, len(goals))
	for _, goal := range goals {
		spent, err := s.TransactionRepo.SumExpensesByCategory(ctx, goal.CategoryId, month, year)
		if err != nil {
			return nil, 0, appErrors.NewDatabaseError(err)
		}

		if category, err := s.CategoryRepository.GetByID(ctx, goal.CategoryId); err == nil {
			goal.CategoryName = category.Name
		}

		statuses = append(statuses, goal.Evaluate(spent))
	}

	return statuses, total, nil
}

func (s *Service) GetSummary(ctx context.Context, month, year int) (*Summary, error) {
	month, year = normalizePeriod(month, year)

	statuses, _, err := s.ListGoalStatuses(ctx, month, year, nil)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, status := range statuses {
		summary.TotalBudget += status.Goal.Amount
		summary.TotalSpent += status.Spent
		switch status.Status {
		case StatusExceeded:
			summary.ExceededCount++
		case StatusWarning:
			summary.WarningCount++
		}
	}

	summary.TotalRemaining = summary.TotalBudget - summary.TotalSpent
	if summary.TotalRemaining < 0 {
		summary.TotalRemaining = 0
	}
	if summary.TotalBudget > 0 {
		summary.Percentage = (summary.TotalSpent / summary.TotalBudget) * 100
	}

	return summary, nil
}

// RolloverRecurring replica no mês corrente os tetos marcados como
// recorrentes que ainda não existem no período.
func (s *Service) RolloverRecurring(ctx context.Context, today time.Time) (int, error) {
	recurring, err := s.Repository.GetRecurring(ctx)
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}

	month := int(today.Month())
	year := today.Year()

	created := 0
	for _, goal := range recurring {
		existing, _ := s.Repository.GetByCategory(ctx, goal.CategoryId, month, year)
		if existing != nil {
			continue
		}

		now := time.Now()
		clone := &BudgetGoal{
			Id:          pkg.GenerateULID(),
			CategoryId:  goal.CategoryId,
			Amount:      goal.Amount,
			Month:       month,
			Year:        year,
			AlertAt:     goal.AlertAt,
			IsRecurring: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := s.Repository.Create(ctx, clone); err != nil {
			return created, appErrors.NewDatabaseError(err)
		}
		created++
	}

	return created, nil
}

func (s *Service) validateCreateRequest(ctx context.Context, req *CreateGoalRequest) error {
	if req.Amount <= 0 {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	if req.Month < 1 || req.Month > 12 {
		return appErrors.NewValidationError("month", "deve estar entre 1 e 12")
	}

	if req.Year < 2000 || req.Year > 2100 {
		return appErrors.NewValidationError("year", "ano inválido")
	}

	if req.AlertAt < 0 || req.AlertAt > 100 {
		return appErrors.NewValidationError("alert_at", "deve estar entre 0 e 100")
	}

	if _, err := s.CategoryRepository.GetByID(ctx, req.CategoryId); err != nil {
		return appErrors.ErrCategoryNotFound
	}

	return nil
}

func normalizePeriod(month, year int) (int, int) {
	now := time.Now()
	if month <= 0 || month > 12 {
		month = int(now.Month())
	}
	if year <= 0 {
		year = now.Year()
	}
	return month, year
}

type CreateGoalRequest struct {
	CategoryId  ulid.ULID
	Amount      float64
	Month       int
	Year        int
	AlertAt     float64
	IsRecurring bool
}

type UpdateGoalRequest struct {
	Amount      *float64
	AlertAt     *float64
	IsRecurring *bool
}
