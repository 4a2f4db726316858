package transaction

import (
	"context"
	"strings"
	"time"

	appErrors "Fluxo/internal/errors"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository         Repository
	CategoryRepository CategoryRepository
}

func NewService(repo Repository, categoryRepo CategoryRepository) *Service {
	return &Service{
		Repository:         repo,
		CategoryRepository: categoryRepo,
	}
}

func (s *Service) CreateTransaction(ctx context.Context, req *CreateTransactionRequest) (*Transaction, error) {
	if err := s.validateCreateRequest(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now()
	tx := &Transaction{
		Id:             pkg.GenerateULID(),
		Type:           req.Type,
		CategoryId:     req.CategoryId,
		Amount:         req.Amount,
		Description:    strings.TrimSpace(req.Description),
		Note:           strings.TrimSpace(req.Note),
		Date:           dateutil.Truncate(req.Date),
		RecurringId:    req.RecurringId,
		OccurrenceDate: req.OccurrenceDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Repository.Create(ctx, tx); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return tx, nil
}

func (s *Service) UpdateTransaction(ctx context.Context, transactionID ulid.ULID, req *UpdateTransactionRequest) error {
	tx, err := s.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	if req.Amount != nil {
		if *req.Amount <= 0 {
			return appErrors.NewValidationError("amount", "deve ser maior que zero")
		}
		tx.Amount = *req.Amount
	}

	if req.Description != nil {
		tx.Description = strings.TrimSpace(*req.Description)
	}

	if req.Note != nil {
		tx.Note = strings.TrimSpace(*req.Note)
	}

	if req.Date != nil {
		tx.Date = dateutil.Truncate(*req.Date)
	}

	if req.CategoryId != nil {
		if _, err := s.CategoryRepository.GetByID(ctx, *req.CategoryId); err != nil {
			return appErrors.ErrCategoryNotFound
		}
		tx.CategoryId = *req.CategoryId
	}

	if req.Type != nil {
		if !req.Type.IsValid() {
			return appErrors.NewValidationError("type", "tipo inválido")
		}
		tx.Type = *req.Type
	}

	tx.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, tx); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) DeleteTransaction(ctx context.Context, transactionID ulid.ULID) error {
	if _, err := s.GetTransactionByID(ctx, transactionID); err != nil {
		return err
	}

	if err := s.Repository.Delete(ctx, transactionID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) GetTransactionByID(ctx context.Context, transactionID ulid.ULID) (*Transaction, error) {
	tx, err := s.Repository.GetByID(ctx, transactionID)
	if err != nil {
		return nil, appErrors.ErrTransactionNotFound.WithError(err)
	}
	return tx, nil
}

func (s *Service) ListTransactions(ctx context.Context, filter *Filter, pagination *pkg.PaginationParams) ([]*Transaction, int64, error) {
	if filter != nil && filter.Month != 0 && (filter.Month < 1 || filter.Month > 12) {
		return nil, 0, appErrors.NewValidationError("month", "deve estar entre 1 e 12")
	}
	return s.Repository.GetAll(ctx, filter, pagination)
}

func (s *Service) GetMonthTotals(ctx context.Context, month, year int) (*MonthTotals, error) {
	if month < 1 || month > 12 {
		return nil, appErrors.NewValidationError("month", "deve estar entre 1 e 12")
	}
	return s.Repository.GetMonthTotals(ctx, month, year)
}

func (s *Service) CreateCategory(ctx context.Context, name, icon string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}

	if existing, _ := s.CategoryRepository.GetByName(ctx, name); existing != nil {
		return nil, appErrors.NewConflictError("Categoria")
	}

	now := time.Now()
	category := &Category{
		Id:        pkg.GenerateULID(),
		Name:      name,
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.CategoryRepository.Create(ctx, category); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, categoryID ulid.ULID, name, icon *string) error {
	category, err := s.CategoryRepository.GetByID(ctx, categoryID)
	if err != nil {
		return appErrors.ErrCategoryNotFound.WithError(err)
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return appErrors.NewValidationError("name", "não pode ser vazio")
		}
		category.Name = trimmed
	}

	if icon != nil {
		category.Icon = *icon
	}

	category.UpdatedAt = time.Now()

	if err := s.CategoryRepository.Update(ctx, category); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) DeleteCategory(ctx context.Context, categoryID ulid.ULID) error {
	if _, err := s.CategoryRepository.GetByID(ctx, categoryID); err != nil {
		return appErrors.ErrCategoryNotFound.WithError(err)
	}

	count, err := s.CategoryRepository.CountTransactions(ctx, categoryID)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	if count > 0 {
		return appErrors.NewValidationError("category", "categoria possui transações vinculadas")
	}

	if err := s.CategoryRepository.Delete(ctx, categoryID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.CategoryRepository.List(ctx)
}

func (s *Service) validateCreateRequest(ctx context.Context, req *CreateTransactionRequest) error {
	if req.Amount <= 0 {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	if !req.Type.IsValid() {
		return appErrors.NewValidationError("type", "tipo inválido")
	}

	if req.Date.IsZero() {
		return appErrors.NewValidationError("date", "é obrigatória")
	}

	if _, err := s.CategoryRepository.GetByID(ctx, req.CategoryId); err != nil {
		return appErrors.ErrCategoryNotFound
	}

	return nil
}

type CreateTransactionRequest struct {
	Type           Types
	CategoryId     ulid.ULID
	Amount         float64
	Description    string
	Note           string
	Date           time.Time
	RecurringId    *ulid.ULID
	OccurrenceDate *time.Time
}

type UpdateTransactionRequest struct {
	Type        *Types
	CategoryId  *ulid.ULID
	Amount      *float64
	Description *string
	Note        *string
	Date        *time.Time
}
