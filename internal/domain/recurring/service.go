package recurring

import (
	"context"
	"strings"
	"sync"
	"time"

	"Fluxo/internal/domain/transaction"
	appErrors "Fluxo/internal/errors"
	"Fluxo/internal/logger"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"github.com/oklog/ulid/v2"
)

type processedKey struct {
	ruleID     ulid.ULID
	occurrence time.Time
}

type Service struct {
	Repository         Repository
	TransactionRepo    transaction.Repository
	CategoryRepository transaction.CategoryRepository

	// Conjunto "já processado hoje" por (regra, ocorrência), zerado na virada
	// do dia. Evita retrabalho dentro do dia; a guarda real contra duplicata
	// é a consulta ao log por (RecurringId, OccurrenceDate).
	mu           sync.Mutex
	processedDay time.Time
	processed    map[processedKey]struct{}
}

func NewService(repo Repository, transactionRepo transaction.Repository, categoryRepo transaction.CategoryRepository) *Service {
	return &Service{
		Repository:         repo,
		TransactionRepo:    transactionRepo,
		CategoryRepository: categoryRepo,
		processed:          make(map[processedKey]struct{}),
	}
}

func (s *Service) CreateRecurring(ctx context.Context, req *CreateRecurringRequest) (*RecurringTransaction, error) {
	if err := s.validateCreateRequest(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now()
	startDate := dateutil.Truncate(req.StartDate)
	nextDue := FirstOccurrence(startDate, req.Frequency, req.DayOfMonth, req.DayOfWeek)

	rec := &RecurringTransaction{
		Id:          pkg.GenerateULID(),
		Type:        req.Type,
		CategoryId:  req.CategoryId,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		Frequency:   req.Frequency,
		DayOfMonth:  req.DayOfMonth,
		DayOfWeek:   req.DayOfWeek,
		StartDate:   startDate,
		EndDate:     req.EndDate,
		NextDue:     nextDue,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Repository.Create(ctx, rec); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return rec, nil
}

func (s *Service) UpdateRecurring(ctx context.Context, recurringID ulid.ULID, req *UpdateRecurringRequest) error {
	rec, err := s.GetRecurringByID(ctx, recurringID)
	if err != nil {
		return err
	}

	if req.Amount != nil {
		if *req.Amount <= 0 {
			return appErrors.NewValidationError("amount", "deve ser maior que zero")
		}
		rec.Amount = *req.Amount
	}

	if req.Description != nil {
		rec.Description = strings.TrimSpace(*req.Description)
	}

	if req.IsActive != nil {
		rec.IsActive = *req.IsActive
	}

	if req.EndDate != nil {
		rec.EndDate = req.EndDate
	}

	if req.DayOfMonth != nil {
		if *req.DayOfMonth < 1 || *req.DayOfMonth > 31 {
			return appErrors.NewValidationError("day_of_month", "deve estar entre 1 e 31")
		}
		rec.DayOfMonth = *req.DayOfMonth
	}

	if req.DayOfWeek != nil {
		if *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
			return appErrors.NewValidationError("day_of_week", "deve estar entre 0 (domingo) e 6 (sábado)")
		}
		rec.DayOfWeek = *req.DayOfWeek
	}

	rec.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, rec); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// DeleteRecurring remove a regra. Transações já materializadas são registros
// independentes e não são afetadas.
func (s *Service) DeleteRecurring(ctx context.Context, recurringID ulid.ULID) error {
	if _, err := s.GetRecurringByID(ctx, recurringID); err != nil {
		return err
	}

	if err := s.Repository.Delete(ctx, recurringID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) GetRecurringByID(ctx context.Context, recurringID ulid.ULID) (*RecurringTransaction, error) {
	rec, err := s.Repository.GetByID(ctx, recurringID)
	if err != nil {
		return nil, appErrors.ErrRecurringNotFound.WithError(err)
	}
	return rec, nil
}

func (s *Service) ListRecurring(ctx context.Context, pagination *pkg.PaginationParams) ([]*RecurringTransaction, int64, error) {
	return s.Repository.GetAll(ctx, pagination)
}

func (s *Service) SetActive(ctx context.Context, recurringID ulid.ULID, active bool) error {
	rec, err := s.GetRecurringByID(ctx, recurringID)
	if err != nil {
		return err
	}

	rec.IsActive = active
	rec.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, rec); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// MonthOccurrences projeta as ocorrências virtuais das regras ativas para o
// mês informado.
func (s *Service) MonthOccurrences(ctx context.Context, month, year int) ([]Occurrence, error) {
	if month < 1 || month > 12 {
		return nil, appErrors.NewValidationError("month", "deve estar entre 1 e 12")
	}

	rules, err := s.Repository.GetActive(ctx)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return ExpandMonth(rules, time.Month(month), year), nil
}

// ProcessDue materializa todas as ocorrências vencidas das regras ativas.
// Idempotente: re-executar no mesmo dia não insere duplicatas. Regras
// atrasadas várias ocorrências são recuperadas em ordem.
func (s *Service) ProcessDue(ctx context.Context, today time.Time) (int, error) {
	today = dateutil.Truncate(today)
	s.resetProcessedIfDayChanged(today)

	dueRules, err := s.Repository.GetDue(ctx, today)
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}

	created := 0
	for _, rule := range dueRules {
		n, err := s.materializeRule(ctx, rule, today)
		if err != nil {
			logger.Error().Err(err).Str("recurring_id", rule.Id.String()).Msg("Falha ao materializar regra recorrente")
			continue
		}
		created += n
	}

	return created, nil
}

func (s *Service) materializeRule(ctx context.Context, rule *RecurringTransaction, today time.Time) (int, error) {
	created := 0
	nextDue := dateutil.Truncate(rule.NextDue)

	for !nextDue.After(today) {
		if rule.Exhausted(nextDue) {
			break
		}

		if !s.markProcessed(rule.Id, nextDue) {
			// Já tratada neste dia; evita retrabalho dentro do mesmo dia.
			nextDue = NextOccurrence(nextDue, rule.Frequency, rule.DayOfMonth, rule.DayOfWeek)
			continue
		}

		inserted, err := s.materializeOccurrence(ctx, rule, nextDue)
		if err != nil {
			// Libera o par para que uma nova execução no mesmo dia tente de novo.
			s.unmarkProcessed(rule.Id, nextDue)
			return created, err
		}
		if inserted {
			created++
		}

		advanced := NextOccurrence(nextDue, rule.Frequency, rule.DayOfMonth, rule.DayOfWeek)
		if err := s.Repository.UpdateLastProcessed(ctx, rule.Id, nextDue, advanced); err != nil {
			return created, err
		}
		nextDue = advanced
	}

	return created, nil
}

// materializeOccurrence insere a transação concreta de uma ocorrência, se o
// log ainda não a contém. Retorna true quando houve inserção.
func (s *Service) materializeOccurrence(ctx context.Context, rule *RecurringTransaction, occurrence time.Time) (bool, error) {
	existing, err := s.TransactionRepo.GetByOccurrence(ctx, rule.Id, occurrence)
	if err != nil {
		// Falha de consulta não é ausência: inserir aqui poderia duplicar a
		// ocorrência.
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	now := time.Now()
	occurrenceDate := occurrence
	tx := &transaction.Transaction{
		Id:             pkg.GenerateULID(),
		Type:           rule.Type,
		CategoryId:     rule.CategoryId,
		Amount:         rule.Amount,
		Description:    rule.Description + " (recorrente)",
		Date:           occurrence,
		RecurringId:    &rule.Id,
		OccurrenceDate: &occurrenceDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.TransactionRepo.Create(ctx, tx); err != nil {
		return false, err
	}

	return true, nil
}

// ProcessRecurringManually materializa uma ocorrência sob demanda, na data
// informada (ou hoje).
func (s *Service) ProcessRecurringManually(ctx context.Context, recurringID ulid.ULID, processDate *time.Time) (*transaction.Transaction, error) {
	rec, err := s.GetRecurringByID(ctx, recurringID)
	if err != nil {
		return nil, err
	}

	if !rec.IsActive {
		return nil, appErrors.NewValidationError("recurring", "transação recorrente está pausada")
	}

	date := dateutil.Today()
	if processDate != nil {
		date = dateutil.Truncate(*processDate)
	}

	if rec.Exhausted(date) {
		return nil, appErrors.NewValidationError("process_date", "data de processamento é posterior à data de fim da recorrência")
	}

	if dateutil.Before(date, rec.StartDate) {
		return nil, appErrors.NewValidationError("process_date", "não é possível processar antes da data de início")
	}

	inserted, err := s.materializeOccurrence(ctx, rec, date)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	if !inserted {
		return nil, appErrors.NewConflictError("Ocorrência")
	}

	nextDue := NextOccurrence(date, rec.Frequency, rec.DayOfMonth, rec.DayOfWeek)
	if err := s.Repository.UpdateLastProcessed(ctx, rec.Id, date, nextDue); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	tx, err := s.TransactionRepo.GetByOccurrence(ctx, rec.Id, date)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return tx, nil
}

func (s *Service) resetProcessedIfDayChanged(today time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.processedDay.Equal(today) {
		s.processedDay = today
		s.processed = make(map[processedKey]struct{})
	}
}

// markProcessed registra o par (regra, ocorrência) no conjunto do dia.
// Retorna false quando o par já havia sido processado hoje.
func (s *Service) markProcessed(ruleID ulid.ULID, occurrence time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := processedKey{ruleID: ruleID, occurrence: occurrence}
	if _, seen := s.processed[key]; seen {
		return false
	}
	s.processed[key] = struct{}{}
	return true
}

func (s *Service) unmarkProcessed(ruleID ulid.ULID, occurrence time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.processed, processedKey{ruleID: ruleID, occurrence: occurrence})
}

func (s *Service) validateCreateRequest(ctx context.Context, req *CreateRecurringRequest) error {
	if req.Amount <= 0 {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	if !req.Frequency.IsValid() {
		return appErrors.NewValidationError("frequency", "frequência inválida")
	}

	if !req.Type.IsValid() {
		return appErrors.NewValidationError("type", "tipo inválido")
	}

	if req.StartDate.IsZero() {
		return appErrors.NewValidationError("start_date", "é obrigatória")
	}

	if req.EndDate != nil && dateutil.Before(*req.EndDate, req.StartDate) {
		return appErrors.NewValidationError("end_date", "deve ser posterior à data de início")
	}

	if _, err := s.CategoryRepository.GetByID(ctx, req.CategoryId); err != nil {
		return appErrors.ErrCategoryNotFound
	}

	if req.Frequency == FrequencyMonthly && (req.DayOfMonth < 1 || req.DayOfMonth > 31) {
		return appErrors.NewValidationError("day_of_month", "deve estar entre 1 e 31")
	}

	if req.Frequency == FrequencyWeekly && (req.DayOfWeek < 0 || req.DayOfWeek > 6) {
		return appErrors.NewValidationError("day_of_week", "deve estar entre 0 (domingo) e 6 (sábado)")
	}

	return nil
}

type CreateRecurringRequest struct {
	Type        transaction.Types
	CategoryId  ulid.ULID
	Amount      float64
	Description string
	Frequency   FrequencyType
	DayOfMonth  int
	DayOfWeek   int
	StartDate   time.Time
	EndDate     *time.Time
}

type UpdateRecurringRequest struct {
	Amount      *float64
	Description *string
	IsActive    *bool
	EndDate     *time.Time
	DayOfMonth  *int
	DayOfWeek   *int
}
