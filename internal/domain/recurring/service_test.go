package recurring_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"Fluxo/internal/domain/recurring"
	"Fluxo/internal/domain/transaction"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"github.com/oklog/ulid/v2"
)

type fakeRecurringRepository struct {
	rules map[ulid.ULID]*recurring.RecurringTransaction
}

func newFakeRecurringRepository() *fakeRecurringRepository {
	return &fakeRecurringRepository{rules: make(map[ulid.ULID]*recurring.RecurringTransaction)}
}

func (f *fakeRecurringRepository) Create(ctx context.Context, rec *recurring.RecurringTransaction) error {
	f.rules[rec.Id] = rec
	return nil
}

func (f *fakeRecurringRepository) Update(ctx context.Context, rec *recurring.RecurringTransaction) error {
	f.rules[rec.Id] = rec
	return nil
}

func (f *fakeRecurringRepository) Delete(ctx context.Context, id ulid.ULID) error {
	delete(f.rules, id)
	return nil
}

func (f *fakeRecurringRepository) GetByID(ctx context.Context, id ulid.ULID) (*recurring.RecurringTransaction, error) {
	rec, ok := f.rules[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return rec, nil
}

func (f *fakeRecurringRepository) GetAll(ctx context.Context, pagination *pkg.PaginationParams) ([]*recurring.RecurringTransaction, int64, error) {
	out := make([]*recurring.RecurringTransaction, 0, len(f.rules))
	for _, r := range f.rules {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecurringRepository) GetActive(ctx context.Context) ([]*recurring.RecurringTransaction, error) {
	var out []*recurring.RecurringTransaction
	for _, r := range f.rules {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecurringRepository) GetDue(ctx context.Context, date time.Time) ([]*recurring.RecurringTransaction, error) {
	var out []*recurring.RecurringTransaction
	for _, r := range f.rules {
		if r.IsActive && !r.NextDue.After(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecurringRepository) UpdateLastProcessed(ctx context.Context, id ulid.ULID, processedDate, nextDue time.Time) error {
	rec, ok := f.rules[id]
	if !ok {
		return errors.New("not found")
	}
	d := processedDate
	rec.LastProcessed = &d
	rec.NextDue = nextDue
	return nil
}

func (f *fakeRecurringRepository) ReplaceAll(ctx context.Context, rules []*recurring.RecurringTransaction) error {
	f.rules = make(map[ulid.ULID]*recurring.RecurringTransaction, len(rules))
	for _, r := range rules {
		f.rules[r.Id] = r
	}
	return nil
}

type fakeTransactionRepository struct {
	transactions []*transaction.Transaction
}

func (f *fakeTransactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	f.transactions = append(f.transactions, tx)
	return nil
}

func (f *fakeTransactionRepository) Update(ctx context.Context, tx *transaction.Transaction) error {
	return nil
}

func (f *fakeTransactionRepository) Delete(ctx context.Context, id ulid.ULID) error { return nil }

func (f *fakeTransactionRepository) GetByID(ctx context.Context, id ulid.ULID) (*transaction.Transaction, error) {
	for _, tx := range f.transactions {
		if tx.Id == id {
			return tx, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeTransactionRepository) GetAll(ctx context.Context, filter *transaction.Filter, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	return f.transactions, int64(len(f.transactions)), nil
}

func (f *fakeTransactionRepository) GetByOccurrence(ctx context.Context, recurringID ulid.ULID, occurrenceDate time.Time) (*transaction.Transaction, error) {
	for _, tx := range f.transactions {
		if tx.RecurringId != nil && *tx.RecurringId == recurringID &&
			tx.OccurrenceDate != nil && dateutil.SameDay(*tx.OccurrenceDate, occurrenceDate) {
			return tx, nil
		}
	}
	return nil, nil
}

func (f *fakeTransactionRepository) GetMonthTotals(ctx context.Context, month, year int) (*transaction.MonthTotals, error) {
	return &transaction.MonthTotals{}, nil
}

func (f *fakeTransactionRepository) GetTotalsBetween(ctx context.Context, from, to time.Time) (*transaction.MonthTotals, error) {
	return &transaction.MonthTotals{}, nil
}

func (f *fakeTransactionRepository) SumExpensesByCategory(ctx context.Context, categoryID ulid.ULID, month, year int) (float64, error) {
	return 0, nil
}

func (f *fakeTransactionRepository) ReplaceAll(ctx context.Context, txs []*transaction.Transaction) error {
	f.transactions = txs
	return nil
}

// flakyTransactionRepository falha a consulta de ocorrência enquanto
// lookupErr estiver definido.
type flakyTransactionRepository struct {
	fakeTransactionRepository
	lookupErr error
}

func (f *flakyTransactionRepository) GetByOccurrence(ctx context.Context, recurringID ulid.ULID, occurrenceDate time.Time) (*transaction.Transaction, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.fakeTransactionRepository.GetByOccurrence(ctx, recurringID, occurrenceDate)
}

type fakeCategoryRepository struct {
	categories map[ulid.ULID]*transaction.Category
}

func newFakeCategoryRepository() *fakeCategoryRepository {
	return &fakeCategoryRepository{categories: make(map[ulid.ULID]*transaction.Category)}
}

func (f *fakeCategoryRepository) Create(ctx context.Context, c *transaction.Category) error {
	f.categories[c.Id] = c
	return nil
}

func (f *fakeCategoryRepository) Update(ctx context.Context, c *transaction.Category) error {
	f.categories[c.Id] = c
	return nil
}

func (f *fakeCategoryRepository) Delete(ctx context.Context, id ulid.ULID) error {
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepository) GetByID(ctx context.Context, id ulid.ULID) (*transaction.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (f *fakeCategoryRepository) GetByName(ctx context.Context, name string) (*transaction.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepository) List(ctx context.Context) ([]*transaction.Category, error) {
	out := make([]*transaction.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepository) CountTransactions(ctx context.Context, categoryID ulid.ULID) (int64, error) {
	return 0, nil
}

func (f *fakeCategoryRepository) ReplaceAll(ctx context.Context, categories []*transaction.Category) error {
	return nil
}

type serviceFixture struct {
	svc      *recurring.Service
	rules    *fakeRecurringRepository
	txs      *fakeTransactionRepository
	category *transaction.Category
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()

	ruleRepo := newFakeRecurringRepository()
	txRepo := &fakeTransactionRepository{}
	catRepo := newFakeCategoryRepository()

	cat := &transaction.Category{Id: pkg.GenerateULID(), Name: "Moradia"}
	_ = catRepo.Create(context.Background(), cat)

	return &serviceFixture{
		svc:      recurring.NewService(ruleRepo, txRepo, catRepo),
		rules:    ruleRepo,
		txs:      txRepo,
		category: cat,
	}
}

func (fx *serviceFixture) createMonthlyRule(t *testing.T, start string, anchor int, amount float64) *recurring.RecurringTransaction {
	t.Helper()
	rec, err := fx.svc.CreateRecurring(context.Background(), &recurring.CreateRecurringRequest{
		Type:        transaction.TypeExpense,
		CategoryId:  fx.category.Id,
		Amount:      amount,
		Description: "aluguel",
		Frequency:   recurring.FrequencyMonthly,
		DayOfMonth:  anchor,
		StartDate:   day(t, start),
	})
	if err != nil {
		t.Fatalf("CreateRecurring: %v", err)
	}
	return rec
}

func TestProcessDueIsIdempotent(t *testing.T) {
	fx := newFixture(t)
	fx.createMonthlyRule(t, "2025-03-05", 5, 1000)

	today := day(t, "2025-03-05")

	created, err := fx.svc.ProcessDue(context.Background(), today)
	if err != nil {
		t.Fatal(err)
	}
	if created != 1 {
		t.Fatalf("primeira execução: %d transações, esperava 1", created)
	}

	created, err = fx.svc.ProcessDue(context.Background(), today)
	if err != nil {
		t.Fatal(err)
	}
	if created != 0 {
		t.Errorf("segunda execução inseriu %d transações, esperava 0", created)
	}
	if len(fx.txs.transactions) != 1 {
		t.Errorf("log tem %d transações, esperava 1", len(fx.txs.transactions))
	}
}

func TestProcessDueLogGuardSurvivesRestart(t *testing.T) {
	// Um novo service (conjunto em memória vazio) ainda não pode duplicar:
	// a guarda real é a consulta ao log por (regra, ocorrência).
	fx := newFixture(t)
	rule := fx.createMonthlyRule(t, "2025-03-05", 5, 1000)

	today := day(t, "2025-03-05")
	if _, err := fx.svc.ProcessDue(context.Background(), today); err != nil {
		t.Fatal(err)
	}

	// Simula reinício com o ponteiro ainda não avançado.
	rule.NextDue = day(t, "2025-03-05")
	fresh := recurring.NewService(fx.rules, fx.txs, newFakeCategoryRepository())

	created, err := fresh.ProcessDue(context.Background(), today)
	if err != nil {
		t.Fatal(err)
	}
	if created != 0 {
		t.Errorf("reinício inseriu %d transações, esperava 0", created)
	}
	if len(fx.txs.transactions) != 1 {
		t.Errorf("log tem %d transações, esperava 1", len(fx.txs.transactions))
	}
	// O ponteiro ainda assim avança, destravando a regra.
	if got := dateutil.FormatDay(fx.rules.rules[rule.Id].NextDue); got != "2025-04-05" {
		t.Errorf("NextDue = %s, esperava 2025-04-05", got)
	}
}

func TestProcessDueEndToEndScenario(t *testing.T) {
	// Regra mensal âncora 5 iniciada em 2025-01-05, com janeiro e fevereiro
	// já materializados. Reconciliar em 2025-03-10 insere exatamente uma
	// transação datada 2025-03-05 e avança NextDue para 2025-04-05.
	fx := newFixture(t)
	rule := fx.createMonthlyRule(t, "2025-01-05", 5, 1000)

	for _, occ := range []string{"2025-01-05", "2025-02-05"} {
		occDate := day(t, occ)
		fx.txs.transactions = append(fx.txs.transactions, &transaction.Transaction{
			Id:             pkg.GenerateULID(),
			Type:           transaction.TypeExpense,
			CategoryId:     fx.category.Id,
			Amount:         1000,
			Date:           occDate,
			RecurringId:    &rule.Id,
			OccurrenceDate: &occDate,
		})
	}
	rule.NextDue = day(t, "2025-03-05")

	created, err := fx.svc.ProcessDue(context.Background(), day(t, "2025-03-10"))
	if err != nil {
		t.Fatal(err)
	}

	if created != 1 {
		t.Fatalf("inseriu %d transações, esperava 1", created)
	}
	inserted := fx.txs.transactions[len(fx.txs.transactions)-1]
	if got := dateutil.FormatDay(inserted.Date); got != "2025-03-05" {
		t.Errorf("transação datada %s, esperava 2025-03-05", got)
	}
	if got := dateutil.FormatDay(fx.rules.rules[rule.Id].NextDue); got != "2025-04-05" {
		t.Errorf("NextDue = %s, esperava 2025-04-05", got)
	}
}

func TestProcessDueCatchesUpMissedOccurrences(t *testing.T) {
	fx := newFixture(t)
	rule := fx.createMonthlyRule(t, "2025-01-05", 5, 500)

	created, err := fx.svc.ProcessDue(context.Background(), day(t, "2025-03-10"))
	if err != nil {
		t.Fatal(err)
	}

	if created != 3 {
		t.Fatalf("inseriu %d transações, esperava 3 (jan, fev, mar)", created)
	}

	wantDates := []string{"2025-01-05", "2025-02-05", "2025-03-05"}
	for i, want := range wantDates {
		if got := dateutil.FormatDay(fx.txs.transactions[i].Date); got != want {
			t.Errorf("transação[%d] datada %s, esperava %s", i, got, want)
		}
	}
	if got := dateutil.FormatDay(fx.rules.rules[rule.Id].NextDue); got != "2025-04-05" {
		t.Errorf("NextDue = %s, esperava 2025-04-05", got)
	}
}

func TestProcessDueRespectsEndDate(t *testing.T) {
	fx := newFixture(t)
	rule := fx.createMonthlyRule(t, "2025-01-05", 5, 500)
	end := day(t, "2025-02-28")
	rule.EndDate = &end

	created, err := fx.svc.ProcessDue(context.Background(), day(t, "2025-04-10"))
	if err != nil {
		t.Fatal(err)
	}

	// Jan e Fev materializam; Mar em diante está além da data de fim.
	if created != 2 {
		t.Errorf("inseriu %d transações, esperava 2", created)
	}
}

func TestProcessDueDoesNotInsertWhenLookupFails(t *testing.T) {
	// Erro transitório na consulta do log não é ausência de registro: inserir
	// sem confirmar poderia duplicar uma ocorrência já materializada.
	ruleRepo := newFakeRecurringRepository()
	txRepo := &flakyTransactionRepository{lookupErr: errors.New("timeout")}
	catRepo := newFakeCategoryRepository()
	cat := &transaction.Category{Id: pkg.GenerateULID(), Name: "Moradia"}
	_ = catRepo.Create(context.Background(), cat)

	svc := recurring.NewService(ruleRepo, txRepo, catRepo)
	rule, err := svc.CreateRecurring(context.Background(), &recurring.CreateRecurringRequest{
		Type:        transaction.TypeExpense,
		CategoryId:  cat.Id,
		Amount:      1000,
		Description: "aluguel",
		Frequency:   recurring.FrequencyMonthly,
		DayOfMonth:  5,
		StartDate:   day(t, "2025-03-05"),
	})
	if err != nil {
		t.Fatalf("CreateRecurring: %v", err)
	}

	today := day(t, "2025-03-05")

	created, err := svc.ProcessDue(context.Background(), today)
	if err != nil {
		t.Fatal(err)
	}
	if created != 0 {
		t.Errorf("inseriu %d transações com a consulta falhando, esperava 0", created)
	}
	if len(txRepo.transactions) != 0 {
		t.Errorf("log tem %d transações, esperava 0", len(txRepo.transactions))
	}
	if got := dateutil.FormatDay(ruleRepo.rules[rule.Id].NextDue); got != "2025-03-05" {
		t.Errorf("NextDue avançou para %s, esperava permanecer em 2025-03-05", got)
	}

	// Consulta saudável de novo: a mesma execução do dia recupera a ocorrência.
	txRepo.lookupErr = nil
	created, err = svc.ProcessDue(context.Background(), today)
	if err != nil {
		t.Fatal(err)
	}
	if created != 1 {
		t.Errorf("nova execução inseriu %d transações, esperava 1", created)
	}
}

func TestMaterializedTransactionCarriesIdempotencyKey(t *testing.T) {
	fx := newFixture(t)
	rule := fx.createMonthlyRule(t, "2025-03-05", 5, 750)

	if _, err := fx.svc.ProcessDue(context.Background(), day(t, "2025-03-05")); err != nil {
		t.Fatal(err)
	}

	tx := fx.txs.transactions[0]
	if tx.RecurringId == nil || *tx.RecurringId != rule.Id {
		t.Error("transação materializada sem referência à regra")
	}
	if tx.OccurrenceDate == nil || dateutil.FormatDay(*tx.OccurrenceDate) != "2025-03-05" {
		t.Error("transação materializada sem data de ocorrência")
	}
}
