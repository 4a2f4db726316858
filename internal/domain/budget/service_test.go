package budget_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"Fluxo/internal/domain/budget"
	"Fluxo/internal/domain/transaction"
	"Fluxo/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type fakeGoalRepository struct {
	goals map[ulid.ULID]*budget.BudgetGoal
}

func newFakeGoalRepository() *fakeGoalRepository {
	return &fakeGoalRepository{goals: make(map[ulid.ULID]*budget.BudgetGoal)}
}

func (f *fakeGoalRepository) Create(ctx context.Context, goal *budget.BudgetGoal) error {
	f.goals[goal.Id] = goal
	return nil
}

func (f *fakeGoalRepository) Update(ctx context.Context, goal *budget.BudgetGoal) error {
	f.goals[goal.Id] = goal
	return nil
}

func (f *fakeGoalRepository) Delete(ctx context.Context, goalID ulid.ULID) error {
	delete(f.goals, goalID)
	return nil
}

func (f *fakeGoalRepository) GetByID(ctx context.Context, goalID ulid.ULID) (*budget.BudgetGoal, error) {
	goal, ok := f.goals[goalID]
	if !ok {
		return nil, fmt.Errorf("meta não encontrada")
	}
	return goal, nil
}

func (f *fakeGoalRepository) GetByPeriod(ctx context.Context, month, year int, pagination *pkg.PaginationParams) ([]*budget.BudgetGoal, int64, error) {
	var found []*budget.BudgetGoal
	for _, goal := range f.goals {
		if goal.Month == month && goal.Year == year {
			found = append(found, goal)
		}
	}
	return found, int64(len(found)), nil
}

func (f *fakeGoalRepository) GetByCategory(ctx context.Context, categoryID ulid.ULID, month, year int) (*budget.BudgetGoal, error) {
	for _, goal := range f.goals {
		if goal.CategoryId == categoryID && goal.Month == month && goal.Year == year {
			return goal, nil
		}
	}
	return nil, fmt.Errorf("meta não encontrada")
}

func (f *fakeGoalRepository) GetRecurring(ctx context.Context) ([]*budget.BudgetGoal, error) {
	var found []*budget.BudgetGoal
	for _, goal := range f.goals {
		if goal.IsRecurring {
			found = append(found, goal)
		}
	}
	return found, nil
}

func (f *fakeGoalRepository) ReplaceAll(ctx context.Context, goals []*budget.BudgetGoal) error {
	f.goals = make(map[ulid.ULID]*budget.BudgetGoal)
	for _, goal := range goals {
		f.goals[goal.Id] = goal
	}
	return nil
}

// fakeSpendingRepository implementa transaction.Repository com gastos fixos
// por categoria; só SumExpensesByCategory importa para estes testes.
type fakeSpendingRepository struct {
	spentByCategory map[ulid.ULID]float64
}

func (f *fakeSpendingRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	return nil
}

func (f *fakeSpendingRepository) Update(ctx context.Context, tx *transaction.Transaction) error {
	return nil
}

func (f *fakeSpendingRepository) Delete(ctx context.Context, id ulid.ULID) error { return nil }

func (f *fakeSpendingRepository) GetByID(ctx context.Context, id ulid.ULID) (*transaction.Transaction, error) {
	return nil, fmt.Errorf("não implementado")
}

func (f *fakeSpendingRepository) GetAll(ctx context.Context, filter *transaction.Filter, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	return nil, 0, nil
}

func (f *fakeSpendingRepository) GetByOccurrence(ctx context.Context, recurringID ulid.ULID, occurrenceDate time.Time) (*transaction.Transaction, error) {
	return nil, nil
}

func (f *fakeSpendingRepository) GetMonthTotals(ctx context.Context, month, year int) (*transaction.MonthTotals, error) {
	return &transaction.MonthTotals{}, nil
}

func (f *fakeSpendingRepository) GetTotalsBetween(ctx context.Context, from, to time.Time) (*transaction.MonthTotals, error) {
	return &transaction.MonthTotals{}, nil
}

func (f *fakeSpendingRepository) SumExpensesByCategory(ctx context.Context, categoryID ulid.ULID, month, year int) (float64, error) {
	return f.spentByCategory[categoryID], nil
}

func (f *fakeSpendingRepository) ReplaceAll(ctx context.Context, txs []*transaction.Transaction) error {
	return nil
}

type fakeCategoryRepository struct {
	categories map[ulid.ULID]*transaction.Category
}

func (f *fakeCategoryRepository) Create(ctx context.Context, category *transaction.Category) error {
	f.categories[category.Id] = category
	return nil
}

func (f *fakeCategoryRepository) Update(ctx context.Context, category *transaction.Category) error {
	return nil
}

func (f *fakeCategoryRepository) Delete(ctx context.Context, id ulid.ULID) error { return nil }

func (f *fakeCategoryRepository) GetByID(ctx context.Context, id ulid.ULID) (*transaction.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, fmt.Errorf("categoria não encontrada")
	}
	return category, nil
}

func (f *fakeCategoryRepository) GetByName(ctx context.Context, name string) (*transaction.Category, error) {
	return nil, fmt.Errorf("não encontrada")
}

func (f *fakeCategoryRepository) List(ctx context.Context) ([]*transaction.Category, error) {
	return nil, nil
}

func (f *fakeCategoryRepository) CountTransactions(ctx context.Context, categoryID ulid.ULID) (int64, error) {
	return 0, nil
}

func (f *fakeCategoryRepository) ReplaceAll(ctx context.Context, categories []*transaction.Category) error {
	return nil
}

type goalFixture struct {
	service    *budget.Service
	repo       *fakeGoalRepository
	spending   *fakeSpendingRepository
	categoryID ulid.ULID
}

func newGoalFixture(t *testing.T) *goalFixture {
	t.Helper()

	repo := newFakeGoalRepository()
	spending := &fakeSpendingRepository{spentByCategory: make(map[ulid.ULID]float64)}
	categories := &fakeCategoryRepository{categories: make(map[ulid.ULID]*transaction.Category)}

	categoryID := pkg.GenerateULID()
	categories.categories[categoryID] = &transaction.Category{Id: categoryID, Name: "Alimentação"}

	return &goalFixture{
		service:    budget.NewService(repo, spending, categories),
		repo:       repo,
		spending:   spending,
		categoryID: categoryID,
	}
}

func (fx *goalFixture) createGoal(t *testing.T, amount float64) *budget.BudgetGoal {
	t.Helper()
	goal, err := fx.service.CreateGoal(context.Background(), &budget.CreateGoalRequest{
		CategoryId: fx.categoryID,
		Amount:     amount,
		Month:      3,
		Year:       2025,
	})
	if err != nil {
		t.Fatalf("erro ao criar meta: %v", err)
	}
	return goal
}

func TestGoalStatusThresholds(t *testing.T) {
	cases := []struct {
		name  string
		spent float64
		want  string
	}{
		{"abaixo do alerta", 500.00, budget.StatusOk},
		{"logo abaixo do alerta", 799.99, budget.StatusOk},
		{"no limiar de alerta", 800.00, budget.StatusWarning},
		{"acima do alerta", 950.00, budget.StatusWarning},
		{"no limite", 1000.00, budget.StatusExceeded},
		{"estourado", 1200.00, budget.StatusExceeded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newGoalFixture(t)
			goal := fx.createGoal(t, 1000.00)
			fx.spending.spentByCategory[fx.categoryID] = tc.spent

			status, err := fx.service.GetGoalStatus(context.Background(), goal.Id)
			if err != nil {
				t.Fatalf("erro ao avaliar meta: %v", err)
			}
			if status.Status != tc.want {
				t.Errorf("gasto %.2f sobre 1000.00: status = %q, esperado %q",
					tc.spent, status.Status, tc.want)
			}
		})
	}
}

func TestGoalStatusSpentIsDerived(t *testing.T) {
	fx := newGoalFixture(t)
	goal := fx.createGoal(t, 1000.00)

	fx.spending.spentByCategory[fx.categoryID] = 200.00
	status, err := fx.service.GetGoalStatus(context.Background(), goal.Id)
	if err != nil {
		t.Fatalf("erro ao avaliar meta: %v", err)
	}
	if status.Spent != 200.00 || status.Remaining != 800.00 {
		t.Errorf("gasto = %.2f, restante = %.2f, esperado 200.00 e 800.00",
			status.Spent, status.Remaining)
	}

	// Uma nova leitura reflete o gasto atualizado sem qualquer mutação na meta.
	fx.spending.spentByCategory[fx.categoryID] = 650.00
	status, err = fx.service.GetGoalStatus(context.Background(), goal.Id)
	if err != nil {
		t.Fatalf("erro ao reavaliar meta: %v", err)
	}
	if status.Spent != 650.00 {
		t.Errorf("gasto reavaliado = %.2f, esperado 650.00", status.Spent)
	}
}

func TestCreateGoalRejectsDuplicatePeriod(t *testing.T) {
	fx := newGoalFixture(t)
	fx.createGoal(t, 1000.00)

	_, err := fx.service.CreateGoal(context.Background(), &budget.CreateGoalRequest{
		CategoryId: fx.categoryID,
		Amount:     500.00,
		Month:      3,
		Year:       2025,
	})
	if err == nil {
		t.Error("esperava conflito ao criar duas metas para a mesma categoria no mesmo período")
	}
}

func TestCreateGoalRejectsUnknownCategory(t *testing.T) {
	fx := newGoalFixture(t)

	_, err := fx.service.CreateGoal(context.Background(), &budget.CreateGoalRequest{
		CategoryId: pkg.GenerateULID(),
		Amount:     500.00,
		Month:      3,
		Year:       2025,
	})
	if err == nil {
		t.Error("esperava erro para categoria inexistente")
	}
}

func TestSummaryAggregatesGoals(t *testing.T) {
	fx := newGoalFixture(t)
	fx.createGoal(t, 1000.00)
	fx.spending.spentByCategory[fx.categoryID] = 1100.00

	summary, err := fx.service.GetSummary(context.Background(), 3, 2025)
	if err != nil {
		t.Fatalf("erro ao montar resumo: %v", err)
	}

	if summary.TotalBudget != 1000.00 || summary.TotalSpent != 1100.00 {
		t.Errorf("resumo = %.2f/%.2f, esperado 1000.00/1100.00",
			summary.TotalSpent, summary.TotalBudget)
	}
	if summary.TotalRemaining != 0 {
		t.Errorf("restante = %.2f, esperado 0 quando estourado", summary.TotalRemaining)
	}
	if summary.ExceededCount != 1 {
		t.Errorf("metas estouradas = %d, esperado 1", summary.ExceededCount)
	}
}

func TestRolloverRecurringSkipsExisting(t *testing.T) {
	fx := newGoalFixture(t)

	goal, err := fx.service.CreateGoal(context.Background(), &budget.CreateGoalRequest{
		CategoryId:  fx.categoryID,
		Amount:      800.00,
		Month:       2,
		Year:        2025,
		IsRecurring: true,
	})
	if err != nil {
		t.Fatalf("erro ao criar meta recorrente: %v", err)
	}

	today := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	created, err := fx.service.RolloverRecurring(context.Background(), today)
	if err != nil {
		t.Fatalf("erro ao replicar metas: %v", err)
	}
	if created != 1 {
		t.Fatalf("esperava 1 meta replicada, veio %d", created)
	}

	replica, err := fx.repo.GetByCategory(context.Background(), goal.CategoryId, 3, 2025)
	if err != nil {
		t.Fatalf("meta replicada não encontrada: %v", err)
	}
	if replica.Amount != 800.00 || !replica.IsRecurring {
		t.Errorf("réplica com amount %.2f e recorrente %v, esperado 800.00 e true",
			replica.Amount, replica.IsRecurring)
	}

	// Segunda execução no mesmo mês não duplica.
	created, err = fx.service.RolloverRecurring(context.Background(), today)
	if err != nil {
		t.Fatalf("erro na segunda replicação: %v", err)
	}
	if created != 0 {
		t.Errorf("esperava 0 metas na segunda execução, veio %d", created)
	}
}
