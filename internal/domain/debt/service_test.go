package debt_test

import (
	"context"
	"fmt"
	"math"
	"sort"
	"testing"
	"time"

	"Fluxo/internal/domain/debt"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"github.com/oklog/ulid/v2"
)

type fakeDebtRepository struct {
	debts map[ulid.ULID]*debt.Debt
}

func newFakeDebtRepository() *fakeDebtRepository {
	return &fakeDebtRepository{debts: make(map[ulid.ULID]*debt.Debt)}
}

func (f *fakeDebtRepository) Create(ctx context.Context, debts []*debt.Debt) error {
	for _, d := range debts {
		f.debts[d.Id] = d
	}
	return nil
}

func (f *fakeDebtRepository) Update(ctx context.Context, d *debt.Debt) error {
	f.debts[d.Id] = d
	return nil
}

func (f *fakeDebtRepository) Delete(ctx context.Context, debtID ulid.ULID) error {
	delete(f.debts, debtID)
	return nil
}

func (f *fakeDebtRepository) DeleteByParent(ctx context.Context, parentID ulid.ULID) error {
	for id, d := range f.debts {
		if d.ParentId != nil && *d.ParentId == parentID {
			delete(f.debts, id)
		}
	}
	return nil
}

func (f *fakeDebtRepository) GetByID(ctx context.Context, debtID ulid.ULID) (*debt.Debt, error) {
	d, ok := f.debts[debtID]
	if !ok {
		return nil, fmt.Errorf("dívida não encontrada")
	}
	return d, nil
}

func (f *fakeDebtRepository) GetAll(ctx context.Context, filter *debt.Filter, pagination *pkg.PaginationParams) ([]*debt.Debt, int64, error) {
	var all []*debt.Debt
	for _, d := range f.debts {
		if filter != nil && filter.Paid != nil && d.Paid != *filter.Paid {
			continue
		}
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].DueDate.Before(all[j].DueDate) })
	return all, int64(len(all)), nil
}

func (f *fakeDebtRepository) GetUnpaidBetween(ctx context.Context, from, to time.Time) ([]*debt.Debt, error) {
	var found []*debt.Debt
	for _, d := range f.debts {
		if d.Paid {
			continue
		}
		if !dateutil.Before(d.DueDate, from) && !dateutil.After(d.DueDate, to) {
			found = append(found, d)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].DueDate.Before(found[j].DueDate) })
	return found, nil
}

func (f *fakeDebtRepository) SumUnpaidBetween(ctx context.Context, from, to time.Time) (float64, error) {
	found, _ := f.GetUnpaidBetween(ctx, from, to)
	total := 0.0
	for _, d := range found {
		total += d.Amount
	}
	return total, nil
}

func (f *fakeDebtRepository) ReplaceAll(ctx context.Context, debts []*debt.Debt) error {
	f.debts = make(map[ulid.ULID]*debt.Debt)
	for _, d := range debts {
		f.debts[d.Id] = d
	}
	return nil
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := dateutil.ParseDay(value)
	if err != nil {
		t.Fatalf("data inválida no teste %q: %v", value, err)
	}
	return parsed
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func TestCreateDebtSplitsIntoMonthlyInstallments(t *testing.T) {
	repo := newFakeDebtRepository()
	service := debt.NewService(repo)

	debts, err := service.CreateDebt(context.Background(), &debt.CreateDebtRequest{
		CategoryId:   pkg.GenerateULID(),
		Description:  "Empréstimo",
		Creditor:     "Banco",
		Amount:       300.00,
		DueDate:      day(t, "2025-03-15"),
		Installments: 3,
	})
	if err != nil {
		t.Fatalf("erro ao criar dívida: %v", err)
	}

	if len(debts) != 3 {
		t.Fatalf("esperava 3 parcelas, veio %d", len(debts))
	}

	wantDates := []string{"2025-03-15", "2025-04-15", "2025-05-15"}
	for i, d := range debts {
		if !approxEqual(d.Amount, 100.00) {
			t.Errorf("parcela %d = %.2f, esperado 100.00", i+1, d.Amount)
		}
		if !dateutil.SameDay(d.DueDate, day(t, wantDates[i])) {
			t.Errorf("parcela %d vence em %s, esperado %s",
				i+1, dateutil.FormatDay(d.DueDate), wantDates[i])
		}
		if d.ParentId == nil || *d.ParentId != debts[0].Id {
			t.Errorf("parcela %d não aponta para a primeira parcela como ParentId", i+1)
		}
		if d.CurrentInstallment != i+1 {
			t.Errorf("parcela %d com CurrentInstallment = %d", i+1, d.CurrentInstallment)
		}
	}
}

func TestCreateDebtUnevenSplitLastAbsorbsRemainder(t *testing.T) {
	repo := newFakeDebtRepository()
	service := debt.NewService(repo)

	debts, err := service.CreateDebt(context.Background(), &debt.CreateDebtRequest{
		CategoryId:   pkg.GenerateULID(),
		Description:  "Parcelamento",
		Amount:       100.00,
		DueDate:      day(t, "2025-01-31"),
		Installments: 3,
	})
	if err != nil {
		t.Fatalf("erro ao criar dívida: %v", err)
	}

	if !approxEqual(debts[0].Amount, 33.33) || !approxEqual(debts[1].Amount, 33.33) || !approxEqual(debts[2].Amount, 33.34) {
		t.Errorf("parcelas = %.2f, %.2f, %.2f, esperado 33.33, 33.33, 33.34",
			debts[0].Amount, debts[1].Amount, debts[2].Amount)
	}

	sum := 0.0
	for _, d := range debts {
		sum += d.Amount
	}
	if !approxEqual(sum, 100.00) {
		t.Errorf("soma das parcelas = %.2f, esperado 100.00", sum)
	}

	// Vencimento em 31/01 com clamp para meses curtos.
	if !dateutil.SameDay(debts[1].DueDate, day(t, "2025-02-28")) {
		t.Errorf("segunda parcela vence em %s, esperado 2025-02-28", dateutil.FormatDay(debts[1].DueDate))
	}
	if !dateutil.SameDay(debts[2].DueDate, day(t, "2025-03-31")) {
		t.Errorf("terceira parcela vence em %s, esperado 2025-03-31", dateutil.FormatDay(debts[2].DueDate))
	}
}

func TestCreateDebtSingleHasNoParent(t *testing.T) {
	repo := newFakeDebtRepository()
	service := debt.NewService(repo)

	debts, err := service.CreateDebt(context.Background(), &debt.CreateDebtRequest{
		CategoryId:  pkg.GenerateULID(),
		Description: "Conta de luz",
		Amount:      180.50,
		DueDate:     day(t, "2025-03-20"),
	})
	if err != nil {
		t.Fatalf("erro ao criar dívida: %v", err)
	}

	if len(debts) != 1 {
		t.Fatalf("esperava 1 registro, veio %d", len(debts))
	}
	if debts[0].ParentId != nil {
		t.Error("dívida à vista não deveria ter ParentId")
	}
}

func TestMarkPaidIsOnce(t *testing.T) {
	repo := newFakeDebtRepository()
	service := debt.NewService(repo)

	debts, err := service.CreateDebt(context.Background(), &debt.CreateDebtRequest{
		CategoryId:  pkg.GenerateULID(),
		Description: "Internet",
		Amount:      99.90,
		DueDate:     day(t, "2025-03-10"),
	})
	if err != nil {
		t.Fatalf("erro ao criar dívida: %v", err)
	}

	paid, err := service.MarkPaid(context.Background(), debts[0].Id)
	if err != nil {
		t.Fatalf("erro ao quitar dívida: %v", err)
	}
	if !paid.Paid || paid.PaidAt == nil {
		t.Error("dívida deveria constar como paga com PaidAt preenchido")
	}

	if _, err := service.MarkPaid(context.Background(), debts[0].Id); err == nil {
		t.Error("esperava erro ao quitar a mesma dívida duas vezes")
	}
}

func TestMarkUnpaidRevertsPayment(t *testing.T) {
	repo := newFakeDebtRepository()
	service := debt.NewService(repo)

	debts, _ := service.CreateDebt(context.Background(), &debt.CreateDebtRequest{
		CategoryId:  pkg.GenerateULID(),
		Description: "Água",
		Amount:      75.00,
		DueDate:     day(t, "2025-03-12"),
	})

	if _, err := service.MarkPaid(context.Background(), debts[0].Id); err != nil {
		t.Fatalf("erro ao quitar dívida: %v", err)
	}

	reverted, err := service.MarkUnpaid(context.Background(), debts[0].Id)
	if err != nil {
		t.Fatalf("erro ao reverter quitação: %v", err)
	}
	if reverted.Paid || reverted.PaidAt != nil {
		t.Error("dívida não deveria constar como paga após a reversão")
	}
}

func TestUpcomingReturnsUnpaidInOrder(t *testing.T) {
	repo := newFakeDebtRepository()
	service := debt.NewService(repo)

	for _, due := range []string{"2025-03-20", "2025-03-05", "2025-03-12"} {
		if _, err := service.CreateDebt(context.Background(), &debt.CreateDebtRequest{
			CategoryId:  pkg.GenerateULID(),
			Description: "Conta " + due,
			Amount:      50,
			DueDate:     day(t, due),
		}); err != nil {
			t.Fatalf("erro ao criar dívida: %v", err)
		}
	}

	// Fora do horizonte de 30 dias.
	if _, err := service.CreateDebt(context.Background(), &debt.CreateDebtRequest{
		CategoryId:  pkg.GenerateULID(),
		Description: "Distante",
		Amount:      50,
		DueDate:     day(t, "2025-06-01"),
	}); err != nil {
		t.Fatalf("erro ao criar dívida: %v", err)
	}

	upcoming, err := service.Upcoming(context.Background(), day(t, "2025-03-01"), 30)
	if err != nil {
		t.Fatalf("erro ao listar próximas dívidas: %v", err)
	}

	if len(upcoming) != 3 {
		t.Fatalf("esperava 3 dívidas no horizonte, veio %d", len(upcoming))
	}

	wantOrder := []string{"2025-03-05", "2025-03-12", "2025-03-20"}
	for i, d := range upcoming {
		if !dateutil.SameDay(d.DueDate, day(t, wantOrder[i])) {
			t.Errorf("posição %d vence em %s, esperado %s",
				i, dateutil.FormatDay(d.DueDate), wantOrder[i])
		}
	}
}

func TestUpdateDebtRejectsPaid(t *testing.T) {
	repo := newFakeDebtRepository()
	service := debt.NewService(repo)

	debts, _ := service.CreateDebt(context.Background(), &debt.CreateDebtRequest{
		CategoryId:  pkg.GenerateULID(),
		Description: "Cartório",
		Amount:      120,
		DueDate:     day(t, "2025-03-18"),
	})

	if _, err := service.MarkPaid(context.Background(), debts[0].Id); err != nil {
		t.Fatalf("erro ao quitar dívida: %v", err)
	}

	newAmount := 150.0
	err := service.UpdateDebt(context.Background(), debts[0].Id, &debt.UpdateDebtRequest{Amount: &newAmount})
	if err == nil {
		t.Error("esperava erro ao alterar dívida já paga")
	}
}
