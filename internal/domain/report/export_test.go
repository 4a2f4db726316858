package report_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"Fluxo/internal/domain/budget"
	"Fluxo/internal/domain/creditcard"
	"Fluxo/internal/domain/debt"
	"Fluxo/internal/domain/recurring"
	"Fluxo/internal/domain/report"
	"Fluxo/internal/domain/transaction"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"

	"github.com/oklog/ulid/v2"
)

type fakeTransactionRepository struct {
	txs []*transaction.Transaction
}

func (f *fakeTransactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	f.txs = append(f.txs, tx)
	return nil
}

func (f *fakeTransactionRepository) Update(ctx context.Context, tx *transaction.Transaction) error {
	return nil
}

func (f *fakeTransactionRepository) Delete(ctx context.Context, id ulid.ULID) error { return nil }

func (f *fakeTransactionRepository) GetByID(ctx context.Context, id ulid.ULID) (*transaction.Transaction, error) {
	return nil, fmt.Errorf("não implementado")
}

func (f *fakeTransactionRepository) GetAll(ctx context.Context, filter *transaction.Filter, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	if filter == nil {
		return f.txs, int64(len(f.txs)), nil
	}
	var found []*transaction.Transaction
	for _, tx := range f.txs {
		if filter.Month > 0 && int(tx.Date.Month()) != filter.Month {
			continue
		}
		if filter.Year > 0 && tx.Date.Year() != filter.Year {
			continue
		}
		found = append(found, tx)
	}
	return found, int64(len(found)), nil
}

func (f *fakeTransactionRepository) GetByOccurrence(ctx context.Context, recurringID ulid.ULID, occurrenceDate time.Time) (*transaction.Transaction, error) {
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
	f.txs = txs
	return nil
}

type fakeCategoryRepository struct {
	categories []*transaction.Category
}

func (f *fakeCategoryRepository) Create(ctx context.Context, category *transaction.Category) error {
	f.categories = append(f.categories, category)
	return nil
}

func (f *fakeCategoryRepository) Update(ctx context.Context, category *transaction.Category) error {
	return nil
}

func (f *fakeCategoryRepository) Delete(ctx context.Context, id ulid.ULID) error { return nil }

func (f *fakeCategoryRepository) GetByID(ctx context.Context, id ulid.ULID) (*transaction.Category, error) {
	for _, category := range f.categories {
		if category.Id == id {
			return category, nil
		}
	}
	return nil, fmt.Errorf("categoria não encontrada")
}

func (f *fakeCategoryRepository) GetByName(ctx context.Context, name string) (*transaction.Category, error) {
	return nil, fmt.Errorf("não encontrada")
}

func (f *fakeCategoryRepository) List(ctx context.Context) ([]*transaction.Category, error) {
	return f.categories, nil
}

func (f *fakeCategoryRepository) CountTransactions(ctx context.Context, categoryID ulid.ULID) (int64, error) {
	return 0, nil
}

func (f *fakeCategoryRepository) ReplaceAll(ctx context.Context, categories []*transaction.Category) error {
	f.categories = categories
	return nil
}

type fakeRecurringRepository struct {
	rules []*recurring.RecurringTransaction
}

func (f *fakeRecurringRepository) Create(ctx context.Context, rule *recurring.RecurringTransaction) error {
	f.rules = append(f.rules, rule)
	return nil
}

func (f *fakeRecurringRepository) Update(ctx context.Context, rule *recurring.RecurringTransaction) error {
	return nil
}

func (f *fakeRecurringRepository) Delete(ctx context.Context, recurringID ulid.ULID) error {
	return nil
}

func (f *fakeRecurringRepository) GetByID(ctx context.Context, recurringID ulid.ULID) (*recurring.RecurringTransaction, error) {
	return nil, fmt.Errorf("não implementado")
}

func (f *fakeRecurringRepository) GetAll(ctx context.Context, pagination *pkg.PaginationParams) ([]*recurring.RecurringTransaction, int64, error) {
	return f.rules, int64(len(f.rules)), nil
}

func (f *fakeRecurringRepository) GetActive(ctx context.Context) ([]*recurring.RecurringTransaction, error) {
	return f.rules, nil
}

func (f *fakeRecurringRepository) GetDue(ctx context.Context, date time.Time) ([]*recurring.RecurringTransaction, error) {
	return nil, nil
}

func (f *fakeRecurringRepository) UpdateLastProcessed(ctx context.Context, recurringID ulid.ULID, processedDate, nextDue time.Time) error {
	return nil
}

func (f *fakeRecurringRepository) ReplaceAll(ctx context.Context, rules []*recurring.RecurringTransaction) error {
	f.rules = rules
	return nil
}

type fakeDebtRepository struct {
	debts []*debt.Debt
}

func (f *fakeDebtRepository) Create(ctx context.Context, debts []*debt.Debt) error {
	f.debts = append(f.debts, debts...)
	return nil
}

func (f *fakeDebtRepository) Update(ctx context.Context, d *debt.Debt) error { return nil }

func (f *fakeDebtRepository) Delete(ctx context.Context, debtID ulid.ULID) error { return nil }

func (f *fakeDebtRepository) DeleteByParent(ctx context.Context, parentID ulid.ULID) error {
	return nil
}

func (f *fakeDebtRepository) GetByID(ctx context.Context, debtID ulid.ULID) (*debt.Debt, error) {
	return nil, fmt.Errorf("não implementado")
}

func (f *fakeDebtRepository) GetAll(ctx context.Context, filter *debt.Filter, pagination *pkg.PaginationParams) ([]*debt.Debt, int64, error) {
	return f.debts, int64(len(f.debts)), nil
}

func (f *fakeDebtRepository) GetUnpaidBetween(ctx context.Context, from, to time.Time) ([]*debt.Debt, error) {
	return nil, nil
}

func (f *fakeDebtRepository) SumUnpaidBetween(ctx context.Context, from, to time.Time) (float64, error) {
	return 0, nil
}

func (f *fakeDebtRepository) ReplaceAll(ctx context.Context, debts []*debt.Debt) error {
	f.debts = debts
	return nil
}

type fakeCardRepository struct {
	cards   []*creditcard.CreditCard
	charges []*creditcard.CardCharge
}

func (f *fakeCardRepository) CreateCard(ctx context.Context, card *creditcard.CreditCard) error {
	f.cards = append(f.cards, card)
	return nil
}

func (f *fakeCardRepository) UpdateCard(ctx context.Context, card *creditcard.CreditCard) error {
	return nil
}

func (f *fakeCardRepository) DeleteCard(ctx context.Context, cardID ulid.ULID) error { return nil }

func (f *fakeCardRepository) GetCardByID(ctx context.Context, cardID ulid.ULID) (*creditcard.CreditCard, error) {
	return nil, fmt.Errorf("não implementado")
}

func (f *fakeCardRepository) GetCards(ctx context.Context, pagination *pkg.PaginationParams) ([]*creditcard.CreditCard, int64, error) {
	return f.cards, int64(len(f.cards)), nil
}

func (f *fakeCardRepository) CreateCharges(ctx context.Context, charges []*creditcard.CardCharge) error {
	f.charges = append(f.charges, charges...)
	return nil
}

func (f *fakeCardRepository) DeletePurchase(ctx context.Context, purchaseID ulid.ULID) error {
	return nil
}

func (f *fakeCardRepository) GetChargesInWindow(ctx context.Context, cardID ulid.ULID, opening, closing time.Time) ([]*creditcard.CardCharge, error) {
	return nil, nil
}

func (f *fakeCardRepository) GetChargesByCard(ctx context.Context, cardID ulid.ULID, pagination *pkg.PaginationParams) ([]*creditcard.CardCharge, int64, error) {
	var found []*creditcard.CardCharge
	for _, charge := range f.charges {
		if charge.CardId == cardID {
			found = append(found, charge)
		}
	}
	return found, int64(len(found)), nil
}

func (f *fakeCardRepository) GetPayment(ctx context.Context, cardID ulid.ULID, month, year int) (*creditcard.InvoicePayment, error) {
	return nil, fmt.Errorf("não encontrado")
}

func (f *fakeCardRepository) SavePayment(ctx context.Context, payment *creditcard.InvoicePayment) error {
	return nil
}

func (f *fakeCardRepository) DeletePayment(ctx context.Context, cardID ulid.ULID, month, year int) error {
	return nil
}

func (f *fakeCardRepository) ReplaceAllCards(ctx context.Context, cards []*creditcard.CreditCard) error {
	f.cards = cards
	return nil
}

func (f *fakeCardRepository) ReplaceAllCharges(ctx context.Context, charges []*creditcard.CardCharge) error {
	f.charges = charges
	return nil
}

type fakeBudgetRepository struct {
	goals     []*budget.BudgetGoal
	periodErr error
}

func (f *fakeBudgetRepository) Create(ctx context.Context, goal *budget.BudgetGoal) error {
	f.goals = append(f.goals, goal)
	return nil
}

func (f *fakeBudgetRepository) Update(ctx context.Context, goal *budget.BudgetGoal) error {
	return nil
}

func (f *fakeBudgetRepository) Delete(ctx context.Context, goalID ulid.ULID) error { return nil }

func (f *fakeBudgetRepository) GetByID(ctx context.Context, goalID ulid.ULID) (*budget.BudgetGoal, error) {
	return nil, fmt.Errorf("não implementado")
}

func (f *fakeBudgetRepository) GetByPeriod(ctx context.Context, month, year int, pagination *pkg.PaginationParams) ([]*budget.BudgetGoal, int64, error) {
	if f.periodErr != nil {
		return nil, 0, f.periodErr
	}
	return f.goals, int64(len(f.goals)), nil
}

func (f *fakeBudgetRepository) GetByCategory(ctx context.Context, categoryID ulid.ULID, month, year int) (*budget.BudgetGoal, error) {
	return nil, fmt.Errorf("não encontrada")
}

func (f *fakeBudgetRepository) GetRecurring(ctx context.Context) ([]*budget.BudgetGoal, error) {
	return nil, nil
}

func (f *fakeBudgetRepository) ReplaceAll(ctx context.Context, goals []*budget.BudgetGoal) error {
	f.goals = goals
	return nil
}

type fakeReportRepository struct {
	monthly *report.MonthlyReport
}

func (f *fakeReportRepository) GetMonthlyReport(ctx context.Context, month, year int) (*report.MonthlyReport, error) {
	if f.monthly != nil {
		return f.monthly, nil
	}
	return &report.MonthlyReport{Month: month, Year: year}, nil
}

func (f *fakeReportRepository) GetYearlyReport(ctx context.Context, year int) (*report.YearlyReport, error) {
	return &report.YearlyReport{Year: year}, nil
}

func (f *fakeReportRepository) GetCategoryReport(ctx context.Context, categoryID ulid.ULID, startDate, endDate time.Time) (*report.CategoryReport, error) {
	return &report.CategoryReport{CategoryId: categoryID}, nil
}

type reportFixture struct {
	service      *report.Service
	transactions *fakeTransactionRepository
	categories   *fakeCategoryRepository
	recurring    *fakeRecurringRepository
	debts        *fakeDebtRepository
	cards        *fakeCardRepository
	budgets      *fakeBudgetRepository
}

func newReportFixture() *reportFixture {
	fx := &reportFixture{
		transactions: &fakeTransactionRepository{},
		categories:   &fakeCategoryRepository{},
		recurring:    &fakeRecurringRepository{},
		debts:        &fakeDebtRepository{},
		cards:        &fakeCardRepository{},
		budgets:      &fakeBudgetRepository{},
	}
	fx.service = report.NewService(
		&fakeReportRepository{},
		fx.transactions,
		fx.categories,
		fx.recurring,
		fx.debts,
		fx.cards,
		fx.budgets,
	)
	return fx
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := dateutil.ParseDay(value)
	if err != nil {
		t.Fatalf("data inválida no teste %q: %v", value, err)
	}
	return parsed
}

func TestExportTransactionsCSVFormat(t *testing.T) {
	fx := newReportFixture()

	categoryID := pkg.GenerateULID()
	fx.categories.categories = append(fx.categories.categories, &transaction.Category{
		Id:   categoryID,
		Name: "Alimentação",
	})
	fx.transactions.txs = append(fx.transactions.txs, &transaction.Transaction{
		Id:          pkg.GenerateULID(),
		Type:        transaction.TypeExpense,
		CategoryId:  categoryID,
		Amount:      1234.56,
		Description: "Supermercado",
		Date:        day(t, "2025-03-15"),
	})

	data, err := fx.service.ExportTransactionsCSV(context.Background(), 3, 2025)
	if err != nil {
		t.Fatalf("erro ao exportar CSV: %v", err)
	}

	content := string(data)

	if !strings.HasPrefix(content, "\uFEFF") {
		t.Error("CSV deveria começar com BOM UTF-8")
	}

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(content, "\uFEFF")), "\n")
	if len(lines) != 2 {
		t.Fatalf("esperava cabeçalho e 1 linha, veio %d linhas", len(lines))
	}

	if lines[0] != "Data;Tipo;Categoria;Descrição;Observação;Valor" {
		t.Errorf("cabeçalho inesperado: %q", lines[0])
	}

	row := lines[1]
	if !strings.Contains(row, ";") {
		t.Error("separador deveria ser ponto e vírgula")
	}
	if !strings.Contains(row, "1234,56") {
		t.Errorf("valor deveria usar vírgula decimal, linha: %q", row)
	}
	if !strings.Contains(row, "2025-03-15") || !strings.Contains(row, "Despesa") || !strings.Contains(row, "Alimentação") {
		t.Errorf("linha não carrega os campos esperados: %q", row)
	}
}

func TestExportTransactionsCSVFiltersMonth(t *testing.T) {
	fx := newReportFixture()

	for _, date := range []string{"2025-03-01", "2025-03-20", "2025-04-01"} {
		fx.transactions.txs = append(fx.transactions.txs, &transaction.Transaction{
			Id:          pkg.GenerateULID(),
			Type:        transaction.TypeExpense,
			CategoryId:  pkg.GenerateULID(),
			Amount:      10,
			Description: "Compra",
			Date:        day(t, date),
		})
	}

	data, err := fx.service.ExportTransactionsCSV(context.Background(), 3, 2025)
	if err != nil {
		t.Fatalf("erro ao exportar CSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("esperava cabeçalho e 2 linhas de março, veio %d linhas", len(lines))
	}
}

func TestExportMonthlyJSONCarriesTimestamp(t *testing.T) {
	fx := newReportFixture()

	data, err := fx.service.ExportMonthlyJSON(context.Background(), 3, 2025)
	if err != nil {
		t.Fatalf("erro ao exportar JSON: %v", err)
	}

	var snapshot report.MonthlySnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		t.Fatalf("JSON exportado inválido: %v", err)
	}

	if snapshot.GeneratedAt.IsZero() {
		t.Error("snapshot deveria carregar o instante de geração")
	}
	if snapshot.Report == nil || snapshot.Report.Month != 3 || snapshot.Report.Year != 2025 {
		t.Error("snapshot deveria embutir o relatório do período pedido")
	}
	if !strings.Contains(string(data), "\n") {
		t.Error("JSON deveria ser identado")
	}
}

func TestExportMonthlyHTMLRendersReport(t *testing.T) {
	fx := newReportFixture()
	fx.service.Repository = &fakeReportRepository{monthly: &report.MonthlyReport{
		Month:         3,
		Year:          2025,
		TotalIncome:   5000.00,
		TotalExpenses: 3200.50,
		NetBalance:    1799.50,
		ExpensesByCategory: []report.CategoryAmount{
			{CategoryName: "Alimentação", Amount: 1200.00, Percentage: 37.5},
		},
	}}

	data, err := fx.service.ExportMonthlyHTML(context.Background(), 3, 2025)
	if err != nil {
		t.Fatalf("erro ao exportar HTML: %v", err)
	}

	content := string(data)
	for _, want := range []string{"<!DOCTYPE html>", "03/2025", "R$ 5000,00", "R$ 3200,50", "Alimentação"} {
		if !strings.Contains(content, want) {
			t.Errorf("HTML não contém %q", want)
		}
	}
}

func TestBackupRoundTrip(t *testing.T) {
	fx := newReportFixture()

	categoryID := pkg.GenerateULID()
	fx.categories.categories = append(fx.categories.categories, &transaction.Category{
		Id:   categoryID,
		Name: "Moradia",
	})
	fx.transactions.txs = append(fx.transactions.txs, &transaction.Transaction{
		Id:          pkg.GenerateULID(),
		Type:        transaction.TypeExpense,
		CategoryId:  categoryID,
		Amount:      1500.00,
		Description: "Aluguel",
		Date:        day(t, "2025-03-05"),
	})
	fx.debts.debts = append(fx.debts.debts, &debt.Debt{
		Id:          pkg.GenerateULID(),
		CategoryId:  categoryID,
		Description: "Empréstimo",
		Amount:      500.00,
		DueDate:     day(t, "2025-03-20"),
	})

	data, err := fx.service.ExportBackup(context.Background())
	if err != nil {
		t.Fatalf("erro ao exportar backup: %v", err)
	}

	// Restaura em um ambiente limpo.
	restored := newReportFixture()
	backup, err := restored.service.ImportBackup(context.Background(), data)
	if err != nil {
		t.Fatalf("erro ao importar backup: %v", err)
	}

	if len(backup.Transactions) != 1 || len(backup.Categories) != 1 || len(backup.Debts) != 1 {
		t.Errorf("backup restaurado com %d transações, %d categorias e %d dívidas, esperado 1 de cada",
			len(backup.Transactions), len(backup.Categories), len(backup.Debts))
	}
	if len(restored.transactions.txs) != 1 {
		t.Error("importação deveria substituir a coleção de transações")
	}
	if restored.transactions.txs[0].Description != "Aluguel" {
		t.Errorf("transação restaurada = %q, esperado Aluguel", restored.transactions.txs[0].Description)
	}
}

func TestExportBackupFailsWhenCollectionQueryFails(t *testing.T) {
	// Um backup sem uma coleção inteira não pode passar por bem-sucedido:
	// importá-lo depois apagaria os dados reais daquela coleção.
	fx := newReportFixture()
	fx.budgets.periodErr = fmt.Errorf("conexão perdida")

	if _, err := fx.service.ExportBackup(context.Background()); err == nil {
		t.Error("esperava erro quando a consulta de metas falha")
	}
}

func TestImportBackupRejectsInvalidPayload(t *testing.T) {
	fx := newReportFixture()

	if _, err := fx.service.ImportBackup(context.Background(), []byte("{invalid")); err == nil {
		t.Error("esperava erro para JSON malformado")
	}

	wrongVersion, _ := json.Marshal(map[string]any{"version": 99})
	if _, err := fx.service.ImportBackup(context.Background(), wrongVersion); err == nil {
		t.Error("esperava erro para versão de backup não suportada")
	}
}
