package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"Fluxo/internal/domain/transaction"
	appErrors "Fluxo/internal/errors"
	"Fluxo/internal/pkg/dateutil"
)

// utf8BOM na frente do CSV faz planilhas reconhecerem a acentuação.
const utf8BOM = "\uFEFF"

// formatAmount formata valores no padrão brasileiro, com vírgula decimal.
func formatAmount(value float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", value), ".", ",", 1)
}

// ExportTransactionsCSV gera o extrato de um mês em CSV com separador de
// ponto e vírgula e BOM UTF-8, pronto para abrir em planilha.
func (s *Service) ExportTransactionsCSV(ctx context.Context, month, year int) ([]byte, error) {
	if month < 1 || month > 12 {
		return nil, appErrors.NewValidationError("month", "deve estar entre 1 e 12")
	}

	txs, _, err := s.TransactionRepo.GetAll(ctx, &transaction.Filter{Month: month, Year: year}, nil)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	categories := s.categoryNames(ctx)

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	writer := csv.NewWriter(&buf)
	writer.Comma = ';'

	header := []string{"Data", "Tipo", "Categoria", "Descrição", "Observação", "Valor"}
	if err := writer.Write(header); err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	for _, tx := range txs {
		txType := "Receita"
		if tx.Type == transaction.TypeExpense {
			txType = "Despesa"
		}

		record := []string{
			dateutil.FormatDay(tx.Date),
			txType,
			categories[tx.CategoryId.String()],
			tx.Description,
			tx.Note,
			formatAmount(tx.Amount),
		}
		if err := writer.Write(record); err != nil {
			return nil, appErrors.ErrInternalServer.WithError(err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return buf.Bytes(), nil
}

// MonthlySnapshot é o relatório mensal serializado com carimbo de geração.
type MonthlySnapshot struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Report      *MonthlyReport `json:"report"`
}

// ExportMonthlyJSON serializa o relatório mensal em JSON identado.
func (s *Service) ExportMonthlyJSON(ctx context.Context, month, year int) ([]byte, error) {
	monthly, err := s.GetMonthlyReport(ctx, month, year)
	if err != nil {
		return nil, err
	}

	snapshot := &MonthlySnapshot{
		GeneratedAt: time.Now(),
		Report:      monthly,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return data, nil
}

var monthlyReportTemplate = template.Must(template.New("monthly").Funcs(template.FuncMap{
	"amount": formatAmount,
}).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Relatório {{.Month}}/{{.Year}}</title>
</head>
<body>
<h1>Relatório mensal {{printf "%02d" .Month}}/{{.Year}}</h1>
<table>
<tr><td>Receitas</td><td>R$ {{amount .TotalIncome}}</td></tr>
<tr><td>Despesas</td><td>R$ {{amount .TotalExpenses}}</td></tr>
<tr><td>Saldo</td><td>R$ {{amount .NetBalance}}</td></tr>
<tr><td>Taxa de poupança</td><td>{{amount .SavingsRate}}%</td></tr>
</table>
<h2>Despesas por categoria</h2>
<table>
<tr><th>Categoria</th><th>Valor</th><th>%</th></tr>
{{range .ExpensesByCategory}}<tr><td>{{.CategoryName}}</td><td>R$ {{amount .Amount}}</td><td>{{amount .Percentage}}%</td></tr>
{{end}}</table>
<h2>Maiores despesas</h2>
<table>
<tr><th>Descrição</th><th>Categoria</th><th>Valor</th></tr>
{{range .TopExpenses}}<tr><td>{{.Description}}</td><td>{{.Category}}</td><td>R$ {{amount .Amount}}</td></tr>
{{end}}</table>
</body>
</html>
`))

// ExportMonthlyHTML monta o relatório mensal como página HTML autocontida.
func (s *Service) ExportMonthlyHTML(ctx context.Context, month, year int) ([]byte, error) {
	monthly, err := s.GetMonthlyReport(ctx, month, year)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := monthlyReportTemplate.Execute(&buf, monthly); err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return buf.Bytes(), nil
}

func (s *Service) categoryNames(ctx context.Context) map[string]string {
	names := make(map[string]string)
	categories, err := s.CategoryRepo.List(ctx)
	if err != nil {
		return names
	}
	for _, category := range categories {
		names[category.Id.String()] = category.Name
	}
	return names
}
