package creditcard_test

import (
	"testing"
	"time"

	"Fluxo/internal/domain/creditcard"
	"Fluxo/internal/pkg/dateutil"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := dateutil.ParseDay(value)
	if err != nil {
		t.Fatalf("data inválida no teste %q: %v", value, err)
	}
	return parsed
}

func TestClosingDateClampsShortMonths(t *testing.T) {
	cases := []struct {
		closingDay int
		month      time.Month
		year       int
		want       string
	}{
		{31, time.January, 2025, "2025-01-31"},
		{31, time.February, 2025, "2025-02-28"},
		{31, time.February, 2024, "2024-02-29"},
		{30, time.April, 2025, "2025-04-30"},
		{15, time.June, 2025, "2025-06-15"},
	}

	for _, tc := range cases {
		got := creditcard.ClosingDate(tc.closingDay, tc.month, tc.year)
		if !dateutil.SameDay(got, day(t, tc.want)) {
			t.Errorf("ClosingDate(%d, %v, %d) = %s, esperado %s",
				tc.closingDay, tc.month, tc.year, dateutil.FormatDay(got), tc.want)
		}
	}
}

func TestDueDateRollsToNextMonthWhenBeforeClosing(t *testing.T) {
	// Fecha dia 25, vence dia 10: a fatura que fecha em março vence em abril.
	got := creditcard.DueDate(10, 25, time.March, 2025)
	if !dateutil.SameDay(got, day(t, "2025-04-10")) {
		t.Errorf("vencimento = %s, esperado 2025-04-10", dateutil.FormatDay(got))
	}

	// Fecha dia 5, vence dia 15 do mesmo mês.
	got = creditcard.DueDate(15, 5, time.March, 2025)
	if !dateutil.SameDay(got, day(t, "2025-03-15")) {
		t.Errorf("vencimento = %s, esperado 2025-03-15", dateutil.FormatDay(got))
	}
}

func TestDueDateFebruaryEdge(t *testing.T) {
	// Fecha dia 28, vence dia 5: fatura de fevereiro/2025 fecha em 28/02 e
	// vence em 05/03.
	closing := creditcard.ClosingDate(28, time.February, 2025)
	if !dateutil.SameDay(closing, day(t, "2025-02-28")) {
		t.Fatalf("fechamento = %s, esperado 2025-02-28", dateutil.FormatDay(closing))
	}

	due := creditcard.DueDate(5, 28, time.February, 2025)
	if !dateutil.SameDay(due, day(t, "2025-03-05")) {
		t.Errorf("vencimento = %s, esperado 2025-03-05", dateutil.FormatDay(due))
	}
}

func TestBillingWindowIsHalfOpen(t *testing.T) {
	opening, closing := creditcard.BillingWindow(25, time.March, 2025)

	if !dateutil.SameDay(opening, day(t, "2025-02-25")) {
		t.Errorf("abertura = %s, esperado 2025-02-25", dateutil.FormatDay(opening))
	}
	if !dateutil.SameDay(closing, day(t, "2025-03-25")) {
		t.Errorf("fechamento = %s, esperado 2025-03-25", dateutil.FormatDay(closing))
	}

	// O dia da abertura pertence à fatura anterior; o dia do fechamento
	// pertence a esta.
	if creditcard.InWindow(day(t, "2025-02-25"), opening, closing) {
		t.Error("parcela no dia da abertura não deveria entrar na janela")
	}
	if !creditcard.InWindow(day(t, "2025-02-26"), opening, closing) {
		t.Error("parcela no dia seguinte à abertura deveria entrar na janela")
	}
	if !creditcard.InWindow(day(t, "2025-03-25"), opening, closing) {
		t.Error("parcela no dia do fechamento deveria entrar na janela")
	}
	if creditcard.InWindow(day(t, "2025-03-26"), opening, closing) {
		t.Error("parcela após o fechamento não deveria entrar na janela")
	}
}

func TestInvoiceReferenceAfterClosingFallsNextMonth(t *testing.T) {
	// Fecha dia 25: compra no dia 26 de março pertence à fatura de abril,
	// que vence em maio quando o vencimento é dia 10.
	month, year := creditcard.InvoiceReference(day(t, "2025-03-26"), 25)
	if month != time.April || year != 2025 {
		t.Fatalf("referência = %v/%d, esperado abril/2025", month, year)
	}

	due := creditcard.DueDate(10, 25, month, year)
	if !dateutil.SameDay(due, day(t, "2025-05-10")) {
		t.Errorf("vencimento = %s, esperado 2025-05-10", dateutil.FormatDay(due))
	}
}

func TestInvoiceReferenceOnClosingDayStaysInMonth(t *testing.T) {
	month, year := creditcard.InvoiceReference(day(t, "2025-03-25"), 25)
	if month != time.March || year != 2025 {
		t.Errorf("referência = %v/%d, esperado março/2025", month, year)
	}
}

func TestInvoiceReferenceDecemberRollsYear(t *testing.T) {
	month, year := creditcard.InvoiceReference(day(t, "2025-12-28"), 25)
	if month != time.January || year != 2026 {
		t.Errorf("referência = %v/%d, esperado janeiro/2026", month, year)
	}
}
