package recurring_test

import (
	"testing"
	"time"

	"Fluxo/internal/domain/recurring"
	"Fluxo/internal/domain/transaction"
	"Fluxo/internal/pkg"
	"Fluxo/internal/pkg/dateutil"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dateutil.ParseDay(s)
	if err != nil {
		t.Fatalf("data de teste inválida %q: %v", s, err)
	}
	return d
}

func TestNextOccurrenceDaily(t *testing.T) {
	got := recurring.NextOccurrence(day(t, "2025-03-10"), recurring.FrequencyDaily, 0, 0)
	if dateutil.FormatDay(got) != "2025-03-11" {
		t.Errorf("daily: %s", dateutil.FormatDay(got))
	}
}

func TestNextOccurrenceWeeklyLandsOnAnchor(t *testing.T) {
	// 2025-03-10 é segunda-feira (weekday 1).
	cases := []struct {
		from   string
		anchor int
		want   string
	}{
		{"2025-03-10", 1, "2025-03-17"}, // mesma âncora: +7
		{"2025-03-10", 3, "2025-03-12"}, // quarta: +2
		{"2025-03-10", 0, "2025-03-16"}, // domingo: +6
		{"2025-03-10", 2, "2025-03-11"}, // terça: +1
	}

	for _, tc := range cases {
		from := day(t, tc.from)
		got := recurring.NextOccurrence(from, recurring.FrequencyWeekly, 0, tc.anchor)
		if dateutil.FormatDay(got) != tc.want {
			t.Errorf("weekly(%s, anchor=%d) = %s, esperava %s", tc.from, tc.anchor, dateutil.FormatDay(got), tc.want)
		}
		if int(got.Weekday()) != tc.anchor {
			t.Errorf("weekly(%s): weekday = %d, esperava %d", tc.from, int(got.Weekday()), tc.anchor)
		}
		if diff := dateutil.DaysBetween(from, got); diff < 1 || diff > 7 {
			t.Errorf("weekly(%s): avanço de %d dias fora de 1..7", tc.from, diff)
		}
	}
}

func TestNextOccurrenceMonthlyClampsAnchor(t *testing.T) {
	cases := []struct {
		from   string
		anchor int
		want   string
	}{
		{"2025-01-31", 31, "2025-02-28"},
		{"2024-01-31", 31, "2024-02-29"},
		{"2025-02-28", 31, "2025-03-31"},
		{"2025-03-15", 5, "2025-04-05"},
		{"2025-04-30", 30, "2025-05-30"},
	}

	for _, tc := range cases {
		got := recurring.NextOccurrence(day(t, tc.from), recurring.FrequencyMonthly, tc.anchor, 0)
		if dateutil.FormatDay(got) != tc.want {
			t.Errorf("monthly(%s, anchor=%d) = %s, esperava %s", tc.from, tc.anchor, dateutil.FormatDay(got), tc.want)
		}
	}
}

func TestNextOccurrenceYearly(t *testing.T) {
	got := recurring.NextOccurrence(day(t, "2024-02-29"), recurring.FrequencyYearly, 0, 0)
	if dateutil.FormatDay(got) != "2025-02-28" {
		t.Errorf("yearly bissexto: %s", dateutil.FormatDay(got))
	}
}

func TestFirstOccurrenceCountsStartDate(t *testing.T) {
	// Início já na âncora: a primeira ocorrência é a própria data de início.
	got := recurring.FirstOccurrence(day(t, "2025-01-05"), recurring.FrequencyMonthly, 5, 0)
	if dateutil.FormatDay(got) != "2025-01-05" {
		t.Errorf("FirstOccurrence = %s, esperava 2025-01-05", dateutil.FormatDay(got))
	}

	// Início depois da âncora: próxima cai no mês seguinte.
	got = recurring.FirstOccurrence(day(t, "2025-01-10"), recurring.FrequencyMonthly, 5, 0)
	if dateutil.FormatDay(got) != "2025-02-05" {
		t.Errorf("FirstOccurrence = %s, esperava 2025-02-05", dateutil.FormatDay(got))
	}
}

func newRule(t *testing.T, start, end string, anchor int) *recurring.RecurringTransaction {
	t.Helper()
	rule := &recurring.RecurringTransaction{
		Id:          pkg.GenerateULID(),
		Type:        transaction.TypeExpense,
		CategoryId:  pkg.GenerateULID(),
		Amount:      100,
		Description: "assinatura",
		Frequency:   recurring.FrequencyMonthly,
		DayOfMonth:  anchor,
		StartDate:   day(t, start),
		IsActive:    true,
	}
	if end != "" {
		e := day(t, end)
		rule.EndDate = &e
	}
	return rule
}

func TestExpandMonth(t *testing.T) {
	rules := []*recurring.RecurringTransaction{
		newRule(t, "2025-01-05", "", 5),
		newRule(t, "2025-06-01", "", 10),           // começa depois do mês alvo
		newRule(t, "2024-01-01", "2025-02-28", 15), // termina antes do mês alvo
		newRule(t, "2025-01-31", "", 31),           // âncora 31, clamp
	}
	inactive := newRule(t, "2025-01-01", "", 1)
	inactive.IsActive = false
	rules = append(rules, inactive)

	occurrences := recurring.ExpandMonth(rules, time.April, 2025)

	if len(occurrences) != 2 {
		t.Fatalf("esperava 2 ocorrências, veio %d", len(occurrences))
	}
	if got := dateutil.FormatDay(occurrences[0].Date); got != "2025-04-05" {
		t.Errorf("ocorrência[0] = %s", got)
	}
	if got := dateutil.FormatDay(occurrences[1].Date); got != "2025-04-30" {
		t.Errorf("âncora 31 deveria clamp em 2025-04-30, veio %s", got)
	}
}

func TestExpandMonthIsPure(t *testing.T) {
	rule := newRule(t, "2025-01-05", "", 5)
	before := rule.NextDue

	recurring.ExpandMonth([]*recurring.RecurringTransaction{rule}, time.March, 2025)

	if !rule.NextDue.Equal(before) {
		t.Error("ExpandMonth não pode mutar NextDue")
	}
}
