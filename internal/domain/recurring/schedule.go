package recurring

import (
	"time"

	"Fluxo/internal/domain/transaction"
	"Fluxo/internal/pkg/dateutil"

	"github.com/oklog/ulid/v2"
)

// NextOccurrence calcula a ocorrência seguinte a partir de uma data.
// Âncoras curtas sempre arredondam para baixo (dia 31 em mês de 30 dias cai
// no dia 30), nunca rolam para o mês seguinte.
func NextOccurrence(from time.Time, frequency FrequencyType, dayOfMonth, dayOfWeek int) time.Time {
	from = dateutil.Truncate(from)

	switch frequency {
	case FrequencyDaily:
		return dateutil.AddDays(from, 1)

	case FrequencyWeekly:
		// Avança entre 1 e 7 dias para cair exatamente no dia da semana âncora.
		daysUntil := (dayOfWeek - int(from.Weekday()) + 7) % 7
		if daysUntil == 0 {
			daysUntil = 7
		}
		return dateutil.AddDays(from, daysUntil)

	case FrequencyMonthly:
		next := dateutil.AddMonths(from, 1)
		if dayOfMonth >= 1 {
			next = dateutil.ClampDay(next.Year(), next.Month(), dayOfMonth)
		}
		return next

	case FrequencyYearly:
		return dateutil.AddYears(from, 1)

	default:
		return dateutil.AddMonths(from, 1)
	}
}

// FirstOccurrence calcula a primeira ocorrência em ou após a data de início,
// respeitando a âncora. Diferente de NextOccurrence, a própria data de início
// conta quando ela já cai na âncora.
func FirstOccurrence(start time.Time, frequency FrequencyType, dayOfMonth, dayOfWeek int) time.Time {
	start = dateutil.Truncate(start)

	switch frequency {
	case FrequencyWeekly:
		daysUntil := (dayOfWeek - int(start.Weekday()) + 7) % 7
		return dateutil.AddDays(start, daysUntil)

	case FrequencyMonthly:
		if dayOfMonth < 1 {
			return start
		}
		anchored := dateutil.ClampDay(start.Year(), start.Month(), dayOfMonth)
		if anchored.Before(start) {
			next := dateutil.AddMonths(start, 1)
			anchored = dateutil.ClampDay(next.Year(), next.Month(), dayOfMonth)
		}
		return anchored

	default:
		return start
	}
}

// Occurrence é uma transação virtual projetada para um mês: não existe no
// log de transações e não altera o estado da regra.
type Occurrence struct {
	RecurringId ulid.ULID         `json:"recurringId"`
	Type        transaction.Types `json:"type"`
	CategoryId  ulid.ULID         `json:"categoryId"`
	Amount      float64           `json:"amount"`
	Description string            `json:"description"`
	Date        time.Time         `json:"date"`
}

// ExpandMonth projeta uma ocorrência virtual por regra ativa cuja janela
// [início, fim] intercepta o mês alvo, datada no dia âncora (com clamp para
// o último dia do mês). Projeção pura: não consulta o log nem muta regras.
func ExpandMonth(rules []*RecurringTransaction, month time.Month, year int) []Occurrence {
	monthStart := dateutil.Date(year, month, 1)
	monthEnd := dateutil.EndOfMonth(monthStart)

	occurrences := make([]Occurrence, 0, len(rules))
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		if dateutil.After(rule.StartDate, monthEnd) {
			continue
		}
		if rule.EndDate != nil && dateutil.Before(*rule.EndDate, monthStart) {
			continue
		}

		anchor := rule.DayOfMonth
		if anchor < 1 {
			anchor = rule.StartDate.Day()
		}

		occurrences = append(occurrences, Occurrence{
			RecurringId: rule.Id,
			Type:        rule.Type,
			CategoryId:  rule.CategoryId,
			Amount:      rule.Amount,
			Description: rule.Description,
			Date:        dateutil.ClampDay(year, month, anchor),
		})
	}

	return occurrences
}
