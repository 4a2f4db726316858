package creditcard

import (
	"time"

	"Fluxo/internal/pkg/dateutil"

	"github.com/oklog/ulid/v2"
)

// Invoice é uma visão derivada, recalculada a cada leitura: o conjunto de
// parcelas do cartão cuja data cai em (fechamento anterior, fechamento atual].
// Apenas a marcação de pagamento é persistida.
type Invoice struct {
	CardId      ulid.ULID     `json:"cardId"`
	Month       int           `json:"month"`
	Year        int           `json:"year"`
	OpeningDate time.Time     `json:"openingDate"`
	ClosingDate time.Time     `json:"closingDate"`
	DueDate     time.Time     `json:"dueDate"`
	Total       float64       `json:"total"`
	Paid        bool          `json:"paid"`
	PaidAt      *time.Time    `json:"paidAt,omitempty"`
	Charges     []*CardCharge `json:"charges"`
}

// ClosingDate calcula a data de fechamento da fatura de referência
// (mês, ano), com clamp para o último dia de meses curtos.
func ClosingDate(closingDay int, month time.Month, year int) time.Time {
	return dateutil.ClampDay(year, month, closingDay)
}

// DueDate calcula o vencimento da fatura que fecha em (mês, ano).
// Quando dueDay <= closingDay, o vencimento rola para o mês seguinte ao do
// fechamento (cartões que fecham no fim do mês e vencem no início do outro).
func DueDate(dueDay, closingDay int, month time.Month, year int) time.Time {
	if dueDay <= closingDay {
		next := dateutil.AddMonths(dateutil.Date(year, month, 1), 1)
		return dateutil.ClampDay(next.Year(), next.Month(), dueDay)
	}
	return dateutil.ClampDay(year, month, dueDay)
}

// BillingWindow retorna os limites da janela da fatura de referência
// (mês, ano): aberta em opening (exclusivo) e fechada em closing (inclusivo).
// Uma parcela datada exatamente no dia de fechamento pertence à fatura que
// fecha, não à seguinte.
func BillingWindow(closingDay int, month time.Month, year int) (opening, closing time.Time) {
	closing = ClosingDate(closingDay, month, year)
	previous := dateutil.AddMonths(dateutil.Date(year, month, 1), -1)
	opening = ClosingDate(closingDay, previous.Month(), previous.Year())
	return opening, closing
}

// InWindow informa se a data pertence à janela half-open (opening, closing].
func InWindow(date, opening, closing time.Time) bool {
	return dateutil.After(date, opening) && !dateutil.After(date, closing)
}

// InvoiceReference localiza a fatura de referência (mês, ano) que contém a
// data de uma parcela, dado o dia de fechamento do cartão.
func InvoiceReference(chargeDate time.Time, closingDay int) (time.Month, int) {
	closing := ClosingDate(closingDay, chargeDate.Month(), chargeDate.Year())
	if dateutil.After(chargeDate, closing) {
		next := dateutil.AddMonths(dateutil.StartOfMonth(chargeDate), 1)
		return next.Month(), next.Year()
	}
	return chargeDate.Month(), chargeDate.Year()
}
