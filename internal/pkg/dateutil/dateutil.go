// Package dateutil implementa a aritmética de datas civis usada por todo o
// domínio. Todas as datas de calendário são representadas como time.Time à
// meia-noite UTC, construídas a partir dos componentes ano/mês/dia — nunca
// interpretadas como instantes — para que o dia nunca mude com o fuso do host.
package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	appErrors "Fluxo/internal/errors"
)

const DayLayout = "2006-01-02"

// ParseDay converte "YYYY-MM-DD" em uma data civil.
// Entrada malformada é erro de validação, nunca coagida silenciosamente.
func ParseDay(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, appErrors.ErrInvalidDate.WithError(fmt.Errorf("formato esperado YYYY-MM-DD, recebido %q", s))
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return time.Time{}, appErrors.ErrInvalidDate.WithError(fmt.Errorf("ano inválido em %q", s))
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, appErrors.ErrInvalidDate.WithError(fmt.Errorf("mês inválido em %q", s))
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, appErrors.ErrInvalidDate.WithError(fmt.Errorf("dia inválido em %q", s))
	}
	if day > DaysInMonth(year, time.Month(month)) {
		return time.Time{}, appErrors.ErrInvalidDate.WithError(fmt.Errorf("dia %d não existe em %04d-%02d", day, year, month))
	}

	return Date(year, time.Month(month), day), nil
}

// FormatDay é o inverso exato de ParseDay para qualquer data civil válida.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// Date constrói a data civil a partir dos componentes.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate descarta o horário, mantendo apenas o dia civil.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Today retorna o dia civil corrente no relógio local.
func Today() time.Time {
	now := time.Now()
	return Date(now.Year(), now.Month(), now.Day())
}

func AddDays(t time.Time, days int) time.Time {
	return Truncate(t).AddDate(0, 0, days)
}

// AddMonths avança meses inteiros preservando o dia, com clamp para o último
// dia do mês resultante. Jan 31 + 1 mês = Fev 28 (ou 29), nunca Mar 2/3.
func AddMonths(t time.Time, months int) time.Time {
	t = Truncate(t)
	year, month, day := t.Date()
	first := Date(year, month, 1).AddDate(0, months, 0)
	return ClampDay(first.Year(), first.Month(), day)
}

func AddYears(t time.Time, years int) time.Time {
	return AddMonths(t, years*12)
}

// ClampDay monta a data limitando o dia ao último dia válido do mês.
func ClampDay(year int, month time.Month, day int) time.Time {
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return Date(year, month, day)
}

func DaysInMonth(year int, month time.Month) int {
	return Date(year, month+1, 1).AddDate(0, 0, -1).Day()
}

func StartOfMonth(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), 1)
}

func EndOfMonth(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), DaysInMonth(t.Year(), t.Month()))
}

// DaysBetween retorna b - a em dias civis inteiros.
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}

func SameDay(a, b time.Time) bool {
	return Truncate(a).Equal(Truncate(b))
}

// Before compara apenas o dia civil, ignorando horário.
func Before(a, b time.Time) bool {
	return Truncate(a).Before(Truncate(b))
}

// After compara apenas o dia civil, ignorando horário.
func After(a, b time.Time) bool {
	return Truncate(a).After(Truncate(b))
}
