package reports

import (
	"fmt"
	"time"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
)

// DefaultPeriod periodo usado cuando el caller no indica uno.
const DefaultPeriod = "1m"

var periodMonths = map[string]int{
	"1m":  1,
	"3m":  3,
	"6m":  6,
	"12m": 12,
}

// ParsePeriod traduce el código de periodo a meses. Vacío = DefaultPeriod.
func ParsePeriod(code string) (int, error) {
	if code == "" {
		code = DefaultPeriod
	}
	n, ok := periodMonths[code]
	if !ok {
		return 0, fmt.Errorf("%w: %q (use 1m, 3m, 6m o 12m)", domain.ErrInvalidPeriod, code)
	}
	return n, nil
}

// Window ventana [now - meses, now] en meses calendario.
func Window(now time.Time, months int) (from, to time.Time) {
	return monthsBefore(now, months), now
}

// monthsBefore resta meses sin el desborde de AddDate: el día se recorta al último
// del mes destino (31-mar menos 1 mes = 28-feb, no 3-mar).
func monthsBefore(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()-time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	return time.Date(first.Year(), first.Month(), min(t.Day(), lastDay),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
