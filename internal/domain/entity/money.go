package entity

import "github.com/shopspring/decimal"

// MoneyPlaces decimales de los importes persistidos (NUMERIC(12,2)).
const MoneyPlaces = 2

var maxMoney = decimal.New(1, 10) // 10^10, primer valor que no cabe en NUMERIC(12,2)

// MoneyError describe por qué un importe no es válido; vacío si lo es.
// Se rechazan negativos, más de dos decimales y valores fuera de NUMERIC(12,2): la DB
// redondea cada columna por separado y subtotal = Σ líneas dejaría de cumplirse.
func MoneyError(d decimal.Decimal) string {
	switch {
	case d.IsNegative():
		return "no puede ser negativo"
	case !d.Equal(d.Round(MoneyPlaces)):
		return "admite como máximo 2 decimales"
	case d.GreaterThanOrEqual(maxMoney):
		return "supera el importe máximo permitido"
	default:
		return ""
	}
}
