package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canales de venta.
const (
	ChannelNequi       = "nequi"
	ChannelDaviplata   = "daviplata"
	ChannelBancolombia = "bancolombia"
	ChannelInStore     = "presencial"
	ChannelCard        = "tarjeta"
)

// ValidChannel indica si el canal es soportado.
func ValidChannel(ch string) bool {
	switch ch {
	case ChannelNequi, ChannelDaviplata, ChannelBancolombia, ChannelInStore, ChannelCard:
		return true
	}
	return false
}

// Sale encabezado de una venta. Subtotal = Σ líneas; Total = Subtotal - Discount.
type Sale struct {
	ID           string
	Channel      string
	EmployeeID   string
	EmployeeName string // solo lectura (JOIN)
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	Total        decimal.Decimal
	Date         time.Time
	Notes        string
	Lines        []SaleLine
}

// SaleLine una línea de venta. Inmutable una vez creada.
type SaleLine struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string // solo lectura (JOIN)
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
