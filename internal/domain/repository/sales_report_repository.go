package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductRow agregado por producto dentro de la ventana.
type TopProductRow struct {
	ProductID   string
	ProductName string
	Quantity    int
	Revenue     decimal.Decimal // Σ subtotal de línea
}

// MonthlyRevenueRow total vendido en un mes calendario.
type MonthlyRevenueRow struct {
	Month time.Time // primer día del mes, en la zona horaria pedida
	Total decimal.Decimal
}

// SalesReportRepository consultas de solo lectura sobre el histórico de ventas.
// La ventana [from, to] es cerrada en ambos extremos.
type SalesReportRepository interface {
	// GetTotals suma total y descuento de las ventas de la ventana.
	GetTotals(ctx context.Context, from, to time.Time) (revenue, discounts decimal.Decimal, err error)
	// GetTopProducts ordena por cantidad desc, ingresos desc, nombre asc.
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductRow, error)
	// GetMonthlyRevenue agrupa por mes calendario en loc, en orden cronológico.
	GetMonthlyRevenue(ctx context.Context, from, to time.Time, loc *time.Location) ([]MonthlyRevenueRow, error)
}
