package ports

import "github.com/shopspring/decimal"

// BusinessMetrics contadores de negocio (ventas, movimientos, stock).
type BusinessMetrics interface {
	SaleCreated(channel string, total decimal.Decimal)
	MovementRecorded(kind string, clamped bool)
	NegativeStock(productID string)
}

// NoopMetrics descarta las métricas.
type NoopMetrics struct{}

func (NoopMetrics) SaleCreated(string, decimal.Decimal) {}
func (NoopMetrics) MovementRecorded(string, bool)       {}
func (NoopMetrics) NegativeStock(string)                {}
