package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportTotals totales de la ventana.
type ReportTotals struct {
	Revenue   decimal.Decimal `json:"ingresos"`
	Discounts decimal.Decimal `json:"descuentos"`
}

// TopProductResponse producto más vendido.
type TopProductResponse struct {
	ProductID   string          `json:"producto_id"`
	ProductName string          `json:"producto_nombre"`
	Quantity    int             `json:"cantidad_vendida"`
	Revenue     decimal.Decimal `json:"ingresos"`
}

// MonthlyPoint total vendido en un mes ("2006-01").
type MonthlyPoint struct {
	Month string          `json:"mes"`
	Total decimal.Decimal `json:"total"`
}

// SalesSummaryResponse resumen de ventas de un periodo.
type SalesSummaryResponse struct {
	Period      string               `json:"periodo"`
	From        time.Time            `json:"rango_desde"`
	To          time.Time            `json:"rango_hasta"`
	Totals      ReportTotals         `json:"totales"`
	TopProducts []TopProductResponse `json:"top_productos"`
	Series      []MonthlyPoint       `json:"serie_temporal"`
}
