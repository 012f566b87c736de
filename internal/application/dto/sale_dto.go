package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea de venta. Sin precio se usa el precio vigente del producto.
type SaleLineRequest struct {
	ProductID string           `json:"producto" validate:"required,uuid"`
	Quantity  int              `json:"cantidad" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"precio_unitario" validate:"omitempty,gte=0"`
}

// CreateSaleRequest entrada para crear una venta con sus líneas.
// Empleado vacío = empleado del usuario autenticado.
type CreateSaleRequest struct {
	Channel    string            `json:"canal_venta" validate:"required,oneof=nequi daviplata bancolombia presencial tarjeta"`
	EmployeeID string            `json:"empleado" validate:"omitempty,uuid"`
	Discount   decimal.Decimal   `json:"descuento" validate:"gte=0"`
	Notes      string            `json:"notas" validate:"max=1000"`
	Lines      []SaleLineRequest `json:"detalles" validate:"required,min=1,dive"`
}

// SaleListRequest filtros de listado.
type SaleListRequest struct {
	EmployeeID string
	Channel    string
	From       *time.Time
	To         *time.Time
	PageRequest
}

// SaleLineResponse línea de venta.
type SaleLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"producto"`
	ProductName string          `json:"producto_nombre"`
	Quantity    int             `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID           string             `json:"id"`
	Date         time.Time          `json:"fecha"`
	Channel      string             `json:"canal_venta"`
	EmployeeID   string             `json:"empleado"`
	EmployeeName string             `json:"empleado_nombre"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	Discount     decimal.Decimal    `json:"descuento"`
	Total        decimal.Decimal    `json:"total"`
	Notes        string             `json:"notas"`
	Lines        []SaleLineResponse `json:"detalles,omitempty"`
}
