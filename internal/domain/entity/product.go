package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinStock es el stock mínimo asignado cuando el producto no indica uno.
const DefaultMinStock = 5

// Product representa una prenda del catálogo.
// Stock solo cambia vía movimientos de inventario o líneas de venta; el CRUD de productos no lo toca.
type Product struct {
	ID             string
	Name           string
	CategoryID     string
	CategoryName   string // solo lectura (JOIN)
	CollectionID   string // vacío si no pertenece a una colección
	CollectionName string // solo lectura (JOIN)
	Sizes          string // ej. "S,M,L"
	Description    string
	ImageURL       string
	UnitPrice      decimal.Decimal
	Stock          int
	MinStock       int
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LowStock indica si el stock actual está en o por debajo del mínimo.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// OutOfStock indica si el producto está agotado.
func (p *Product) OutOfStock() bool {
	return p.Stock == 0
}
