package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
)

// ProductFilter criterios de listado. Todos los criterios presentes se combinan con AND.
type ProductFilter struct {
	Name            string // contiene, sin distinguir mayúsculas
	CategoryID      string
	CollectionID    string
	PriceMin        *decimal.Decimal
	PriceMax        *decimal.Decimal
	StockMin        *int
	StockMax        *int
	LowStock        bool // stock <= stock mínimo
	IncludeInactive bool
	Limit           int
	Offset          int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update no modifica Stock (se maneja vía movimientos y ventas).
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, stock int, at time.Time) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
