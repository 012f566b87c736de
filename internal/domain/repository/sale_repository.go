package repository

import (
	"context"
	"time"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
)

// SaleFilter criterios de listado de ventas.
type SaleFilter struct {
	EmployeeID string
	Channel    string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// SaleRepository puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateLine(ctx context.Context, line *entity.SaleLine) error
	// GetByID devuelve la venta con sus líneas, o (nil, nil).
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List devuelve encabezados sin líneas, más recientes primero.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
	Delete(ctx context.Context, id string) error
}
