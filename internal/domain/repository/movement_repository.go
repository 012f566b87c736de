package repository

import (
	"context"
	"time"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
)

// MovementFilter criterios de listado de movimientos.
type MovementFilter struct {
	ProductID string
	Kind      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MovementRepository puerto de persistencia para movimientos de inventario.
// Ningún método toca el stock del producto.
type MovementRepository interface {
	Create(ctx context.Context, mov *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	Update(ctx context.Context, mov *entity.Movement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	Delete(ctx context.Context, id string) error
}
