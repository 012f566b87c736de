package repository

import (
	"context"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context) ([]*entity.Category, error)
	// Delete devuelve domain.ErrInUse si hay productos en la categoría.
	Delete(ctx context.Context, id string) error
}

// CollectionRepository define el puerto de persistencia para Collection.
type CollectionRepository interface {
	Create(ctx context.Context, collection *entity.Collection) error
	GetByID(ctx context.Context, id string) (*entity.Collection, error)
	Update(ctx context.Context, collection *entity.Collection) error
	List(ctx context.Context) ([]*entity.Collection, error)
	// Delete deja en nulo la colección de los productos que la referencian.
	Delete(ctx context.Context, id string) error
}
