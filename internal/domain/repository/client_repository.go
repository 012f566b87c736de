package repository

import (
	"context"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
)

// ClientFilter criterios de listado de clientes.
type ClientFilter struct {
	Name            string
	Type            string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	List(ctx context.Context, filter ClientFilter) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) error
}
