package repository

import (
	"context"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para cuentas de acceso.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
}

// EmployeeRepository puerto de persistencia para empleados (con su cuenta cargada).
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Employee, error)
	List(ctx context.Context, includeInactive bool) ([]*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	// Delete devuelve domain.ErrInUse si el empleado tiene ventas o movimientos.
	Delete(ctx context.Context, id string) error
}
