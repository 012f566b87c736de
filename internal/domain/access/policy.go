// Package access define la tabla de permisos (rol, operación) → permitido.
package access

import (
	"fmt"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
)

// Operation nombre de una operación protegida.
type Operation string

const (
	ProductRead    Operation = "product:read"
	ProductWrite   Operation = "product:write"
	ProductDelete  Operation = "product:delete"
	CatalogRead    Operation = "catalog:read"
	CatalogWrite   Operation = "catalog:write"
	ClientRead     Operation = "client:read"
	ClientCreate   Operation = "client:create"
	ClientWrite    Operation = "client:write"
	ClientDelete   Operation = "client:delete"
	EmployeeRead   Operation = "employee:read"
	EmployeeWrite  Operation = "employee:write"
	EmployeeSelf   Operation = "employee:self"
	MovementRead   Operation = "movement:read"
	MovementCreate Operation = "movement:create"
	MovementEdit   Operation = "movement:edit"
	SaleRead       Operation = "sale:read"
	SaleCreate     Operation = "sale:create"
	SaleDelete     Operation = "sale:delete"
	ReportRead     Operation = "report:read"
)

// Policy tabla declarativa de permisos. Roles ausentes no tienen permisos.
type Policy map[string]map[Operation]bool

// DefaultPolicy el administrador puede todo; el personal de tienda opera ventas,
// movimientos y clientes, y consulta el catálogo.
func DefaultPolicy() Policy {
	admin := map[Operation]bool{}
	for _, op := range AllOperations() {
		admin[op] = true
	}
	return Policy{
		entity.RoleAdmin: admin,
		entity.RoleStaff: {
			ProductRead:    true,
			CatalogRead:    true,
			ClientRead:     true,
			ClientCreate:   true,
			ClientWrite:    true,
			EmployeeSelf:   true,
			MovementRead:   true,
			MovementCreate: true,
			SaleRead:       true,
			SaleCreate:     true,
		},
	}
}

// AllOperations lista todas las operaciones conocidas.
func AllOperations() []Operation {
	return []Operation{
		ProductRead, ProductWrite, ProductDelete,
		CatalogRead, CatalogWrite,
		ClientRead, ClientCreate, ClientWrite, ClientDelete,
		EmployeeRead, EmployeeWrite, EmployeeSelf,
		MovementRead, MovementCreate, MovementEdit,
		SaleRead, SaleCreate, SaleDelete,
		ReportRead,
	}
}

// Allows consulta la tabla.
func (p Policy) Allows(role string, op Operation) bool {
	ops, ok := p[role]
	if !ok {
		return false
	}
	return ops[op]
}

// Authorize devuelve ErrForbidden (con rol y operación en el mensaje) si el rol no puede ejecutar op.
func (p Policy) Authorize(role string, op Operation) error {
	if !p.Allows(role, op) {
		return fmt.Errorf("%w: el rol %q no tiene permiso para %s", domain.ErrForbidden, role, op)
	}
	return nil
}
