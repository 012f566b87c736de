package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/access"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
)

func TestDefaultPolicy_AdminPuedeTodo(t *testing.T) {
	p := access.DefaultPolicy()
	for _, op := range access.AllOperations() {
		assert.True(t, p.Allows(entity.RoleAdmin, op), string(op))
	}
}

func TestDefaultPolicy_Staff(t *testing.T) {
	p := access.DefaultPolicy()

	allowed := []access.Operation{access.SaleCreate, access.MovementCreate, access.ProductRead, access.EmployeeSelf}
	for _, op := range allowed {
		assert.NoError(t, p.Authorize(entity.RoleStaff, op), string(op))
	}

	denied := []access.Operation{access.ProductWrite, access.ReportRead, access.EmployeeWrite, access.SaleDelete, access.MovementEdit}
	for _, op := range denied {
		assert.ErrorIs(t, p.Authorize(entity.RoleStaff, op), domain.ErrForbidden, string(op))
	}
}

func TestDefaultPolicy_RolDesconocido(t *testing.T) {
	p := access.DefaultPolicy()
	assert.False(t, p.Allows("", access.ProductRead))
	assert.False(t, p.Allows("vendedor", access.SaleCreate))
}
