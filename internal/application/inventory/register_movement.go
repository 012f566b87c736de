package inventory

import (
	"context"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/dto"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement.
// Si el request no trae empleado se usa el del usuario autenticado (puede ser vacío).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, callerEmployeeID string, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	employeeID := callerEmployeeID
	if in.EmployeeID != nil {
		employeeID = *in.EmployeeID
	}
	return uc.RegisterMovement(ctx, MovementInputDTO{
		ProductID:  in.ProductID,
		Kind:       in.Kind,
		Quantity:   in.Quantity,
		EmployeeID: employeeID,
		Reason:     in.Reason,
	})
}
