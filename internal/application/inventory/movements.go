package inventory

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/dto"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

// MovementUseCase consulta y edición de movimientos ya registrados.
// Ninguna operación de este caso de uso modifica el stock.
type MovementUseCase struct {
	movRepo      repository.MovementRepository
	employeeRepo repository.EmployeeRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(movRepo repository.MovementRepository, employeeRepo repository.EmployeeRepository) *MovementUseCase {
	return &MovementUseCase{movRepo: movRepo, employeeRepo: employeeRepo}
}

// GetByID devuelve el movimiento o (nil, nil).
func (uc *MovementUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil || m == nil {
		return nil, err
	}
	return toMovementResponse(m), nil
}

// List lista movimientos, más recientes primero.
func (uc *MovementUseCase) List(ctx context.Context, in dto.MovementListRequest) ([]dto.MovementResponse, error) {
	in.DefaultPage()
	list, err := uc.movRepo.List(ctx, repository.MovementFilter{
		ProductID: in.ProductID,
		Kind:      in.Kind,
		From:      in.From,
		To:        in.To,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

// Update edita los datos del movimiento. El stock del producto queda como está.
func (uc *MovementUseCase) Update(ctx context.Context, id string, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil || m == nil {
		return nil, err
	}
	if in.Kind != nil {
		m.Kind = *in.Kind
	}
	if in.Quantity != nil {
		m.Quantity = *in.Quantity
	}
	if in.Reason != nil {
		m.Reason = *in.Reason
	}
	if in.EmployeeID != nil {
		m.EmployeeID = *in.EmployeeID
		if m.EmployeeID != "" {
			emp, err := uc.employeeRepo.GetByID(ctx, m.EmployeeID)
			if err != nil {
				return nil, err
			}
			if emp == nil {
				return nil, domain.ErrNotFound
			}
			m.EmployeeName = emp.User.FullName()
		} else {
			m.EmployeeName = ""
		}
	}
	if err := validateMovement(m.Kind, m.Quantity); err != nil {
		return nil, err
	}
	if err := uc.movRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	log.Info().Str("movimiento_id", m.ID).Msg("movimiento editado; el stock no se recalcula")
	return toMovementResponse(m), nil
}

// Delete elimina el movimiento sin revertir su efecto sobre el stock.
func (uc *MovementUseCase) Delete(ctx context.Context, id string) error {
	return uc.movRepo.Delete(ctx, id)
}
