package inventory

import (
	"fmt"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
)

// MovementDelta devuelve la variación de stock que produce un movimiento.
// entrada, devolucion y ajuste suman; salida resta. Solo ajuste admite cantidad negativa.
func MovementDelta(kind string, qty int) (int, error) {
	switch kind {
	case entity.MovementInflow, entity.MovementReturn:
		if qty < 0 {
			return 0, domain.Invalid("cantidad", "debe ser mayor o igual a cero")
		}
		return qty, nil
	case entity.MovementOutflow:
		if qty < 0 {
			return 0, domain.Invalid("cantidad", "debe ser mayor o igual a cero")
		}
		return -qty, nil
	case entity.MovementAdjustment:
		return qty, nil
	default:
		return 0, domain.Invalid("tipo", fmt.Sprintf("tipo de movimiento desconocido %q", kind))
	}
}

// ApplyMovement calcula el stock resultante de un movimiento. El resultado nunca baja de cero;
// clamped indica si hubo que recortarlo.
func ApplyMovement(current int, kind string, qty int) (next int, clamped bool, err error) {
	delta, err := MovementDelta(kind, qty)
	if err != nil {
		return current, false, err
	}
	next = current + delta
	if next < 0 {
		return 0, true, nil
	}
	return next, false, nil
}

// ApplySaleLine descuenta la cantidad vendida. A diferencia de ApplyMovement no recorta en cero:
// una venta puede dejar stock negativo.
func ApplySaleLine(current, qty int) (int, error) {
	if qty <= 0 {
		return current, domain.Invalid("cantidad", "debe ser mayor que cero")
	}
	return current - qty, nil
}
