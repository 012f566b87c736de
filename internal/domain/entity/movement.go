package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementInflow     = "entrada"
	MovementOutflow    = "salida"
	MovementAdjustment = "ajuste"
	MovementReturn     = "devolucion"
)

// ValidMovementKind indica si kind es uno de los tipos soportados.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementInflow, MovementOutflow, MovementAdjustment, MovementReturn:
		return true
	}
	return false
}

// Movement es un cambio registrado sobre el stock de un producto.
// El efecto sobre el stock se aplica una sola vez, al crearlo.
type Movement struct {
	ID           string
	ProductID    string
	ProductName  string // solo lectura (JOIN)
	Kind         string
	Quantity     int // negativo solo en ajustes
	Date         time.Time
	EmployeeID   string // opcional
	EmployeeName string // solo lectura (JOIN)
	Reason       string
	CreatedAt    time.Time
}
