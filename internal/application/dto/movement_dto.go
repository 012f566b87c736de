package dto

import "time"

// RecordMovementRequest entrada para registrar un movimiento de inventario.
// Solo el tipo "ajuste" admite cantidad negativa.
type RecordMovementRequest struct {
	ProductID  string  `json:"producto" validate:"required,uuid"`
	Kind       string  `json:"tipo" validate:"required,oneof=entrada salida ajuste devolucion"`
	Quantity   int     `json:"cantidad"`
	EmployeeID *string `json:"empleado" validate:"omitempty,uuid"`
	Reason     string  `json:"motivo" validate:"max=500"`
}

// UpdateMovementRequest edición de un movimiento. Nunca recalcula stock.
type UpdateMovementRequest struct {
	Kind       *string `json:"tipo" validate:"omitempty,oneof=entrada salida ajuste devolucion"`
	Quantity   *int    `json:"cantidad"`
	EmployeeID *string `json:"empleado" validate:"omitempty,uuid"`
	Reason     *string `json:"motivo" validate:"omitempty,max=500"`
}

// MovementListRequest filtros de listado.
type MovementListRequest struct {
	ProductID string
	Kind      string
	From      *time.Time
	To        *time.Time
	PageRequest
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"producto"`
	ProductName  string    `json:"producto_nombre"`
	Kind         string    `json:"tipo"`
	Quantity     int       `json:"cantidad"`
	Date         time.Time `json:"fecha"`
	EmployeeID   *string   `json:"empleado"`
	EmployeeName string    `json:"empleado_nombre,omitempty"`
	Reason       string    `json:"motivo"`
	// StockAfter stock del producto tras aplicar el movimiento (solo al crear).
	StockAfter *int `json:"stock_resultante,omitempty"`
}
