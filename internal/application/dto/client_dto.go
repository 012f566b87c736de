package dto

import "time"

// ClientRequest entrada para crear o reemplazar un cliente.
type ClientRequest struct {
	Name         string `json:"nombre" validate:"required,min=1,max=200"`
	Type         string `json:"tipo_cliente" validate:"omitempty,oneof=minorista mayorista internacional"`
	Email        string `json:"correo" validate:"omitempty,email"`
	Phone        string `json:"telefono" validate:"max=30"`
	Address      string `json:"direccion" validate:"max=300"`
	Instagram    string `json:"instagram" validate:"max=100"`
	BusinessName string `json:"nombre_negocio" validate:"max=200"`
	TaxID        string `json:"nit_rut" validate:"max=30"`
	Active       *bool  `json:"activo"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"nombre"`
	Type         string    `json:"tipo_cliente"`
	Email        string    `json:"correo"`
	Phone        string    `json:"telefono"`
	Address      string    `json:"direccion"`
	Instagram    string    `json:"instagram"`
	BusinessName string    `json:"nombre_negocio"`
	TaxID        string    `json:"nit_rut"`
	RegisteredAt time.Time `json:"fecha_registro"`
	Active       bool      `json:"activo"`
}
