package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInUse             = errors.New("el recurso está referenciado por otros registros")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInactive          = errors.New("cuenta inactiva")
	ErrTokenVerification = errors.New("no se pudo verificar el token del proveedor de identidad")
	ErrInvalidPeriod     = errors.New("periodo inválido")
)

// FieldError describe una regla de validación violada sobre un campo concreto.
// Se envuelve ErrInvalidInput para que errors.Is siga funcionando.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func (e *FieldError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un FieldError.
func Invalid(field, message string) error {
	return &FieldError{Field: field, Message: message}
}
