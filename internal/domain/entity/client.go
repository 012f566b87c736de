package entity

import "time"

// Tipos de cliente.
const (
	ClientRetail        = "minorista"
	ClientWholesale     = "mayorista"
	ClientInternational = "internacional"
)

// ValidClientType indica si el tipo de cliente es soportado.
func ValidClientType(t string) bool {
	switch t {
	case ClientRetail, ClientWholesale, ClientInternational:
		return true
	}
	return false
}

// Client representa un cliente del negocio. No está ligado a las ventas.
type Client struct {
	ID           string
	Name         string
	Type         string
	Email        string
	Phone        string
	Address      string
	Instagram    string
	BusinessName string
	TaxID        string // NIT o RUT
	RegisteredAt time.Time
	Active       bool
}
