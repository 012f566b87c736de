package entity

import "time"

// Roles derivados de la cuenta.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User cuenta de acceso. IsStaff marca a los administradores.
type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt
	IsStaff      bool
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role devuelve "admin" para cuentas staff y "staff" para el resto.
func (u *User) Role() string {
	if u.IsStaff {
		return RoleAdmin
	}
	return RoleStaff
}

// FullName nombre para mostrar; cae en Username si no hay nombre.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// Employee empleado ligado uno a uno con una cuenta.
type Employee struct {
	ID       string
	UserID   string
	User     User // cargado por el repositorio
	Phone    string
	HireDate time.Time
	Active   bool
}
