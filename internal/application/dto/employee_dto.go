package dto

import "time"

// AccountRequest datos de la cuenta al crear un empleado.
type AccountRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Password  string `json:"password" validate:"required,min=8"`
	Email     string `json:"email" validate:"omitempty,email"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	IsStaff   bool   `json:"is_staff"`
}

// CreateEmployeeRequest crea empleado y cuenta en una sola operación.
type CreateEmployeeRequest struct {
	User     AccountRequest `json:"user" validate:"required"`
	Phone    string         `json:"telefono" validate:"max=30"`
	HireDate *time.Time     `json:"fecha_contratacion"`
	Active   *bool          `json:"activo"`
}

// UpdateEmployeeRequest actualización parcial; Password vacío no cambia la contraseña.
type UpdateEmployeeRequest struct {
	Email     *string    `json:"email" validate:"omitempty,email"`
	FirstName *string    `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string    `json:"last_name" validate:"omitempty,max=150"`
	Password  *string    `json:"password" validate:"omitempty,min=8"`
	IsStaff   *bool      `json:"is_staff"`
	Phone     *string    `json:"telefono" validate:"omitempty,max=30"`
	HireDate  *time.Time `json:"fecha_contratacion"`
	Active    *bool      `json:"activo"`
}

// UserResponse datos públicos de una cuenta.
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"rol"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID       string       `json:"id"`
	User     UserResponse `json:"user"`
	FullName string       `json:"nombre_completo"`
	Phone    string       `json:"telefono"`
	HireDate time.Time    `json:"fecha_contratacion"`
	Active   bool         `json:"activo"`
}
