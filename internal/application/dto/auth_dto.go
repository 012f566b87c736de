package dto

// LoginRequest credenciales de usuario y contraseña.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest intercambio de token de refresco.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// GoogleLoginRequest ID token emitido por Google Identity Services.
type GoogleLoginRequest struct {
	Credential string `json:"credential" validate:"required"`
}

// TokenResponse par de tokens emitido al iniciar sesión.
type TokenResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh,omitempty"`
	User    UserResponse `json:"user"`
}
