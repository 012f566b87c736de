package ports

import "context"

// ExternalIdentity identidad verificada por un proveedor externo (Google).
type ExternalIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	// Verified es false cuando se aceptó el token sin validar la firma (modo desarrollo).
	Verified bool
}

// IdentityVerifier verifica ID tokens de un proveedor externo.
// Devuelve un error que envuelve domain.ErrTokenVerification si el token no es válido.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*ExternalIdentity, error)
}
