package google

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
)

func unsignedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("cualquier-clave"))
	require.NoError(t, err)
	return tok
}

func failingValidate(context.Context, string, string) (*idtoken.Payload, error) {
	return nil, errors.New("idtoken: invalid signature")
}

// ─────────────────────────────────────────────────────────────────────────────
// Verify
// ─────────────────────────────────────────────────────────────────────────────

func TestVerify_TokenValido(t *testing.T) {
	v := NewVerifier("client-id", false)
	v.validate = func(_ context.Context, _, aud string) (*idtoken.Payload, error) {
		assert.Equal(t, "client-id", aud)
		return &idtoken.Payload{
			Subject: "google-123",
			Claims: map[string]any{
				"email":          "ana@tienda.co",
				"email_verified": true,
				"name":           "Ana Ríos",
			},
		}, nil
	}

	id, err := v.Verify(context.Background(), "token")
	require.NoError(t, err)
	assert.True(t, id.Verified)
	assert.True(t, id.EmailVerified)
	assert.Equal(t, "google-123", id.Subject)
	assert.Equal(t, "ana@tienda.co", id.Email)
	assert.Equal(t, "Ana Ríos", id.Name)
}

func TestVerify_FirmaInvalidaSinFallback(t *testing.T) {
	v := NewVerifier("client-id", false)
	v.validate = failingValidate

	_, err := v.Verify(context.Background(), unsignedToken(t, jwt.MapClaims{"email": "a@b.co"}))
	assert.ErrorIs(t, err, domain.ErrTokenVerification)
}

func TestVerify_FallbackDecodificaSinVerificar(t *testing.T) {
	v := NewVerifier("client-id", true)
	v.validate = failingValidate

	tok := unsignedToken(t, jwt.MapClaims{"sub": "g-1", "email": "ana@tienda.co", "email_verified": "true"})
	id, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.False(t, id.Verified)
	assert.True(t, id.EmailVerified)
	assert.Equal(t, "g-1", id.Subject)
	assert.Equal(t, "ana@tienda.co", id.Email)
}

func TestVerify_FallbackConTokenIlegible(t *testing.T) {
	v := NewVerifier("client-id", true)
	v.validate = failingValidate

	_, err := v.Verify(context.Background(), "no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrTokenVerification)
}

func TestVerify_TokenVacio(t *testing.T) {
	v := NewVerifier("client-id", true)
	_, err := v.Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrTokenVerification)
}
