package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/auth"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/dto"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/ports"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/usecase"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/infrastructure/memory"
	pkgjwt "github.com/miguelitowashere/Proyecto-Final-Software/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

type stubVerifier struct {
	ident *ports.ExternalIdentity
	err   error
}

func (s stubVerifier) Verify(context.Context, string) (*ports.ExternalIdentity, error) {
	return s.ident, s.err
}

type authFixture struct {
	auth      *auth.AuthUseCase
	employees *usecase.EmployeeUseCase
	employee  *dto.EmployeeResponse
}

func newAuthFixture(t *testing.T, verifier ports.IdentityVerifier) *authFixture {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	employeeRepo := memory.NewEmployeeRepository(store)
	employees := usecase.NewEmployeeUseCase(memory.NewTxRunner(store), employeeRepo, users)

	emp, err := employees.Create(context.Background(), dto.CreateEmployeeRequest{
		User: dto.AccountRequest{
			Username: "admin",
			Password: "clave-admin-123",
			Email:    "Admin@Tienda.co",
			IsStaff:  true,
		},
	})
	require.NoError(t, err)

	return &authFixture{
		auth: auth.NewAuthUseCase(users, employeeRepo, verifier, auth.JWTConfig{
			Secret:         testSecret,
			AccessMinutes:  15,
			RefreshMinutes: 60,
			Issuer:         "inventario-test",
		}),
		employees: employees,
		employee:  emp,
	}
}

func TestLogin_CredencialesValidas_EmiteTokens(t *testing.T) {
	f := newAuthFixture(t, nil)

	out, err := f.auth.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "clave-admin-123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Access)
	require.NotEmpty(t, out.Refresh)
	assert.Equal(t, "admin", out.User.Role)

	claims, err := pkgjwt.Parse(testSecret, out.Access)
	require.NoError(t, err)
	assert.Equal(t, f.employee.User.ID, claims.UserID)
	assert.Equal(t, f.employee.ID, claims.EmployeeID)
	assert.Equal(t, "admin", claims.Role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	f := newAuthFixture(t, nil)
	_, err := f.auth.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "otra"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = f.auth.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "otra"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_CuentaInactiva(t *testing.T) {
	f := newAuthFixture(t, nil)
	inactive := false
	_, err := f.employees.Update(context.Background(), f.employee.ID, dto.UpdateEmployeeRequest{Active: &inactive})
	require.NoError(t, err)

	_, err = f.auth.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "clave-admin-123"})
	assert.True(t, errors.Is(err, domain.ErrInactive))
}

func TestRefresh_EmiteNuevoAcceso(t *testing.T) {
	f := newAuthFixture(t, nil)
	login, err := f.auth.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "clave-admin-123"})
	require.NoError(t, err)

	out, err := f.auth.Refresh(context.Background(), dto.RefreshRequest{Refresh: login.Refresh})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Access)
	assert.Empty(t, out.Refresh)

	_, err = f.auth.Refresh(context.Background(), dto.RefreshRequest{Refresh: login.Access})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized), "un token de acceso no sirve como refresco")
}

func TestGoogleLogin_EmailRegistrado(t *testing.T) {
	f := newAuthFixture(t, stubVerifier{ident: &ports.ExternalIdentity{
		Subject: "google-123", Email: "admin@tienda.co", EmailVerified: true, Verified: true,
	}})

	out, err := f.auth.GoogleLogin(context.Background(), dto.GoogleLoginRequest{Credential: "id-token"})
	require.NoError(t, err)
	assert.Equal(t, "admin", out.User.Username)
}

func TestGoogleLogin_EmailDesconocido(t *testing.T) {
	f := newAuthFixture(t, stubVerifier{ident: &ports.ExternalIdentity{Email: "otro@gmail.com", Verified: true}})
	_, err := f.auth.GoogleLogin(context.Background(), dto.GoogleLoginRequest{Credential: "id-token"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestGoogleLogin_TokenInvalido(t *testing.T) {
	f := newAuthFixture(t, stubVerifier{err: fmt.Errorf("firma inválida")})
	_, err := f.auth.GoogleLogin(context.Background(), dto.GoogleLoginRequest{Credential: "id-token"})
	assert.True(t, errors.Is(err, domain.ErrTokenVerification))
}

func TestGoogleLogin_SinVerificador(t *testing.T) {
	f := newAuthFixture(t, nil)
	_, err := f.auth.GoogleLogin(context.Background(), dto.GoogleLoginRequest{Credential: "id-token"})
	assert.True(t, errors.Is(err, domain.ErrTokenVerification))
}
