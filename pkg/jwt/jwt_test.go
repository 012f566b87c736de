package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/miguelitowashere/Proyecto-Final-Software/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "inventario-test"
)

var principal = pkgjwt.Principal{
	UserID:     "00000000-0000-0000-0000-000000000001",
	EmployeeID: "00000000-0000-0000-0000-000000000002",
	Role:       "staff",
}

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, principal, 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, principal.UserID, claims.UserID)
	assert.Equal(t, principal.EmployeeID, claims.EmployeeID)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, pkgjwt.TypeAccess, claims.TokenType)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, principal, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, principal, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestRefreshNoSirveComoAcceso(t *testing.T) {
	refresh, err := pkgjwt.GenerateRefresh(testSecret, testIssuer, principal, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, refresh)
	assert.Error(t, err, "un refresh no debe aceptarse como token de acceso")

	claims, err := pkgjwt.ParseRefresh(testSecret, refresh)
	require.NoError(t, err)
	assert.Equal(t, principal.UserID, claims.UserID)

	access, err := pkgjwt.Generate(testSecret, testIssuer, principal, 60)
	require.NoError(t, err)
	_, err = pkgjwt.ParseRefresh(testSecret, access)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testIssuer, principal, 60)
	assert.Error(t, err)
}
