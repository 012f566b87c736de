package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tipos de token emitidos.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role viaja en el token para que el middleware de permisos no consulte la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string `json:"user_id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Role       string `json:"role"` // "admin" | "staff"
	TokenType  string `json:"token_type"`
}

// Principal identidad que se firma en el token.
type Principal struct {
	UserID     string
	EmployeeID string
	Role       string
}

// Generate firma un token de acceso.
func Generate(secret, issuer string, p Principal, expMinutes int) (string, error) {
	return sign(secret, issuer, p, TypeAccess, expMinutes)
}

// GenerateRefresh firma un token de refresco.
func GenerateRefresh(secret, issuer string, p Principal, expMinutes int) (string, error) {
	return sign(secret, issuer, p, TypeRefresh, expMinutes)
}

func sign(secret, issuer string, p Principal, tokenType string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:     p.UserID,
		EmployeeID: p.EmployeeID,
		Role:       p.Role,
		TokenType:  tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida un token de acceso y devuelve sus claims.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o es de refresco.
func Parse(secret, tokenString string) (*Claims, error) {
	return parse(secret, tokenString, TypeAccess)
}

// ParseRefresh valida un token de refresco.
func ParseRefresh(secret, tokenString string) (*Claims, error) {
	return parse(secret, tokenString, TypeRefresh)
}

func parse(secret, tokenString, wantType string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("tipo de token %q, se esperaba %q", claims.TokenType, wantType)
	}
	return claims, nil
}
