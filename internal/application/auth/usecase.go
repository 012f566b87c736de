package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/dto"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/ports"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/usecase"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
	"github.com/miguelitowashere/Proyecto-Final-Software/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret         string
	AccessMinutes  int
	RefreshMinutes int
	Issuer         string
}

// AuthUseCase casos de uso de autenticación: login, refresco y login con Google.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	employeeRepo repository.EmployeeRepository
	verifier     ports.IdentityVerifier
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. verifier puede ser nil si no hay login con Google.
func NewAuthUseCase(userRepo repository.UserRepository, employeeRepo repository.EmployeeRepository, verifier ports.IdentityVerifier, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, employeeRepo: employeeRepo, verifier: verifier, jwtCfg: jwtCfg}
}

// Login verifica usuario/contraseña y emite el par de tokens.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrInactive
	}
	return uc.issue(ctx, user)
}

// Refresh emite un nuevo token de acceso a partir de uno de refresco.
// Se relee la cuenta para que una desactivación corte el refresco.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.TokenResponse, error) {
	claims, err := jwt.ParseRefresh(uc.jwtCfg.Secret, in.Refresh)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrInactive
	}
	resp, err := uc.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	resp.Refresh = ""
	return resp, nil
}

// GoogleLogin valida el ID token y entra con la cuenta activa que tenga el mismo email.
// No crea cuentas nuevas.
func (uc *AuthUseCase) GoogleLogin(ctx context.Context, in dto.GoogleLoginRequest) (*dto.TokenResponse, error) {
	if uc.verifier == nil {
		return nil, fmt.Errorf("%w: login con Google no configurado", domain.ErrTokenVerification)
	}
	ident, err := uc.verifier.Verify(ctx, in.Credential)
	if err != nil {
		if !errors.Is(err, domain.ErrTokenVerification) {
			err = fmt.Errorf("%w: %v", domain.ErrTokenVerification, err)
		}
		return nil, err
	}
	if ident.Email == "" {
		return nil, fmt.Errorf("%w: el token no trae email", domain.ErrTokenVerification)
	}
	if !ident.Verified {
		zerolog.Ctx(ctx).Warn().Str("email", ident.Email).Msg("google login aceptado sin verificar firma")
	}
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(ident.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrInactive
	}
	return uc.issue(ctx, user)
}

func (uc *AuthUseCase) issue(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	p := jwt.Principal{UserID: user.ID, Role: user.Role()}
	emp, err := uc.employeeRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if emp != nil {
		p.EmployeeID = emp.ID
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, p, uc.jwtCfg.AccessMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.GenerateRefresh(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, p, uc.jwtCfg.RefreshMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		Access:  access,
		Refresh: refresh,
		User:    usecase.ToUserResponse(user),
	}, nil
}
