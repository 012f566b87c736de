// createadmin crea la primera cuenta administradora con su empleado.
//
// Uso: go run ./cmd/createadmin -username admin -password 'secreta123' -email admin@tienda.co
// Si no se pasa -password se lee de ADMIN_PASSWORD.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/dto"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/usecase"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/infrastructure/postgres"
	"github.com/miguelitowashere/Proyecto-Final-Software/pkg/config"
	"github.com/miguelitowashere/Proyecto-Final-Software/pkg/logger"
)

func main() {
	username := flag.String("username", "admin", "nombre de usuario")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "contraseña (mínimo 8 caracteres)")
	email := flag.String("email", "", "correo; permite login con Google")
	firstName := flag.String("nombre", "", "nombre")
	lastName := flag.String("apellido", "", "apellido")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "createadmin"})

	if cfg.DB.Driver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.DB.Driver).Msg("createadmin requiere DB_DRIVER=postgres")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	employees := usecase.NewEmployeeUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewEmployeeRepository(pool),
		postgres.NewUserRepository(pool),
	)
	out, err := employees.Create(ctx, dto.CreateEmployeeRequest{
		User: dto.AccountRequest{
			Username:  *username,
			Password:  *password,
			Email:     *email,
			FirstName: *firstName,
			LastName:  *lastName,
			IsStaff:   true,
		},
	})
	if err != nil {
		var ferr *domain.FieldError
		switch {
		case errors.As(err, &ferr):
			log.Error().Str("campo", ferr.Field).Msg(ferr.Message)
		case errors.Is(err, domain.ErrDuplicate):
			log.Error().Str("username", *username).Msg("el usuario ya existe")
		default:
			log.Error().Err(err).Msg("crear administrador")
		}
		pool.Close()
		os.Exit(1)
	}
	log.Info().
		Str("username", out.User.Username).
		Str("empleado_id", out.ID).
		Msg("administrador creado")
}
