// migrate aplica las migraciones SQL embebidas con goose.
//
// Uso: go run ./cmd/migrate -cmd up|down|status|version|redo|reset
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/infrastructure/postgres"
	"github.com/miguelitowashere/Proyecto-Final-Software/pkg/config"
	"github.com/miguelitowashere/Proyecto-Final-Software/pkg/logger"
)

func main() {
	cmd := flag.String("cmd", "up", "comando goose: up|down|status|version|redo|reset|up-to|down-to")
	target := flag.String("version", "", "versión destino para up-to/down-to")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	if cfg.DB.Driver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.DB.Driver).Msg("las migraciones solo aplican a postgres")
	}

	var args []string
	switch *cmd {
	case "up-to", "down-to":
		if *target == "" {
			log.Fatal().Str("cmd", *cmd).Msg("falta -version")
		}
		args = append(args, *target)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, *cmd, args...); err != nil {
		log.Error().Err(err).Str("cmd", *cmd).Msg("migración fallida")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Str("cmd", *cmd).Msg("migración completada")
}
