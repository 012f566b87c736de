package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/inventory"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/sales"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/usecase"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/infrastructure/memory"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/infrastructure/postgres"
	"github.com/miguelitowashere/Proyecto-Final-Software/pkg/config"
	"github.com/miguelitowashere/Proyecto-Final-Software/pkg/logger"
)

// txRunner lo implementan los dos backends: movimientos, ventas y cuentas.
type txRunner interface {
	inventory.TxRunner
	sales.SalesTxRunner
	usecase.AccountTxRunner
}

// repositories repositorios de la app, independientes del driver configurado.
type repositories struct {
	users       repository.UserRepository
	employees   repository.EmployeeRepository
	products    repository.ProductRepository
	categories  repository.CategoryRepository
	collections repository.CollectionRepository
	clients     repository.ClientRepository
	movements   repository.MovementRepository
	sales       repository.SaleRepository
	reports     repository.SalesReportRepository
	tx          txRunner
	close       func()
}

// openRepositories abre PostgreSQL (con migraciones si DB_AUTO_MIGRATE) o el backend en memoria.
func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &repositories{
			users:       memory.NewUserRepository(store),
			employees:   memory.NewEmployeeRepository(store),
			products:    memory.NewProductRepository(store),
			categories:  memory.NewCategoryRepository(store),
			collections: memory.NewCollectionRepository(store),
			clients:     memory.NewClientRepository(store),
			movements:   memory.NewMovementRepository(store),
			sales:       memory.NewSaleRepository(store),
			reports:     memory.NewReportRepository(store),
			tx:          memory.NewTxRunner(store),
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, "up"); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return postgresRepositories(pool), nil
}

func postgresRepositories(pool *pgxpool.Pool) *repositories {
	return &repositories{
		users:       postgres.NewUserRepository(pool),
		employees:   postgres.NewEmployeeRepository(pool),
		products:    postgres.NewProductRepository(pool),
		categories:  postgres.NewCategoryRepository(pool),
		collections: postgres.NewCollectionRepository(pool),
		clients:     postgres.NewClientRepository(pool),
		movements:   postgres.NewMovementRepository(pool),
		sales:       postgres.NewSaleRepository(pool),
		reports:     postgres.NewReportRepository(pool),
		tx:          postgres.NewTxRunner(pool),
		close:       pool.Close,
	}
}
