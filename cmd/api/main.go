package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/auth"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/inventory"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/ports"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/reports"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/sales"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/usecase"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/access"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/infrastructure/google"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/infrastructure/kafka"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/infrastructure/metrics"
	infrapdf "github.com/miguelitowashere/Proyecto-Final-Software/internal/infrastructure/pdf"
	infraredis "github.com/miguelitowashere/Proyecto-Final-Software/internal/infrastructure/redis"
	httpRouter "github.com/miguelitowashere/Proyecto-Final-Software/internal/interfaces/http"
	"github.com/miguelitowashere/Proyecto-Final-Software/pkg/config"
	"github.com/miguelitowashere/Proyecto-Final-Software/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("driver", cfg.DB.Driver).
		Str("timezone", cfg.App.TimeZone).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer repos.close()

	// Métricas con registro propio; nil deja las rutas sin instrumentar.
	var (
		appMetrics      *metrics.Metrics
		businessMetrics ports.BusinessMetrics = ports.NoopMetrics{}
		metricsHandler  http.Handler
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		appMetrics = metrics.New(reg)
		businessMetrics = appMetrics
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}

	// Eventos de dominio: Kafka si hay brokers, si no se descartan.
	var events ports.EventPublisher = ports.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		pub, err := kafka.NewPublisher(cfg.Kafka)
		if err != nil {
			log.Warn().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("kafka no disponible, eventos desactivados")
		} else {
			events = pub
			log.Info().Str("topic", cfg.Kafka.Topic).Msg("publicador kafka listo")
		}
	}
	defer events.Close()

	// Límite de intentos de login: Redis si hay URL, si no en memoria.
	var loginLimiter httpRouter.RateLimiter
	if cfg.HTTP.LoginRateLimit > 0 {
		if cfg.Redis.URL != "" {
			rl, err := infraredis.NewLimiter(ctx, cfg.Redis.URL, cfg.HTTP.LoginRateLimit, time.Minute)
			if err != nil {
				log.Warn().Err(err).Msg("redis no disponible, límite de login en memoria")
				loginLimiter = infraredis.NewMemoryLimiter(cfg.HTTP.LoginRateLimit, time.Minute)
			} else {
				defer rl.Close()
				loginLimiter = rl
			}
		} else {
			loginLimiter = infraredis.NewMemoryLimiter(cfg.HTTP.LoginRateLimit, time.Minute)
		}
	}

	var verifier ports.IdentityVerifier
	if cfg.Google.ClientID != "" || cfg.Google.AllowUnverified {
		verifier = google.NewVerifier(cfg.Google.ClientID, cfg.Google.AllowUnverified)
	}

	loc := cfg.App.Location()
	ledger := inventory.NewStockLedger(businessMetrics)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name, loc)

	authUC := auth.NewAuthUseCase(repos.users, repos.employees, verifier, auth.JWTConfig{
		Secret:         cfg.JWT.Secret,
		AccessMinutes:  cfg.JWT.AccessMinutes,
		RefreshMinutes: cfg.JWT.RefreshMinutes,
		Issuer:         cfg.JWT.Issuer,
	})
	summaryUC := reports.NewSummaryUseCase(repos.reports, loc)

	deps := httpRouter.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        usecase.NewProductUseCase(repos.products, repos.categories, repos.collections),
		CatalogUC:        usecase.NewCatalogUseCase(repos.categories, repos.collections),
		ClientUC:         usecase.NewClientUseCase(repos.clients),
		EmployeeUC:       usecase.NewEmployeeUseCase(repos.tx, repos.employees, repos.users),
		RegisterMovement: inventory.NewRegisterMovementUseCase(repos.tx, ledger, repos.employees, events, businessMetrics),
		MovementUC:       inventory.NewMovementUseCase(repos.movements, repos.employees),
		CreateSale:       sales.NewCreateSaleUseCase(repos.tx, ledger, repos.employees, events, businessMetrics),
		SaleUC:           sales.NewSaleUseCase(repos.sales, events),
		ReceiptUC:        sales.NewReceiptUseCase(repos.sales, pdfGenerator),
		SummaryUC:        summaryUC,
		SummaryPDFUC:     reports.NewPDFUseCase(summaryUC, pdfGenerator),
		Policy:           access.DefaultPolicy(),
		JWTSecret:        cfg.JWT.Secret,
		LoginLimiter:     loginLimiter,
		MetricsPath:      cfg.Metrics.Path,
	}
	if appMetrics != nil {
		deps.MetricsHandler = metricsHandler
		deps.OnLoginThrottle = appMetrics.LoginThrottled
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(httpRouter.RequestLogger())
	app.Use(recover.New())
	if appMetrics != nil {
		app.Use(httpRouter.MetricsMiddleware(appMetrics))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Inventario Tienda API",
		}))
	} else {
		log.Debug().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger desactivado: archivo no encontrado")
	}

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
