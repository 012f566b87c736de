package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/auth"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/inventory"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/reports"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/sales"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/usecase"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	CatalogUC        *usecase.CatalogUseCase
	ClientUC         *usecase.ClientUseCase
	EmployeeUC       *usecase.EmployeeUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementUC       *inventory.MovementUseCase
	CreateSale       *sales.CreateSaleUseCase
	SaleUC           *sales.SaleUseCase
	ReceiptUC        *sales.ReceiptUseCase
	SummaryUC        *reports.SummaryUseCase
	SummaryPDFUC     *reports.PDFUseCase

	Policy    access.Policy
	JWTSecret string

	// LoginLimiter opcional; nil desactiva el límite de intentos.
	LoginLimiter    RateLimiter
	OnLoginThrottle func()

	// MetricsHandler opcional (promhttp); se expone en MetricsPath.
	MetricsHandler nethttp.Handler
	MetricsPath    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.MetricsHandler != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	loginLimit := LoginRateLimit(deps.LoginLimiter, deps.OnLoginThrottle)
	api.Post("/token", loginLimit, authHandler.Login)
	api.Post("/token/refresh", authHandler.Refresh)
	api.Post("/auth/google", loginLimit, authHandler.Google)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	can := func(op access.Operation) fiber.Handler { return RequirePermission(deps.Policy, op) }

	// Productos
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/productos")
	products.Get("/", can(access.ProductRead), productHandler.List)
	products.Post("/", can(access.ProductWrite), productHandler.Create)
	products.Get("/:id", can(access.ProductRead), productHandler.GetByID)
	products.Put("/:id", can(access.ProductWrite), productHandler.Update)
	products.Delete("/:id", can(access.ProductDelete), productHandler.Delete)

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	categories := protected.Group("/categorias")
	categories.Get("/", can(access.CatalogRead), catalogHandler.ListCategories)
	categories.Post("/", can(access.CatalogWrite), catalogHandler.CreateCategory)
	categories.Get("/:id", can(access.CatalogRead), catalogHandler.GetCategory)
	categories.Put("/:id", can(access.CatalogWrite), catalogHandler.UpdateCategory)
	categories.Delete("/:id", can(access.CatalogWrite), catalogHandler.DeleteCategory)

	collections := protected.Group("/colecciones")
	collections.Get("/", can(access.CatalogRead), catalogHandler.ListCollections)
	collections.Post("/", can(access.CatalogWrite), catalogHandler.CreateCollection)
	collections.Get("/:id", can(access.CatalogRead), catalogHandler.GetCollection)
	collections.Put("/:id", can(access.CatalogWrite), catalogHandler.UpdateCollection)
	collections.Delete("/:id", can(access.CatalogWrite), catalogHandler.DeleteCollection)

	// Clientes
	clientHandler := NewClientHandler(deps.ClientUC)
	clients := protected.Group("/clientes")
	clients.Get("/", can(access.ClientRead), clientHandler.List)
	clients.Post("/", can(access.ClientCreate), clientHandler.Create)
	clients.Get("/:id", can(access.ClientRead), clientHandler.GetByID)
	clients.Put("/:id", can(access.ClientWrite), clientHandler.Update)
	clients.Delete("/:id", can(access.ClientDelete), clientHandler.Delete)

	// Empleados (/me antes de /:id)
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees := protected.Group("/empleados")
	employees.Get("/me", can(access.EmployeeSelf), employeeHandler.Me)
	employees.Get("/", can(access.EmployeeRead), employeeHandler.List)
	employees.Post("/", can(access.EmployeeWrite), employeeHandler.Create)
	employees.Get("/:id", can(access.EmployeeRead), employeeHandler.GetByID)
	employees.Put("/:id", can(access.EmployeeWrite), employeeHandler.Update)
	employees.Delete("/:id", can(access.EmployeeWrite), employeeHandler.Delete)

	// Movimientos de inventario
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.MovementUC)
	movements := protected.Group("/movimientos-inventario")
	movements.Get("/", can(access.MovementRead), movementHandler.List)
	movements.Post("/", can(access.MovementCreate), movementHandler.Create)
	movements.Get("/:id", can(access.MovementRead), movementHandler.GetByID)
	movements.Put("/:id", can(access.MovementEdit), movementHandler.Update)
	movements.Delete("/:id", can(access.MovementEdit), movementHandler.Delete)

	// Ventas y reportes (reportes antes de /:id)
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleUC, deps.ReceiptUC)
	reportHandler := NewReportHandler(deps.SummaryUC, deps.SummaryPDFUC)
	salesGroup := protected.Group("/ventas")
	salesGroup.Get("/reportes/resumen", can(access.ReportRead), reportHandler.Summary)
	salesGroup.Get("/reportes/resumen.pdf", can(access.ReportRead), reportHandler.SummaryPDF)
	salesGroup.Get("/", can(access.SaleRead), saleHandler.List)
	salesGroup.Post("/", can(access.SaleCreate), saleHandler.Create)
	salesGroup.Get("/:id", can(access.SaleRead), saleHandler.GetByID)
	salesGroup.Delete("/:id", can(access.SaleDelete), saleHandler.Delete)
	salesGroup.Get("/:id/recibo", can(access.SaleRead), saleHandler.Receipt)
}
