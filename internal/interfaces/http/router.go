package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/auth"
	"github.com/tu-usuario/almacen-api/internal/application/reporting"
	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/mail"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	AdjustStock  *stock.AdjustStockUseCase
	StockCheck   *stock.StockCheckUseCase
	ReportUC     *reporting.ReportUseCase
	AuthUC       *auth.AuthUseCase
	SMTPNotifier *mail.SMTPNotifier
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido): CRUD + ledger + ajustes de stock
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	stockHandler := NewStockHandler(deps.AdjustStock)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/movements", productHandler.Movements)
	products.Post("/:id/add", stockHandler.Add)
	products.Post("/:id/remove", stockHandler.Remove)

	// Report (protegido): JSON + descargas
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/report", reportHandler.Get)
	protected.Get("/report/:format", reportHandler.Download)

	// Admin (protegido)
	admin := protected.Group("/admin")
	adminHandler := NewAdminHandler(deps.StockCheck, deps.SMTPNotifier)
	admin.Post("/stock-check", adminHandler.StockCheck)
	admin.Get("/notifier-config", adminHandler.NotifierConfig)
}
