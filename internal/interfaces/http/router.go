package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/finovex-pos/internal/application/advisor"
	"github.com/jhoicas/finovex-pos/internal/application/analytics"
	"github.com/jhoicas/finovex-pos/internal/application/catalog"
	"github.com/jhoicas/finovex-pos/internal/application/inventory"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC *catalog.UseCase
	LedgerUC  *inventory.LedgerUseCase
	ReportUC  *analytics.ReportUseCase
	ExportUC  *analytics.ExportUseCase
	AdvisorUC *advisor.UseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	staff := RequireRole(entity.RoleWorker, entity.RoleAdmin)
	admin := RequireRole(entity.RoleAdmin)
	auth := AuthMiddleware(deps.JWTSecret)

	// Storefront (público; invitado si no hay token)
	public := api.Group("/", OptionalAuth(deps.JWTSecret))

	productHandler := NewProductHandler(deps.CatalogUC)
	public.Get("/products", productHandler.List)
	public.Get("/products/sku/:sku", productHandler.GetBySKU)
	api.Put("/products", auth, admin, productHandler.Save)
	api.Post("/products/import", auth, admin, productHandler.Import)

	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.CatalogUC)
	public.Post("/checkout", inventoryHandler.Checkout)
	api.Post("/pos/scan", auth, staff, inventoryHandler.Scan)
	api.Post("/inventory/restock", auth, staff, inventoryHandler.Restock)
	api.Post("/inventory/transactions", auth, admin, inventoryHandler.RecordTransaction)
	api.Get("/transactions", auth, staff, inventoryHandler.ListTransactions)

	// Reportes (worker, admin)
	reports := api.Group("/reports", auth, staff)
	reportHandler := NewReportHandler(deps.ReportUC, deps.ExportUC)
	reports.Get("/stats", reportHandler.GetStats)
	reports.Get("/reconcile", reportHandler.Reconcile)
	reports.Get("/replenishment", reportHandler.Replenishment)
	reports.Get("/stats.pdf", reportHandler.StatsPDF)
	reports.Get("/transactions.xlsx", reportHandler.LedgerXLSX)

	advisorHandler := NewAdvisorHandler(deps.AdvisorUC)
	public.Post("/assistant/ask", advisorHandler.Ask)
}
