package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/superstore-analytics/internal/application/auth"
	"github.com/jhoicas/superstore-analytics/internal/application/reports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportUC  *reports.UseCase
	AuthUC    *auth.UseCase
	PDF       reports.ReportPDFGenerator
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/token", authHandler.Token)

	// Reportes (protegido, requiere Bearer Token)
	reportHandler := NewReportHandler(deps.ReportUC, deps.PDF)
	rg := api.Group("/reports", AuthMiddleware(deps.JWTSecret))
	rg.Get("/", reportHandler.Full)
	rg.Get("/export.pdf", reportHandler.ExportPDF)
	rg.Get("/category-profitability", reportHandler.CategoryProfitability)
	rg.Get("/top-customers", reportHandler.TopCustomers)
	rg.Get("/stock-vs-sales", reportHandler.StockVsSales)
	rg.Get("/discount-profit", reportHandler.DiscountProfit)
	rg.Get("/shipping-performance", reportHandler.ShippingPerformance)
	rg.Get("/frequent-customers", reportHandler.FrequentCustomers)
	rg.Get("/overview", reportHandler.Overview)
	rg.Get("/monthly-trend", reportHandler.MonthlyTrend)
	rg.Get("/top-products", reportHandler.TopProducts)
}
