package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/superstore-analytics/internal/application/dto"
	"github.com/jhoicas/superstore-analytics/internal/application/reports"
)

// ReportHandler expone los reportes analíticos del Superstore.
// Todos los endpoints son de solo lectura sobre el dataset en memoria.
type ReportHandler struct {
	uc  *reports.UseCase
	pdf reports.ReportPDFGenerator
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *reports.UseCase, pdf reports.ReportPDFGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf}
}

// Full godoc
// @Summary      Reporte completo (las nueve secciones)
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.FullReportDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reports [get]
func (h *ReportHandler) Full(c *fiber.Ctx) error {
	report, err := h.uc.FullReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(report)
}

// ExportPDF godoc
// @Summary      Exportar el reporte completo en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reports/export.pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	report, err := h.uc.FullReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	pdfBytes, err := h.pdf.GenerateReportPDF(c.Context(), report)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_ERROR", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="superstore-report.pdf"`)
	return c.Send(pdfBytes)
}

// CategoryProfitability godoc
// @Summary      Ventas, utilidad y margen por categoría y subcategoría
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.CategoryProfitabilityDTO
// @Security     BearerAuth
// @Router       /api/reports/category-profitability [get]
func (h *ReportHandler) CategoryProfitability(c *fiber.Ctx) error {
	return c.JSON(h.uc.CategoryProfitability())
}

// TopCustomers godoc
// @Summary      Los 10 clientes con mayor gasto total
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.TopCustomerDTO
// @Security     BearerAuth
// @Router       /api/reports/top-customers [get]
func (h *ReportHandler) TopCustomers(c *fiber.Ctx) error {
	return c.JSON(h.uc.TopCustomers())
}

// StockVsSales devuelve el stock actual contra las unidades vendidas por
// producto, incluidos los productos sin ventas.
// GET /api/reports/stock-vs-sales
func (h *ReportHandler) StockVsSales(c *fiber.Ctx) error {
	return c.JSON(h.uc.StockVsSales())
}

// DiscountProfit devuelve descuento y utilidad promedio por categoría.
// GET /api/reports/discount-profit
func (h *ReportHandler) DiscountProfit(c *fiber.Ctx) error {
	return c.JSON(h.uc.DiscountProfit())
}

// ShippingPerformance devuelve los días promedio de despacho por modo de envío.
// GET /api/reports/shipping-performance
func (h *ReportHandler) ShippingPerformance(c *fiber.Ctx) error {
	return c.JSON(h.uc.ShippingPerformance())
}

// FrequentCustomers devuelve los clientes con más de 5 pedidos.
// GET /api/reports/frequent-customers
func (h *ReportHandler) FrequentCustomers(c *fiber.Ctx) error {
	return c.JSON(h.uc.FrequentCustomers())
}

// Overview devuelve los KPIs globales del dataset.
// GET /api/reports/overview
func (h *ReportHandler) Overview(c *fiber.Ctx) error {
	return c.JSON(h.uc.Overview())
}

// MonthlyTrend devuelve la serie mensual de ventas y utilidad.
// GET /api/reports/monthly-trend
func (h *ReportHandler) MonthlyTrend(c *fiber.Ctx) error {
	return c.JSON(h.uc.MonthlyTrend())
}

// TopProducts devuelve los 10 productos con más ventas.
// GET /api/reports/top-products
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	return c.JSON(h.uc.TopProducts())
}
