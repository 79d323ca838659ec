// Package pdf genera el cuaderno de reportes del Superstore en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                        │
//	│  RESUMEN: KPIs globales (ventas, utilidad, pedidos, AOV)     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Una sección por reporte: título + tabla ordenada            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/superstore-analytics/internal/application/dto"
	"github.com/jhoicas/superstore-analytics/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reports.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReportPDF genera el cuaderno completo y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(
	_ context.Context,
	report *dto.FullReportDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Superstore Analytics", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report.GeneratedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(overviewRows(report.Overview)...)

	m.AddRows(sectionTitle("Rentabilidad por categoría"))
	m.AddRows(tableHeader("Categoría", "Subcategoría", "Ventas", "Utilidad", "Margen %"))
	for _, r := range report.CategoryProfitability {
		m.AddRows(tableRow(r.Category, r.SubCategory, money(r.TotalSales), money(r.TotalProfit), nullPct(r.ProfitMarginPct)))
	}

	m.AddRows(sectionTitle("Top 10 clientes por gasto"))
	m.AddRows(tableHeader("Cliente", "Segmento", "Pedidos", "Gasto total", ""))
	for _, r := range report.TopCustomers {
		m.AddRows(tableRow(r.CustomerName, r.Segment, fmt.Sprintf("%d", r.TotalOrders), money(r.TotalSpend), ""))
	}

	m.AddRows(sectionTitle("Stock contra ventas"))
	m.AddRows(tableHeader("Producto", "Nombre", "Stock", "Unidades vendidas", ""))
	for _, r := range report.StockVsSales {
		m.AddRows(tableRow(r.ProductID, r.ProductName, fmt.Sprintf("%d", r.CurrentStock), fmt.Sprintf("%d", r.TotalUnitsSold), ""))
	}

	m.AddRows(sectionTitle("Descuento y utilidad por categoría"))
	m.AddRows(tableHeader("Categoría", "Subcategoría", "Descuento prom. %", "Utilidad prom.", ""))
	for _, r := range report.DiscountProfit {
		m.AddRows(tableRow(r.Category, r.SubCategory, r.AvgDiscountPct.String(), money(r.AvgProfitPerItem), ""))
	}

	m.AddRows(sectionTitle("Desempeño de envíos"))
	m.AddRows(tableHeader("Modo de envío", "Pedidos", "Días promedio", "", ""))
	for _, r := range report.ShippingPerformance {
		m.AddRows(tableRow(r.ShipMode, fmt.Sprintf("%d", r.TotalOrders), r.AvgShippingDays.String(), "", ""))
	}

	m.AddRows(sectionTitle("Clientes frecuentes (más de 5 pedidos)"))
	m.AddRows(tableHeader("Cliente", "Pedidos", "Ventas totales", "Venta prom. por línea", ""))
	for _, r := range report.FrequentCustomers {
		m.AddRows(tableRow(r.CustomerName, fmt.Sprintf("%d", r.TotalOrders), money(r.TotalSales), money(r.AvgSalesPerItem), ""))
	}

	m.AddRows(sectionTitle("Serie mensual"))
	m.AddRows(tableHeader("Mes", "Ventas", "Utilidad", "Pedidos", "Margen %"))
	for _, r := range report.MonthlyTrend {
		m.AddRows(tableRow(r.Month, money(r.TotalSales), money(r.TotalProfit), fmt.Sprintf("%d", r.TotalOrders), nullPct(r.ProfitMarginPct)))
	}

	m.AddRows(sectionTitle("Top 10 productos por ventas"))
	m.AddRows(tableHeader("Producto", "Nombre", "Ventas", "Utilidad", "Unidades"))
	for _, r := range report.TopProducts {
		m.AddRows(tableRow(r.ProductID, r.ProductName, money(r.TotalSales), money(r.TotalProfit), fmt.Sprintf("%d", r.TotalQuantity)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(generatedAt string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Superstore Analytics — Reporte completo", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt, props.Text{
				Size: 8, Top: 5, Color: colorGray, Align: align.Right,
			}),
		),
	)
}

func overviewRows(o dto.OverviewDTO) []core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 4}),
		)
	}
	return []core.Row{
		row.New(12).Add(
			kpi("Ventas totales", money(o.TotalSales)),
			kpi("Utilidad total", money(o.TotalProfit)),
			kpi("Pedidos", fmt.Sprintf("%d", o.TotalOrders)),
			kpi("Valor promedio por pedido", money(o.AvgOrderValue)),
		),
	}
}

func sectionTitle(title string) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3,
			}),
		),
	)
}

// tableHeader fila de encabezado de 5 columnas; las vacías no se pintan.
func tableHeader(labels ...string) core.Row {
	r := row.New(6)
	for _, l := range labels {
		c := col.New(12 / len(labels))
		if l != "" {
			c.Add(text.New(l, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray}))
		}
		r.Add(c)
	}
	return r
}

func tableRow(values ...string) core.Row {
	r := row.New(5)
	for _, v := range values {
		c := col.New(12 / len(values))
		if v != "" {
			c.Add(text.New(v, props.Text{Size: 8}))
		}
		r.Add(c)
	}
	return r
}

// ── Formato ───────────────────────────────────────────────────────────────────

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// nullPct formatea un porcentaje que puede ser indefinido (ventas cero).
func nullPct(d decimal.NullDecimal) string {
	if !d.Valid {
		return "—"
	}
	return d.Decimal.StringFixed(2) + "%"
}
