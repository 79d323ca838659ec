// Package reports contiene el caso de uso que orquesta el motor de reportes:
// ejecuta los nueve reportes sobre el snapshot cargado y los convierte en DTOs.
package reports

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/superstore-analytics/internal/application/dto"
	"github.com/jhoicas/superstore-analytics/internal/domain/entity"
	"github.com/jhoicas/superstore-analytics/internal/domain/reporting"
)

// UseCase expone los reportes sobre un snapshot inmutable del Superstore.
// Las funciones del motor son puras y el dataset no se muta después de la
// carga, así que todas las operaciones son seguras en paralelo sin locks.
type UseCase struct {
	ds *entity.Dataset
}

// NewUseCase construye el caso de uso sobre el dataset cargado.
func NewUseCase(ds *entity.Dataset) *UseCase {
	return &UseCase{ds: ds}
}

// ── Reportes individuales ─────────────────────────────────────────────────────

// CategoryProfitability ventas, utilidad y margen por categoría/subcategoría.
func (uc *UseCase) CategoryProfitability() []dto.CategoryProfitabilityDTO {
	return toCategoryProfitabilityDTOs(reporting.CategoryProfitability(uc.ds))
}

// TopCustomers los 10 clientes con mayor gasto total.
func (uc *UseCase) TopCustomers() []dto.TopCustomerDTO {
	return toTopCustomerDTOs(reporting.TopCustomersBySpend(uc.ds))
}

// StockVsSales existencias contra unidades vendidas (outer join completo).
func (uc *UseCase) StockVsSales() []dto.StockVsSalesDTO {
	return toStockVsSalesDTOs(reporting.StockVsSales(uc.ds))
}

// DiscountProfit descuento y utilidad promedio por categoría.
func (uc *UseCase) DiscountProfit() []dto.DiscountProfitDTO {
	return toDiscountProfitDTOs(reporting.DiscountProfitByCategory(uc.ds))
}

// ShippingPerformance días promedio de despacho por modo de envío.
func (uc *UseCase) ShippingPerformance() []dto.ShippingPerformanceDTO {
	return toShippingPerformanceDTOs(reporting.ShippingPerformance(uc.ds))
}

// FrequentCustomers clientes con más de cinco pedidos distintos.
func (uc *UseCase) FrequentCustomers() []dto.FrequentCustomerDTO {
	return toFrequentCustomerDTOs(reporting.FrequentCustomerSpend(uc.ds))
}

// Overview KPIs globales del dataset.
func (uc *UseCase) Overview() dto.OverviewDTO {
	return toOverviewDTO(reporting.Overview(uc.ds))
}

// MonthlyTrend serie mensual de ventas y utilidad.
func (uc *UseCase) MonthlyTrend() []dto.MonthlyTrendDTO {
	return toMonthlyTrendDTOs(reporting.MonthlySalesTrend(uc.ds))
}

// TopProducts los 10 productos con mayor venta acumulada.
func (uc *UseCase) TopProducts() []dto.TopProductDTO {
	return toTopProductDTOs(reporting.TopProductsBySales(uc.ds))
}

// ── Reporte combinado ─────────────────────────────────────────────────────────

// section una consulta del reporte combinado, con el nombre que identifica
// al reporte en los errores.
type section struct {
	name string
	fn   func()
}

// sections arma las nueve consultas del reporte combinado. Cada una escribe
// un campo distinto de out: no hay carrera entre ellas.
func (uc *UseCase) sections(out *dto.FullReportDTO) []section {
	return []section{
		{"overview", func() { out.Overview = uc.Overview() }},
		{"category-profitability", func() { out.CategoryProfitability = uc.CategoryProfitability() }},
		{"top-customers", func() { out.TopCustomers = uc.TopCustomers() }},
		{"stock-vs-sales", func() { out.StockVsSales = uc.StockVsSales() }},
		{"discount-profit", func() { out.DiscountProfit = uc.DiscountProfit() }},
		{"shipping-performance", func() { out.ShippingPerformance = uc.ShippingPerformance() }},
		{"frequent-customers", func() { out.FrequentCustomers = uc.FrequentCustomers() }},
		{"monthly-trend", func() { out.MonthlyTrend = uc.MonthlyTrend() }},
		{"top-products", func() { out.TopProducts = uc.TopProducts() }},
	}
}

// runSections ejecuta las secciones en paralelo, cada una en su goroutine con
// recover: un fallo en una no aborta las demás; los errores se acumulan con el
// nombre de la sección y se devuelven juntos al final.
func runSections(ctx context.Context, secs []section) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, s := range secs {
		s := s
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					errs = append(errs, fmt.Errorf("reporte %s: %v", s.name, r))
					mu.Unlock()
				}
			}()
			s.fn()
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Join(errs...)
}

// FullReport ejecuta los nueve reportes en paralelo sobre el mismo snapshot.
func (uc *UseCase) FullReport(ctx context.Context) (*dto.FullReportDTO, error) {
	out := &dto.FullReportDTO{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := runSections(ctx, uc.sections(out)); err != nil {
		return nil, err
	}
	return out, nil
}

// ── Conversión a DTO ──────────────────────────────────────────────────────────

func toCategoryProfitabilityDTOs(rows []reporting.CategoryProfitabilityRow) []dto.CategoryProfitabilityDTO {
	out := make([]dto.CategoryProfitabilityDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CategoryProfitabilityDTO{
			Category:        r.Category,
			SubCategory:     r.SubCategory,
			TotalSales:      r.TotalSales.Round(2),
			TotalProfit:     r.TotalProfit.Round(2),
			ProfitMarginPct: r.ProfitMarginPct,
		})
	}
	return out
}

func toTopCustomerDTOs(rows []reporting.TopCustomerRow) []dto.TopCustomerDTO {
	out := make([]dto.TopCustomerDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopCustomerDTO{
			CustomerName: r.CustomerName,
			Segment:      r.Segment,
			TotalOrders:  r.OrderCount,
			TotalSpend:   r.TotalSpend.Round(2),
		})
	}
	return out
}

func toStockVsSalesDTOs(rows []reporting.StockVsSalesRow) []dto.StockVsSalesDTO {
	out := make([]dto.StockVsSalesDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockVsSalesDTO{
			ProductID:      r.ProductID,
			ProductName:    r.ProductName,
			CurrentStock:   r.Stock,
			TotalUnitsSold: r.TotalUnitsSold,
		})
	}
	return out
}

func toDiscountProfitDTOs(rows []reporting.DiscountProfitRow) []dto.DiscountProfitDTO {
	out := make([]dto.DiscountProfitDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DiscountProfitDTO{
			Category:         r.Category,
			SubCategory:      r.SubCategory,
			AvgDiscountPct:   r.AvgDiscountPct,
			AvgProfitPerItem: r.AvgProfitPerItem,
		})
	}
	return out
}

func toShippingPerformanceDTOs(rows []reporting.ShippingPerformanceRow) []dto.ShippingPerformanceDTO {
	out := make([]dto.ShippingPerformanceDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ShippingPerformanceDTO{
			ShipMode:        r.ShipMode,
			TotalOrders:     r.TotalOrders,
			AvgShippingDays: r.AvgShippingDays,
		})
	}
	return out
}

func toFrequentCustomerDTOs(rows []reporting.FrequentCustomerRow) []dto.FrequentCustomerDTO {
	out := make([]dto.FrequentCustomerDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FrequentCustomerDTO{
			CustomerName:    r.CustomerName,
			TotalOrders:     r.OrderCount,
			TotalSales:      r.TotalSales.Round(2),
			AvgSalesPerItem: r.AvgSalesPerItem,
		})
	}
	return out
}

func toOverviewDTO(m reporting.OverviewMetrics) dto.OverviewDTO {
	return dto.OverviewDTO{
		TotalSales:    m.TotalSales.Round(2),
		TotalProfit:   m.TotalProfit.Round(2),
		TotalOrders:   m.TotalOrders,
		AvgOrderValue: m.AvgOrderValue,
	}
}

func toMonthlyTrendDTOs(rows []reporting.MonthlyTrendRow) []dto.MonthlyTrendDTO {
	out := make([]dto.MonthlyTrendDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MonthlyTrendDTO{
			Month:           r.Month,
			TotalSales:      r.TotalSales.Round(2),
			TotalProfit:     r.TotalProfit.Round(2),
			TotalOrders:     r.TotalOrders,
			ProfitMarginPct: r.ProfitMarginPct,
		})
	}
	return out
}

func toTopProductDTOs(rows []reporting.TopProductRow) []dto.TopProductDTO {
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID:     r.ProductID,
			ProductName:   r.ProductName,
			TotalSales:    r.TotalSales.Round(2),
			TotalProfit:   r.TotalProfit.Round(2),
			TotalQuantity: r.TotalQuantity,
		})
	}
	return out
}
