// Package reporting implementa el motor de reportes del Superstore: funciones
// puras que transforman el snapshot inmutable (entity.Dataset) en conjuntos de
// resultados ordenados, con aritmética decimal exacta.
//
// Cada reporte sigue el mismo pipeline conceptual:
//
//	join → group → aggregate → filter → sort → limit
//
// La agrupación usa un map clave→acumulador más un slice con el orden de
// inserción: así los empates del sort estable quedan resueltos por orden de
// aparición en la entrada y el resultado es determinista entre ejecuciones.
//
// Política de huecos referenciales: los reportes con inner join descartan en
// silencio los pedidos cuyo ProductID/CustomerID no existe en la dimensión;
// StockVsSales (outer join) conserva toda fila de Stock aunque no tenga ventas.
package reporting

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/superstore-analytics/internal/domain/entity"
)

const (
	topCustomersLimit        = 10 // LIMIT del ranking de clientes
	topProductsLimit         = 10 // LIMIT del ranking de productos
	frequentCustomerMinOrder = 5  // HAVING COUNT(DISTINCT order_id) > 5
)

var hundred = decimal.NewFromInt(100)

// marginPct calcula profit/sales*100 redondeado a 2 decimales.
// Devuelve null cuando sales no es positivo: un margen sobre ventas cero es
// indefinido y se reporta como tal en vez de excluir el grupo o dividir por cero.
func marginPct(profit, sales decimal.Decimal) decimal.NullDecimal {
	if !sales.IsPositive() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{
		Decimal: profit.Div(sales).Mul(hundred).Round(2),
		Valid:   true,
	}
}

// ── 1. Rentabilidad por categoría ─────────────────────────────────────────────

// CategoryProfitability agrupa los pedidos por (categoría, subcategoría) del
// producto y acumula ventas, utilidad y margen. Orden: utilidad total descendente.
func CategoryProfitability(ds *entity.Dataset) []CategoryProfitabilityRow {
	type key struct{ category, subCategory string }
	type acc struct {
		totalSales  decimal.Decimal
		totalProfit decimal.Decimal
	}

	groups := make(map[key]*acc)
	var order []key

	for _, o := range ds.Orders {
		p, ok := ds.ProductByID(o.ProductID)
		if !ok {
			continue // hueco referencial: el inner join lo descarta
		}
		k := key{p.Category, p.SubCategory}
		g, exists := groups[k]
		if !exists {
			g = &acc{}
			groups[k] = g
			order = append(order, k)
		}
		g.totalSales = g.totalSales.Add(o.Sales)
		g.totalProfit = g.totalProfit.Add(o.Profit)
	}

	rows := make([]CategoryProfitabilityRow, 0, len(order))
	for _, k := range order {
		g := groups[k]
		rows = append(rows, CategoryProfitabilityRow{
			Category:        k.category,
			SubCategory:     k.subCategory,
			TotalSales:      g.totalSales,
			TotalProfit:     g.totalProfit,
			ProfitMarginPct: marginPct(g.totalProfit, g.totalSales),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalProfit.GreaterThan(rows[j].TotalProfit)
	})
	return rows
}

// ── 2. Top clientes por gasto ─────────────────────────────────────────────────

// TopCustomersBySpend agrupa los pedidos por (nombre, segmento) del cliente y
// devuelve los 10 con mayor gasto total. Los empates más allá del corte se
// resuelven por orden de aparición en la entrada (sort estable sobre el orden
// de inserción): la fuente no lo especifica, así que queda definido por la
// implementación y documentado aquí.
func TopCustomersBySpend(ds *entity.Dataset) []TopCustomerRow {
	type key struct{ name, segment string }
	type acc struct {
		orderIDs   map[string]struct{}
		totalSpend decimal.Decimal
	}

	groups := make(map[key]*acc)
	var order []key

	for _, o := range ds.Orders {
		c, ok := ds.CustomerByID(o.CustomerID)
		if !ok {
			continue
		}
		k := key{c.CustomerName, c.Segment}
		g, exists := groups[k]
		if !exists {
			g = &acc{orderIDs: make(map[string]struct{})}
			groups[k] = g
			order = append(order, k)
		}
		g.orderIDs[o.OrderID] = struct{}{}
		g.totalSpend = g.totalSpend.Add(o.Sales)
	}

	rows := make([]TopCustomerRow, 0, len(order))
	for _, k := range order {
		g := groups[k]
		rows = append(rows, TopCustomerRow{
			CustomerName: k.name,
			Segment:      k.segment,
			OrderCount:   len(g.orderIDs),
			TotalSpend:   g.totalSpend,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalSpend.GreaterThan(rows[j].TotalSpend)
	})
	if len(rows) > topCustomersLimit {
		rows = rows[:topCustomersLimit]
	}
	return rows
}

// ── 3. Stock contra ventas ────────────────────────────────────────────────────

// StockVsSales devuelve cada producto de la tabla Stock con sus unidades
// vendidas acumuladas; los productos sin pedidos aparecen con cero explícito
// (semántica de left outer join). Orden: stock actual ascendente.
func StockVsSales(ds *entity.Dataset) []StockVsSalesRow {
	unitsByProduct := make(map[string]int)
	for _, o := range ds.Orders {
		unitsByProduct[o.ProductID] += o.Quantity
	}

	type key struct {
		productID, productName string
		stock                  int
	}
	seen := make(map[key]struct{})
	rows := make([]StockVsSalesRow, 0, len(ds.Stocks))
	for _, s := range ds.Stocks {
		k := key{s.ProductID, s.ProductName, s.Stock}
		if _, dup := seen[k]; dup {
			continue // filas históricas idénticas colapsan en un solo grupo
		}
		seen[k] = struct{}{}
		rows = append(rows, StockVsSalesRow{
			ProductID:      s.ProductID,
			ProductName:    s.ProductName,
			Stock:          s.Stock,
			TotalUnitsSold: unitsByProduct[s.ProductID],
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Stock < rows[j].Stock
	})
	return rows
}

// ── 4. Descuento y utilidad por categoría ─────────────────────────────────────

// DiscountProfitByCategory calcula el descuento promedio (en %) y la utilidad
// promedio por línea para cada (categoría, subcategoría).
// Orden: utilidad promedio descendente.
func DiscountProfitByCategory(ds *entity.Dataset) []DiscountProfitRow {
	type key struct{ category, subCategory string }
	type acc struct {
		sumDiscount decimal.Decimal
		sumProfit   decimal.Decimal
		lines       int64
	}

	groups := make(map[key]*acc)
	var order []key

	for _, o := range ds.Orders {
		p, ok := ds.ProductByID(o.ProductID)
		if !ok {
			continue
		}
		k := key{p.Category, p.SubCategory}
		g, exists := groups[k]
		if !exists {
			g = &acc{}
			groups[k] = g
			order = append(order, k)
		}
		g.sumDiscount = g.sumDiscount.Add(o.Discount)
		g.sumProfit = g.sumProfit.Add(o.Profit)
		g.lines++
	}

	rows := make([]DiscountProfitRow, 0, len(order))
	for _, k := range order {
		g := groups[k]
		n := decimal.NewFromInt(g.lines) // siempre >= 1: el grupo existe porque tiene líneas
		rows = append(rows, DiscountProfitRow{
			Category:         k.category,
			SubCategory:      k.subCategory,
			AvgDiscountPct:   g.sumDiscount.Div(n).Mul(hundred).Round(2),
			AvgProfitPerItem: g.sumProfit.Div(n).Round(2),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AvgProfitPerItem.GreaterThan(rows[j].AvgProfitPerItem)
	})
	return rows
}

// ── 5. Desempeño de envíos ────────────────────────────────────────────────────

// ShippingPerformance agrupa por modo de envío y calcula el promedio de días
// calendario entre pedido y despacho, a 1 decimal. Orden: días promedio
// ascendente (el modo más rápido primero).
func ShippingPerformance(ds *entity.Dataset) []ShippingPerformanceRow {
	type acc struct {
		lines   int64
		sumDays int64
	}

	groups := make(map[string]*acc)
	var order []string

	for _, o := range ds.Orders {
		g, exists := groups[o.ShipMode]
		if !exists {
			g = &acc{}
			groups[o.ShipMode] = g
			order = append(order, o.ShipMode)
		}
		g.lines++
		g.sumDays += int64(o.ShippingDays())
	}

	rows := make([]ShippingPerformanceRow, 0, len(order))
	for _, mode := range order {
		g := groups[mode]
		avg := decimal.NewFromInt(g.sumDays).Div(decimal.NewFromInt(g.lines)).Round(1)
		rows = append(rows, ShippingPerformanceRow{
			ShipMode:        mode,
			TotalOrders:     int(g.lines),
			AvgShippingDays: avg,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AvgShippingDays.LessThan(rows[j].AvgShippingDays)
	})
	return rows
}

// ── 6. Clientes frecuentes ────────────────────────────────────────────────────

// FrequentCustomerSpend agrupa por el nombre denormalizado del pedido (sin join
// con Customers) y devuelve los clientes con más de cinco pedidos distintos.
// Orden: venta promedio por línea descendente.
func FrequentCustomerSpend(ds *entity.Dataset) []FrequentCustomerRow {
	type acc struct {
		orderIDs map[string]struct{}
		sumSales decimal.Decimal
		lines    int64
	}

	groups := make(map[string]*acc)
	var order []string

	for _, o := range ds.Orders {
		g, exists := groups[o.CustomerName]
		if !exists {
			g = &acc{orderIDs: make(map[string]struct{})}
			groups[o.CustomerName] = g
			order = append(order, o.CustomerName)
		}
		g.orderIDs[o.OrderID] = struct{}{}
		g.sumSales = g.sumSales.Add(o.Sales)
		g.lines++
	}

	rows := make([]FrequentCustomerRow, 0, len(order))
	for _, name := range order {
		g := groups[name]
		if len(g.orderIDs) <= frequentCustomerMinOrder {
			continue // HAVING COUNT(DISTINCT order_id) > 5
		}
		rows = append(rows, FrequentCustomerRow{
			CustomerName:    name,
			OrderCount:      len(g.orderIDs),
			TotalSales:      g.sumSales,
			AvgSalesPerItem: g.sumSales.Div(decimal.NewFromInt(g.lines)).Round(2),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AvgSalesPerItem.GreaterThan(rows[j].AvgSalesPerItem)
	})
	return rows
}

// ── 7. Resumen global ─────────────────────────────────────────────────────────

// Overview calcula los KPIs globales del dataset: ventas y utilidad totales,
// pedidos distintos y valor promedio por pedido (cero si no hay pedidos).
func Overview(ds *entity.Dataset) OverviewMetrics {
	var totalSales, totalProfit decimal.Decimal
	orderIDs := make(map[string]struct{})

	for _, o := range ds.Orders {
		totalSales = totalSales.Add(o.Sales)
		totalProfit = totalProfit.Add(o.Profit)
		orderIDs[o.OrderID] = struct{}{}
	}

	avgOrderValue := decimal.Zero
	if len(orderIDs) > 0 {
		avgOrderValue = totalSales.Div(decimal.NewFromInt(int64(len(orderIDs)))).Round(2)
	}
	return OverviewMetrics{
		TotalSales:    totalSales,
		TotalProfit:   totalProfit,
		TotalOrders:   len(orderIDs),
		AvgOrderValue: avgOrderValue,
	}
}

// ── 8. Serie mensual ──────────────────────────────────────────────────────────

// MonthlySalesTrend agrupa los pedidos por mes de OrderDate ("2006-01") con
// ventas, utilidad, pedidos distintos y margen. Orden: mes ascendente.
func MonthlySalesTrend(ds *entity.Dataset) []MonthlyTrendRow {
	type acc struct {
		totalSales  decimal.Decimal
		totalProfit decimal.Decimal
		orderIDs    map[string]struct{}
	}

	groups := make(map[string]*acc)
	var order []string

	for _, o := range ds.Orders {
		month := o.OrderDate.Format("2006-01")
		g, exists := groups[month]
		if !exists {
			g = &acc{orderIDs: make(map[string]struct{})}
			groups[month] = g
			order = append(order, month)
		}
		g.totalSales = g.totalSales.Add(o.Sales)
		g.totalProfit = g.totalProfit.Add(o.Profit)
		g.orderIDs[o.OrderID] = struct{}{}
	}

	rows := make([]MonthlyTrendRow, 0, len(order))
	for _, month := range order {
		g := groups[month]
		rows = append(rows, MonthlyTrendRow{
			Month:           month,
			TotalSales:      g.totalSales,
			TotalProfit:     g.totalProfit,
			TotalOrders:     len(g.orderIDs),
			ProfitMarginPct: marginPct(g.totalProfit, g.totalSales),
		})
	}
	// El formato "2006-01" ordena cronológicamente como string
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Month < rows[j].Month
	})
	return rows
}

// ── 9. Top productos por ventas ───────────────────────────────────────────────

// TopProductsBySales agrupa los pedidos por producto y devuelve los 10 con
// mayor venta acumulada. El nombre se resuelve contra la tabla Stock; un
// producto sin fila de stock conserva su ID como nombre visible.
func TopProductsBySales(ds *entity.Dataset) []TopProductRow {
	nameByProduct := make(map[string]string, len(ds.Stocks))
	for _, s := range ds.Stocks {
		nameByProduct[s.ProductID] = s.ProductName
	}

	type acc struct {
		totalSales    decimal.Decimal
		totalProfit   decimal.Decimal
		totalQuantity int
	}

	groups := make(map[string]*acc)
	var order []string

	for _, o := range ds.Orders {
		g, exists := groups[o.ProductID]
		if !exists {
			g = &acc{}
			groups[o.ProductID] = g
			order = append(order, o.ProductID)
		}
		g.totalSales = g.totalSales.Add(o.Sales)
		g.totalProfit = g.totalProfit.Add(o.Profit)
		g.totalQuantity += o.Quantity
	}

	rows := make([]TopProductRow, 0, len(order))
	for _, id := range order {
		g := groups[id]
		name, ok := nameByProduct[id]
		if !ok {
			name = id
		}
		rows = append(rows, TopProductRow{
			ProductID:     id,
			ProductName:   name,
			TotalSales:    g.totalSales,
			TotalProfit:   g.totalProfit,
			TotalQuantity: g.totalQuantity,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalSales.GreaterThan(rows[j].TotalSales)
	})
	if len(rows) > topProductsLimit {
		rows = rows[:topProductsLimit]
	}
	return rows
}
