package reporting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/superstore-analytics/internal/domain/entity"
	"github.com/jhoicas/superstore-analytics/internal/domain/reporting"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic("decimal de test inválido: " + s)
	}
	return d
}

// day devuelve una fecha fija de 2024 con el día indicado.
func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

type orderInput struct {
	orderID      string
	customerID   string
	customerName string
	productID    string
	sales        string
	profit       string
	discount     string
	quantity     int
	shipMode     string
	orderDay     int
	shipDay      int
}

func buildOrder(s orderInput) entity.Order {
	if s.shipMode == "" {
		s.shipMode = "Standard Class"
	}
	if s.orderDay == 0 {
		s.orderDay = 1
	}
	if s.shipDay == 0 {
		s.shipDay = s.orderDay
	}
	if s.discount == "" {
		s.discount = "0"
	}
	return entity.Order{
		OrderID:      s.orderID,
		CustomerID:   s.customerID,
		CustomerName: s.customerName,
		ProductID:    s.productID,
		Sales:        dec(s.sales),
		Profit:       dec(s.profit),
		Discount:     dec(s.discount),
		Quantity:     s.quantity,
		ShipMode:     s.shipMode,
		OrderDate:    day(s.orderDay),
		ShipDate:     day(s.shipDay),
	}
}

// buildDataset arma un dataset pequeño pero completo:
//   - 2 categorías (A con 2 subcategorías, B con 1)
//   - 3 clientes, uno con varios pedidos
//   - stock con un producto sin ventas
func buildDataset() *entity.Dataset {
	products := []entity.Product{
		{ProductID: "P1", Category: "Furniture", SubCategory: "Chairs"},
		{ProductID: "P2", Category: "Furniture", SubCategory: "Tables"},
		{ProductID: "P3", Category: "Technology", SubCategory: "Phones"},
	}
	customers := []entity.Customer{
		{CustomerID: "C1", CustomerName: "Ana Ruiz", Segment: "Consumer"},
		{CustomerID: "C2", CustomerName: "Luis Gómez", Segment: "Corporate"},
		{CustomerID: "C3", CustomerName: "Marta Díaz", Segment: "Consumer"},
	}
	stocks := []entity.Stock{
		{ProductID: "P1", ProductName: "Silla ergonómica", Stock: 40},
		{ProductID: "P2", ProductName: "Mesa plegable", Stock: 5},
		{ProductID: "P3", ProductName: "Teléfono IP", Stock: 120},
		{ProductID: "P9", ProductName: "Archivador", Stock: 7}, // nunca vendido
	}
	orders := []entity.Order{
		buildOrder(orderInput{orderID: "O1", customerID: "C1", customerName: "Ana Ruiz", productID: "P1",
			sales: "100", profit: "20", discount: "0.10", quantity: 2, orderDay: 1, shipDay: 4}),
		buildOrder(orderInput{orderID: "O1", customerID: "C1", customerName: "Ana Ruiz", productID: "P2",
			sales: "50", profit: "-10", discount: "0.30", quantity: 1, orderDay: 1, shipDay: 4}),
		buildOrder(orderInput{orderID: "O2", customerID: "C2", customerName: "Luis Gómez", productID: "P3",
			sales: "300", profit: "90", quantity: 3, shipMode: "First Class", orderDay: 2, shipDay: 3}),
		buildOrder(orderInput{orderID: "O3", customerID: "C3", customerName: "Marta Díaz", productID: "P1",
			sales: "80", profit: "8", discount: "0.20", quantity: 4, orderDay: 5, shipDay: 10}),
	}
	return entity.NewDataset(orders, products, customers, stocks)
}

// ──────────────────────────────────────────────────────────────────────────────
// 1. CategoryProfitability
// ──────────────────────────────────────────────────────────────────────────────

// Ejemplo de la hoja de cálculo de referencia: ventas 100+50, utilidad 20-10
// bajo la misma categoría → total 150, utilidad 10, margen 6.67%.
func TestCategoryProfitability_MargenEjemploConocido(t *testing.T) {
	products := []entity.Product{{ProductID: "P1", Category: "A", SubCategory: "S"}}
	orders := []entity.Order{
		buildOrder(orderInput{orderID: "O1", productID: "P1", sales: "100", profit: "20"}),
		buildOrder(orderInput{orderID: "O2", productID: "P1", sales: "50", profit: "-10"}),
	}
	ds := entity.NewDataset(orders, products, nil, nil)

	rows := reporting.CategoryProfitability(ds)
	require.Len(t, rows, 1)
	assert.Equal(t, "150", rows[0].TotalSales.String(), "ventas totales del grupo")
	assert.Equal(t, "10", rows[0].TotalProfit.String(), "utilidad total del grupo")
	require.True(t, rows[0].ProfitMarginPct.Valid, "el margen debe estar definido")
	assert.Equal(t, "6.67", rows[0].ProfitMarginPct.Decimal.String(),
		"margen = 10/150*100 redondeado a 2 decimales")
}

func TestCategoryProfitability_OrdenPorUtilidadDescendente(t *testing.T) {
	rows := reporting.CategoryProfitability(buildDataset())
	require.NotEmpty(t, rows)
	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i-1].TotalProfit.GreaterThanOrEqual(rows[i].TotalProfit),
			"las filas deben venir ordenadas por utilidad total descendente")
	}
	assert.Equal(t, "Technology", rows[0].Category, "Technology (utilidad 90) va primero")
}

// Grupo con ventas cero: el margen es indefinido y se reporta como null,
// sin excluir el grupo ni dividir por cero.
func TestCategoryProfitability_VentasCeroMargenNull(t *testing.T) {
	products := []entity.Product{{ProductID: "P1", Category: "A", SubCategory: "S"}}
	orders := []entity.Order{
		buildOrder(orderInput{orderID: "O1", productID: "P1", sales: "0", profit: "-5"}),
	}
	ds := entity.NewDataset(orders, products, nil, nil)

	rows := reporting.CategoryProfitability(ds)
	require.Len(t, rows, 1, "el grupo con ventas cero debe aparecer")
	assert.False(t, rows[0].ProfitMarginPct.Valid, "el margen debe reportarse como null")
}

// Conservación bajo agrupación: la suma de ventas de todos los grupos es igual
// a la suma de ventas de las líneas que pasan el join.
func TestCategoryProfitability_ConservacionDeVentas(t *testing.T) {
	ds := buildDataset()
	rows := reporting.CategoryProfitability(ds)

	var fromGroups, fromOrders decimal.Decimal
	for _, r := range rows {
		fromGroups = fromGroups.Add(r.TotalSales)
	}
	for _, o := range ds.Orders {
		if _, ok := ds.ProductByID(o.ProductID); ok {
			fromOrders = fromOrders.Add(o.Sales)
		}
	}
	assert.True(t, fromGroups.Equal(fromOrders),
		"la agrupación no debe crear ni perder ventas: %s vs %s", fromGroups, fromOrders)
}

// Un pedido que referencia un producto inexistente se descarta en silencio.
func TestCategoryProfitability_HuecoReferencialDescartado(t *testing.T) {
	products := []entity.Product{{ProductID: "P1", Category: "A", SubCategory: "S"}}
	orders := []entity.Order{
		buildOrder(orderInput{orderID: "O1", productID: "P1", sales: "100", profit: "10"}),
		buildOrder(orderInput{orderID: "O2", productID: "NOEXISTE", sales: "999", profit: "999"}),
	}
	ds := entity.NewDataset(orders, products, nil, nil)

	rows := reporting.CategoryProfitability(ds)
	require.Len(t, rows, 1)
	assert.Equal(t, "100", rows[0].TotalSales.String(),
		"la línea sin producto no debe contaminar el agregado")
}

// ──────────────────────────────────────────────────────────────────────────────
// 2. TopCustomersBySpend
// ──────────────────────────────────────────────────────────────────────────────

func TestTopCustomersBySpend_CuentaPedidosDistintos(t *testing.T) {
	rows := reporting.TopCustomersBySpend(buildDataset())
	require.NotEmpty(t, rows)

	// Ana Ruiz tiene dos líneas del mismo pedido O1: cuenta como 1 pedido
	var ana *reporting.TopCustomerRow
	for i := range rows {
		if rows[i].CustomerName == "Ana Ruiz" {
			ana = &rows[i]
		}
	}
	require.NotNil(t, ana, "Ana Ruiz debe estar en el ranking")
	assert.Equal(t, 1, ana.OrderCount, "dos líneas del mismo OrderID son un solo pedido")
	assert.Equal(t, "150", ana.TotalSpend.String())
}

func TestTopCustomersBySpend_LimiteDiezFilas(t *testing.T) {
	var customers []entity.Customer
	var orders []entity.Order
	for i := 0; i < 15; i++ {
		id := string(rune('A' + i))
		customers = append(customers, entity.Customer{
			CustomerID: "C" + id, CustomerName: "Cliente " + id, Segment: "Consumer",
		})
		orders = append(orders, buildOrder(orderInput{
			orderID: "O" + id, customerID: "C" + id, customerName: "Cliente " + id,
			productID: "P1", sales: "100", profit: "10",
		}))
	}
	ds := entity.NewDataset(orders, nil, customers, nil)

	rows := reporting.TopCustomersBySpend(ds)
	assert.Len(t, rows, 10, "el ranking se corta en 10 filas")
	// Con gasto idéntico, el corte respeta el orden de aparición en la entrada
	assert.Equal(t, "Cliente A", rows[0].CustomerName,
		"empates resueltos por orden de inserción (determinista)")
	assert.Equal(t, "Cliente J", rows[9].CustomerName)
}

func TestTopCustomersBySpend_OrdenPorGastoDescendente(t *testing.T) {
	rows := reporting.TopCustomersBySpend(buildDataset())
	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i-1].TotalSpend.GreaterThanOrEqual(rows[i].TotalSpend))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// 3. StockVsSales
// ──────────────────────────────────────────────────────────────────────────────

func TestStockVsSales_ProductoSinVentasApareceConCero(t *testing.T) {
	rows := reporting.StockVsSales(buildDataset())

	var sinVentas *reporting.StockVsSalesRow
	for i := range rows {
		if rows[i].ProductID == "P9" {
			sinVentas = &rows[i]
		}
	}
	require.NotNil(t, sinVentas, "el outer join debe conservar el producto sin pedidos")
	assert.Equal(t, 0, sinVentas.TotalUnitsSold, "cero explícito, no omisión")
}

func TestStockVsSales_CadaProductoApareceUnaVez(t *testing.T) {
	ds := buildDataset()
	rows := reporting.StockVsSales(ds)

	seen := make(map[string]int)
	for _, r := range rows {
		seen[r.ProductID]++
	}
	for _, s := range ds.Stocks {
		assert.Equal(t, 1, seen[s.ProductID],
			"el producto %s debe aparecer exactamente una vez", s.ProductID)
	}
}

func TestStockVsSales_OrdenPorStockAscendenteYUnidades(t *testing.T) {
	rows := reporting.StockVsSales(buildDataset())
	require.Len(t, rows, 4)
	for i := 1; i < len(rows); i++ {
		assert.LessOrEqual(t, rows[i-1].Stock, rows[i].Stock, "stock ascendente")
	}
	// P1 se vendió en dos líneas: 2 + 4 unidades
	for _, r := range rows {
		if r.ProductID == "P1" {
			assert.Equal(t, 6, r.TotalUnitsSold)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// 4. DiscountProfitByCategory
// ──────────────────────────────────────────────────────────────────────────────

func TestDiscountProfitByCategory_Promedios(t *testing.T) {
	rows := reporting.DiscountProfitByCategory(buildDataset())

	// Furniture/Chairs: líneas P1 con descuentos 0.10 y 0.20, utilidades 20 y 8
	var chairs *reporting.DiscountProfitRow
	for i := range rows {
		if rows[i].SubCategory == "Chairs" {
			chairs = &rows[i]
		}
	}
	require.NotNil(t, chairs)
	assert.Equal(t, "15", chairs.AvgDiscountPct.String(), "(0.10+0.20)/2*100 = 15")
	assert.Equal(t, "14", chairs.AvgProfitPerItem.String(), "(20+8)/2 = 14")
}

func TestDiscountProfitByCategory_OrdenPorUtilidadPromedio(t *testing.T) {
	rows := reporting.DiscountProfitByCategory(buildDataset())
	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i-1].AvgProfitPerItem.GreaterThanOrEqual(rows[i].AvgProfitPerItem))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// 5. ShippingPerformance
// ──────────────────────────────────────────────────────────────────────────────

func TestShippingPerformance_PromedioDiasCalendario(t *testing.T) {
	rows := reporting.ShippingPerformance(buildDataset())
	require.Len(t, rows, 2)

	// First Class: 1 línea, 1 día. Standard Class: líneas con 3, 3 y 5 días.
	assert.Equal(t, "First Class", rows[0].ShipMode, "el modo más rápido va primero")
	assert.Equal(t, "1", rows[0].AvgShippingDays.String())
	assert.Equal(t, "Standard Class", rows[1].ShipMode)
	assert.Equal(t, "3.7", rows[1].AvgShippingDays.String(), "(3+3+5)/3 = 3.67 → 3.7 a un decimal")
	assert.Equal(t, 3, rows[1].TotalOrders)
}

func TestShippingPerformance_GranularidadDiaIgnoraHoras(t *testing.T) {
	o := entity.Order{
		OrderDate: time.Date(2024, time.March, 1, 23, 50, 0, 0, time.UTC),
		ShipDate:  time.Date(2024, time.March, 2, 0, 5, 0, 0, time.UTC),
	}
	assert.Equal(t, 1, o.ShippingDays(), "10 minutos cruzando medianoche cuentan como 1 día calendario")
}

// ──────────────────────────────────────────────────────────────────────────────
// 6. FrequentCustomerSpend
// ──────────────────────────────────────────────────────────────────────────────

// frequentOrders genera `n` pedidos distintos de 100 en ventas para un nombre.
func frequentOrders(name, prefix string, n int) []entity.Order {
	var orders []entity.Order
	for i := 0; i < n; i++ {
		orders = append(orders, buildOrder(orderInput{
			orderID: prefix + string(rune('0'+i)), customerID: "C-" + name,
			customerName: name, productID: "P1", sales: "100", profit: "10",
		}))
	}
	return orders
}

func TestFrequentCustomerSpend_FiltraMenosDeSeisPedidos(t *testing.T) {
	orders := append(frequentOrders("Frecuente", "F", 6), frequentOrders("Ocasional", "O", 5)...)
	ds := entity.NewDataset(orders, nil, nil, nil)

	rows := reporting.FrequentCustomerSpend(ds)
	require.Len(t, rows, 1, "solo clientes con MÁS de 5 pedidos distintos")
	assert.Equal(t, "Frecuente", rows[0].CustomerName)
	assert.Equal(t, 6, rows[0].OrderCount)
	assert.Equal(t, "600", rows[0].TotalSales.String())
	assert.Equal(t, "100", rows[0].AvgSalesPerItem.String())
}

// Dos clientes con IDs distintos pero el mismo nombre se consolidan en una
// fila: es el comportamiento literal de la fuente (agrupa por nombre sin join)
// y se preserva como caveat de calidad de datos, no se "corrige".
func TestFrequentCustomerSpend_HomonimosSeConsolidan(t *testing.T) {
	var orders []entity.Order
	for i := 0; i < 4; i++ {
		orders = append(orders, buildOrder(orderInput{
			orderID: "A" + string(rune('0'+i)), customerID: "C1",
			customerName: "Juan Pérez", productID: "P1", sales: "100", profit: "1",
		}))
	}
	for i := 0; i < 4; i++ {
		orders = append(orders, buildOrder(orderInput{
			orderID: "B" + string(rune('0'+i)), customerID: "C2", // otro cliente, mismo nombre
			customerName: "Juan Pérez", productID: "P1", sales: "200", profit: "1",
		}))
	}
	ds := entity.NewDataset(orders, nil, nil, nil)

	rows := reporting.FrequentCustomerSpend(ds)
	require.Len(t, rows, 1, "los homónimos cuentan como un solo grupo")
	assert.Equal(t, 8, rows[0].OrderCount, "los pedidos de ambos IDs se suman")
	assert.Equal(t, "1200", rows[0].TotalSales.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// 7–9. Reportes del dashboard original
// ──────────────────────────────────────────────────────────────────────────────

func TestOverview_KPIsGlobales(t *testing.T) {
	m := reporting.Overview(buildDataset())
	assert.Equal(t, "530", m.TotalSales.String(), "100+50+300+80")
	assert.Equal(t, "108", m.TotalProfit.String(), "20-10+90+8")
	assert.Equal(t, 3, m.TotalOrders, "O1 tiene dos líneas pero es un pedido")
	assert.Equal(t, "176.67", m.AvgOrderValue.String(), "530/3 redondeado")
}

func TestOverview_DatasetVacioSinDivisionPorCero(t *testing.T) {
	m := reporting.Overview(entity.NewDataset(nil, nil, nil, nil))
	assert.Equal(t, 0, m.TotalOrders)
	assert.True(t, m.AvgOrderValue.IsZero(), "sin pedidos el valor promedio es cero, no un error")
}

func TestMonthlySalesTrend_MesesAscendentes(t *testing.T) {
	orders := []entity.Order{
		buildOrder(orderInput{orderID: "O1", productID: "P1", sales: "100", profit: "20"}),
	}
	orders[0].OrderDate = time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	orders = append(orders, buildOrder(orderInput{orderID: "O2", productID: "P1", sales: "50", profit: "5"}))
	orders[1].OrderDate = time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)

	rows := reporting.MonthlySalesTrend(entity.NewDataset(orders, nil, nil, nil))
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-02", rows[0].Month, "la serie va en orden cronológico")
	assert.Equal(t, "2024-05", rows[1].Month)
	require.True(t, rows[1].ProfitMarginPct.Valid)
	assert.Equal(t, "20", rows[1].ProfitMarginPct.Decimal.String(), "20/100*100")
}

func TestTopProductsBySales_NombreDesdeStockConFallback(t *testing.T) {
	rows := reporting.TopProductsBySales(buildDataset())
	require.NotEmpty(t, rows)
	assert.Equal(t, "P3", rows[0].ProductID, "P3 vendió 300, el mayor")
	assert.Equal(t, "Teléfono IP", rows[0].ProductName, "el nombre sale de la tabla Stock")

	// Producto sin fila de stock: conserva el ID como nombre
	orders := []entity.Order{
		buildOrder(orderInput{orderID: "O1", productID: "HUERFANO", sales: "10", profit: "1"}),
	}
	rows = reporting.TopProductsBySales(entity.NewDataset(orders, nil, nil, nil))
	require.Len(t, rows, 1)
	assert.Equal(t, "HUERFANO", rows[0].ProductName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Determinismo
// ──────────────────────────────────────────────────────────────────────────────

// Dos ejecuciones sobre el mismo snapshot deben producir exactamente el mismo
// resultado, incluyendo el orden de los empates (no hay estado oculto).
func TestReportes_DeterministasEntreEjecuciones(t *testing.T) {
	ds := buildDataset()

	assert.Equal(t, reporting.CategoryProfitability(ds), reporting.CategoryProfitability(ds))
	assert.Equal(t, reporting.TopCustomersBySpend(ds), reporting.TopCustomersBySpend(ds))
	assert.Equal(t, reporting.StockVsSales(ds), reporting.StockVsSales(ds))
	assert.Equal(t, reporting.DiscountProfitByCategory(ds), reporting.DiscountProfitByCategory(ds))
	assert.Equal(t, reporting.ShippingPerformance(ds), reporting.ShippingPerformance(ds))
	assert.Equal(t, reporting.FrequentCustomerSpend(ds), reporting.FrequentCustomerSpend(ds))
	assert.Equal(t, reporting.Overview(ds), reporting.Overview(ds))
	assert.Equal(t, reporting.MonthlySalesTrend(ds), reporting.MonthlySalesTrend(ds))
	assert.Equal(t, reporting.TopProductsBySales(ds), reporting.TopProductsBySales(ds))
}
