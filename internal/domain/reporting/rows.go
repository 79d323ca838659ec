package reporting

import "github.com/shopspring/decimal"

// Filas de resultado de cada reporte. Son tipos de dominio puros (sin tags
// JSON): la capa de aplicación los convierte en DTOs para la API.

// CategoryProfitabilityRow rentabilidad agregada por categoría y subcategoría.
type CategoryProfitabilityRow struct {
	Category        string
	SubCategory     string
	TotalSales      decimal.Decimal
	TotalProfit     decimal.Decimal
	ProfitMarginPct decimal.NullDecimal // null cuando TotalSales es cero (margen indefinido)
}

// TopCustomerRow gasto acumulado de un cliente (join con Customers).
type TopCustomerRow struct {
	CustomerName string
	Segment      string
	OrderCount   int // pedidos distintos (DISTINCT OrderID)
	TotalSpend   decimal.Decimal
}

// StockVsSalesRow existencias actuales contra unidades vendidas.
// TotalUnitsSold es 0 para productos sin ningún pedido (outer join).
type StockVsSalesRow struct {
	ProductID      string
	ProductName    string
	Stock          int
	TotalUnitsSold int
}

// DiscountProfitRow descuento y utilidad promedio por categoría/subcategoría.
type DiscountProfitRow struct {
	Category         string
	SubCategory      string
	AvgDiscountPct   decimal.Decimal // avg(discount) * 100, 2 decimales
	AvgProfitPerItem decimal.Decimal // avg(profit), 2 decimales
}

// ShippingPerformanceRow desempeño de despacho por modo de envío.
type ShippingPerformanceRow struct {
	ShipMode        string
	TotalOrders     int             // líneas de pedido (count, no distinct)
	AvgShippingDays decimal.Decimal // días calendario promedio, 1 decimal
}

// FrequentCustomerRow gasto de clientes con más de cinco pedidos distintos.
// Agrupa por nombre denormalizado del pedido, sin join con Customers: dos
// clientes homónimos con IDs distintos se consolidan en una fila. Es un
// defecto latente de la fuente que se preserva a propósito.
type FrequentCustomerRow struct {
	CustomerName    string
	OrderCount      int
	TotalSales      decimal.Decimal
	AvgSalesPerItem decimal.Decimal // avg(sales) por línea, 2 decimales
}

// OverviewMetrics KPIs globales del dataset completo.
type OverviewMetrics struct {
	TotalSales    decimal.Decimal
	TotalProfit   decimal.Decimal
	TotalOrders   int             // pedidos distintos
	AvgOrderValue decimal.Decimal // TotalSales / TotalOrders, cero si no hay pedidos
}

// MonthlyTrendRow serie mensual de ventas, utilidad y pedidos.
type MonthlyTrendRow struct {
	Month           string // "2006-01"
	TotalSales      decimal.Decimal
	TotalProfit     decimal.Decimal
	TotalOrders     int
	ProfitMarginPct decimal.NullDecimal // null cuando el mes no tiene ventas
}

// TopProductRow ventas acumuladas de un producto.
// El nombre sale de la tabla Stock; si el producto no tiene fila de stock se
// usa el ProductID como nombre.
type TopProductRow struct {
	ProductID     string
	ProductName   string
	TotalSales    decimal.Decimal
	TotalProfit   decimal.Decimal
	TotalQuantity int
}
