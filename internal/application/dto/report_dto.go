package dto

import "github.com/shopspring/decimal"

// DTOs de los reportes tal como salen por la API. Los campos decimales van
// redondeados desde el motor; aquí solo se les pone forma JSON.
// Los porcentajes indefinidos (denominador cero) serializan como null.

// ── Reportes principales ──────────────────────────────────────────────────────

// CategoryProfitabilityDTO fila de GET /api/reports/category-profitability.
type CategoryProfitabilityDTO struct {
	Category        string              `json:"category"`
	SubCategory     string              `json:"sub_category"`
	TotalSales      decimal.Decimal     `json:"total_sales"`
	TotalProfit     decimal.Decimal     `json:"total_profit"`
	ProfitMarginPct decimal.NullDecimal `json:"profit_margin_percentage"` // null si el grupo no tuvo ventas
}

// TopCustomerDTO fila de GET /api/reports/top-customers (máx. 10).
type TopCustomerDTO struct {
	CustomerName string          `json:"customer_name"`
	Segment      string          `json:"segment"`
	TotalOrders  int             `json:"total_orders"` // pedidos distintos
	TotalSpend   decimal.Decimal `json:"total_spend"`
}

// StockVsSalesDTO fila de GET /api/reports/stock-vs-sales.
type StockVsSalesDTO struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	CurrentStock   int    `json:"current_stock"`
	TotalUnitsSold int    `json:"total_units_sold"` // 0 para productos sin ventas
}

// DiscountProfitDTO fila de GET /api/reports/discount-profit.
type DiscountProfitDTO struct {
	Category         string          `json:"category"`
	SubCategory      string          `json:"sub_category"`
	AvgDiscountPct   decimal.Decimal `json:"avg_discount_percentage"`
	AvgProfitPerItem decimal.Decimal `json:"avg_profit_per_item"`
}

// ShippingPerformanceDTO fila de GET /api/reports/shipping-performance.
type ShippingPerformanceDTO struct {
	ShipMode        string          `json:"ship_mode"`
	TotalOrders     int             `json:"total_orders"`
	AvgShippingDays decimal.Decimal `json:"avg_shipping_days"` // días calendario, 1 decimal
}

// FrequentCustomerDTO fila de GET /api/reports/frequent-customers.
type FrequentCustomerDTO struct {
	CustomerName    string          `json:"customer_name"`
	TotalOrders     int             `json:"total_orders"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	AvgSalesPerItem decimal.Decimal `json:"avg_sales_per_item"`
}

// ── Reportes del dashboard ────────────────────────────────────────────────────

// OverviewDTO respuesta de GET /api/reports/overview.
type OverviewDTO struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	TotalOrders   int             `json:"total_orders"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
}

// MonthlyTrendDTO fila de GET /api/reports/monthly-trend.
type MonthlyTrendDTO struct {
	Month           string              `json:"month"` // "2024-03"
	TotalSales      decimal.Decimal     `json:"total_sales"`
	TotalProfit     decimal.Decimal     `json:"total_profit"`
	TotalOrders     int                 `json:"total_orders"`
	ProfitMarginPct decimal.NullDecimal `json:"profit_margin_percentage"`
}

// TopProductDTO fila de GET /api/reports/top-products (máx. 10).
type TopProductDTO struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	TotalQuantity int             `json:"total_quantity"`
}

// ── Reporte combinado ─────────────────────────────────────────────────────────

// FullReportDTO respuesta de GET /api/reports: los nueve conjuntos de
// resultados calculados en paralelo sobre el mismo snapshot.
type FullReportDTO struct {
	GeneratedAt           string                     `json:"generated_at"` // RFC 3339
	Overview              OverviewDTO                `json:"overview"`
	CategoryProfitability []CategoryProfitabilityDTO `json:"category_profitability"`
	TopCustomers          []TopCustomerDTO           `json:"top_customers_by_spend"`
	StockVsSales          []StockVsSalesDTO          `json:"stock_vs_sales"`
	DiscountProfit        []DiscountProfitDTO        `json:"discount_profit_by_category"`
	ShippingPerformance   []ShippingPerformanceDTO   `json:"shipping_performance"`
	FrequentCustomers     []FrequentCustomerDTO      `json:"frequent_customer_spend"`
	MonthlyTrend          []MonthlyTrendDTO          `json:"monthly_sales_trend"`
	TopProducts           []TopProductDTO            `json:"top_products_by_sales"`
}
