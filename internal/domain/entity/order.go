package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa una línea de pedido del dataset Superstore.
// Cada fila es única (una línea de producto), pero OrderID se repite entre
// líneas del mismo pedido; los conteos de pedidos usan DISTINCT OrderID.
//
// CustomerName viene denormalizado porque el archivo fuente es una tabla plana:
// el reporte de clientes frecuentes agrupa por nombre sin pasar por Customers,
// y ese comportamiento se preserva tal cual (ver FrequentCustomerSpend).
type Order struct {
	OrderID      string
	CustomerID   string
	CustomerName string
	ProductID    string
	Sales        decimal.Decimal // ingreso de la línea, >= 0
	Profit       decimal.Decimal // puede ser negativo (venta a pérdida)
	Discount     decimal.Decimal // fracción 0–1
	Quantity     int             // unidades, >= 0
	ShipMode     string          // ej: "Standard Class", "Second Class"
	OrderDate    time.Time
	ShipDate     time.Time // se asume ShipDate >= OrderDate; la fuente no lo garantiza
}

// ShippingDays devuelve los días calendario entre la fecha de pedido y la de
// envío, ignorando la hora del día.
func (o Order) ShippingDays() int {
	from := time.Date(o.OrderDate.Year(), o.OrderDate.Month(), o.OrderDate.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(o.ShipDate.Year(), o.ShipDate.Month(), o.ShipDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
