package entity

// Customer representa un cliente de la tienda (tabla de dimensión).
type Customer struct {
	CustomerID   string
	CustomerName string
	Segment      string // ej: "Consumer", "Corporate", "Home Office"
}
