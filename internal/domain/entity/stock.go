package entity

// Stock representa la existencia actual de un producto en bodega.
// ProductName viene en esta tabla (no en Products) porque así lo trae la fuente.
type Stock struct {
	ProductID   string
	ProductName string
	Stock       int // unidades disponibles, >= 0
}
