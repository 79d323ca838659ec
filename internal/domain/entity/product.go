package entity

// Product representa un producto del catálogo Superstore (tabla de dimensión).
type Product struct {
	ProductID   string
	Category    string // ej: "Furniture", "Office Supplies", "Technology"
	SubCategory string // ej: "Bookcases", "Chairs", "Phones"
}
