package entity

// Dataset es el snapshot inmutable de las cuatro tablas lógicas del Superstore.
// Se carga una sola vez al arranque (CSV o PostgreSQL) y después solo se lee:
// los reportes pueden ejecutarse en paralelo sobre él sin locks.
type Dataset struct {
	Orders    []Order
	Products  []Product
	Customers []Customer
	Stocks    []Stock

	productsByID  map[string]Product
	customersByID map[string]Customer
}

// NewDataset construye el snapshot y sus índices por ID.
// Si una dimensión trae IDs repetidos, gana la última fila (misma semántica
// que un upsert de carga).
func NewDataset(orders []Order, products []Product, customers []Customer, stocks []Stock) *Dataset {
	ds := &Dataset{
		Orders:        orders,
		Products:      products,
		Customers:     customers,
		Stocks:        stocks,
		productsByID:  make(map[string]Product, len(products)),
		customersByID: make(map[string]Customer, len(customers)),
	}
	for _, p := range products {
		ds.productsByID[p.ProductID] = p
	}
	for _, c := range customers {
		ds.customersByID[c.CustomerID] = c
	}
	return ds
}

// ProductByID resuelve un producto por su ID. ok=false si el pedido referencia
// un producto que no existe en la dimensión (hueco referencial).
func (d *Dataset) ProductByID(id string) (Product, bool) {
	p, ok := d.productsByID[id]
	return p, ok
}

// CustomerByID resuelve un cliente por su ID.
func (d *Dataset) CustomerByID(id string) (Customer, bool) {
	c, ok := d.customersByID[id]
	return c, ok
}
