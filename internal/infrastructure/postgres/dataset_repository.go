package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/superstore-analytics/internal/domain/entity"
	"github.com/jhoicas/superstore-analytics/internal/domain/repository"
)

var _ repository.DatasetRepository = (*DatasetRepo)(nil)

// DatasetRepo carga el snapshot Superstore desde PostgreSQL.
// Solo lectura: cuatro SELECTs al arranque, nada más.
type DatasetRepo struct {
	pool *pgxpool.Pool
}

// NewDatasetRepository construye el adaptador de carga.
func NewDatasetRepository(pool *pgxpool.Pool) *DatasetRepo {
	return &DatasetRepo{pool: pool}
}

// LoadDataset lee las cuatro tablas y arma el snapshot con sus índices.
// Las columnas NUMERIC llegan como decimal exacto vía el codec registrado en el pool.
func (r *DatasetRepo) LoadDataset(ctx context.Context) (*entity.Dataset, error) {
	orders, err := r.loadOrders(ctx)
	if err != nil {
		return nil, err
	}
	products, err := r.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := r.loadCustomers(ctx)
	if err != nil {
		return nil, err
	}
	stocks, err := r.loadStocks(ctx)
	if err != nil {
		return nil, err
	}
	return entity.NewDataset(orders, products, customers, stocks), nil
}

func (r *DatasetRepo) loadOrders(ctx context.Context) ([]entity.Order, error) {
	const query = `
	SELECT order_id, customer_id, customer_name, product_id,
	       sales, profit, discount, quantity, ship_mode, order_date, ship_date
	FROM orders`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset.loadOrders: %w", err)
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(
			&o.OrderID, &o.CustomerID, &o.CustomerName, &o.ProductID,
			&o.Sales, &o.Profit, &o.Discount, &o.Quantity,
			&o.ShipMode, &o.OrderDate, &o.ShipDate,
		); err != nil {
			return nil, fmt.Errorf("dataset.loadOrders scan: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *DatasetRepo) loadProducts(ctx context.Context) ([]entity.Product, error) {
	const query = `SELECT product_id, category, sub_category FROM products`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset.loadProducts: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ProductID, &p.Category, &p.SubCategory); err != nil {
			return nil, fmt.Errorf("dataset.loadProducts scan: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *DatasetRepo) loadCustomers(ctx context.Context) ([]entity.Customer, error) {
	const query = `SELECT customer_id, customer_name, segment FROM customers`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset.loadCustomers: %w", err)
	}
	defer rows.Close()

	var customers []entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.CustomerID, &c.CustomerName, &c.Segment); err != nil {
			return nil, fmt.Errorf("dataset.loadCustomers scan: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *DatasetRepo) loadStocks(ctx context.Context) ([]entity.Stock, error) {
	const query = `SELECT product_id, product_name, stock FROM stock`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset.loadStocks: %w", err)
	}
	defer rows.Close()

	var stocks []entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.Stock); err != nil {
			return nil, fmt.Errorf("dataset.loadStocks scan: %w", err)
		}
		stocks = append(stocks, s)
	}
	return stocks, rows.Err()
}
