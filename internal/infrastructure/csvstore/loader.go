// Package csvstore carga el dataset Superstore desde cuatro archivos CSV:
// orders.csv, products.csv, customers.csv y stock.csv.
//
// Los encabezados se normalizan igual que en el pipeline original (minúsculas,
// espacios → guiones bajos), así que "Order ID" y "order_id" son equivalentes.
// Los exports de Excel suelen venir en Windows-1252 en vez de UTF-8; si el
// archivo no es UTF-8 válido se decodifica con ese charset antes de parsear.
//
// El parseo es estricto: un valor no numérico, una fecha ilegible o un rango
// fuera de lo permitido detienen la carga con un error que nombra archivo,
// fila y columna. Nunca se coerciona en silencio.
package csvstore

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/superstore-analytics/internal/domain"
	"github.com/jhoicas/superstore-analytics/internal/domain/entity"
	"github.com/jhoicas/superstore-analytics/internal/domain/repository"
)

// Nombres de archivo esperados dentro del directorio de datos.
const (
	ordersFile    = "orders.csv"
	productsFile  = "products.csv"
	customersFile = "customers.csv"
	stockFile     = "stock.csv"
)

// dateLayouts formatos de fecha aceptados (ISO y el formato US del export original).
var dateLayouts = []string{"2006-01-02", "1/2/2006", "2006-01-02 15:04:05"}

var _ repository.DatasetRepository = (*Loader)(nil)

// Loader implementa repository.DatasetRepository sobre un directorio de CSVs.
type Loader struct {
	dir string
}

// NewLoader construye el loader para el directorio indicado.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// LoadDataset lee las cuatro tablas y arma el snapshot con sus índices.
func (l *Loader) LoadDataset(ctx context.Context) (*entity.Dataset, error) {
	orders, err := l.loadOrders(ctx)
	if err != nil {
		return nil, err
	}
	products, err := l.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := l.loadCustomers(ctx)
	if err != nil {
		return nil, err
	}
	stocks, err := l.loadStocks(ctx)
	if err != nil {
		return nil, err
	}
	return entity.NewDataset(orders, products, customers, stocks), nil
}

// ── Tablas ────────────────────────────────────────────────────────────────────

func (l *Loader) loadOrders(ctx context.Context) ([]entity.Order, error) {
	t, err := l.readTable(ctx, ordersFile,
		"order_id", "customer_id", "customer_name", "product_id",
		"sales", "profit", "discount", "quantity", "ship_mode", "order_date", "ship_date")
	if err != nil {
		return nil, err
	}

	orders := make([]entity.Order, 0, len(t.rows))
	for i, rec := range t.rows {
		row := i + 2 // fila 1 es el encabezado

		sales, err := t.decimalAt(rec, row, "sales")
		if err != nil {
			return nil, err
		}
		if sales.IsNegative() {
			return nil, t.rangeErr(row, "sales", "no puede ser negativo")
		}
		profit, err := t.decimalAt(rec, row, "profit")
		if err != nil {
			return nil, err
		}
		discount, err := t.decimalAt(rec, row, "discount")
		if err != nil {
			return nil, err
		}
		if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(1)) {
			return nil, t.rangeErr(row, "discount", "debe estar entre 0 y 1")
		}
		quantity, err := t.intAt(rec, row, "quantity")
		if err != nil {
			return nil, err
		}
		if quantity < 0 {
			return nil, t.rangeErr(row, "quantity", "no puede ser negativo")
		}
		orderDate, err := t.dateAt(rec, row, "order_date")
		if err != nil {
			return nil, err
		}
		shipDate, err := t.dateAt(rec, row, "ship_date")
		if err != nil {
			return nil, err
		}

		orders = append(orders, entity.Order{
			OrderID:      t.stringAt(rec, "order_id"),
			CustomerID:   t.stringAt(rec, "customer_id"),
			CustomerName: t.stringAt(rec, "customer_name"),
			ProductID:    t.stringAt(rec, "product_id"),
			Sales:        sales,
			Profit:       profit,
			Discount:     discount,
			Quantity:     quantity,
			ShipMode:     t.stringAt(rec, "ship_mode"),
			OrderDate:    orderDate,
			ShipDate:     shipDate,
		})
	}
	return orders, nil
}

func (l *Loader) loadProducts(ctx context.Context) ([]entity.Product, error) {
	t, err := l.readTable(ctx, productsFile, "product_id", "category", "sub_category")
	if err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(t.rows))
	for _, rec := range t.rows {
		products = append(products, entity.Product{
			ProductID:   t.stringAt(rec, "product_id"),
			Category:    t.stringAt(rec, "category"),
			SubCategory: t.stringAt(rec, "sub_category"),
		})
	}
	return products, nil
}

func (l *Loader) loadCustomers(ctx context.Context) ([]entity.Customer, error) {
	t, err := l.readTable(ctx, customersFile, "customer_id", "customer_name", "segment")
	if err != nil {
		return nil, err
	}
	customers := make([]entity.Customer, 0, len(t.rows))
	for _, rec := range t.rows {
		customers = append(customers, entity.Customer{
			CustomerID:   t.stringAt(rec, "customer_id"),
			CustomerName: t.stringAt(rec, "customer_name"),
			Segment:      t.stringAt(rec, "segment"),
		})
	}
	return customers, nil
}

func (l *Loader) loadStocks(ctx context.Context) ([]entity.Stock, error) {
	t, err := l.readTable(ctx, stockFile, "product_id", "product_name", "stock")
	if err != nil {
		return nil, err
	}
	stocks := make([]entity.Stock, 0, len(t.rows))
	for i, rec := range t.rows {
		row := i + 2
		stock, err := t.intAt(rec, row, "stock")
		if err != nil {
			return nil, err
		}
		if stock < 0 {
			return nil, t.rangeErr(row, "stock", "no puede ser negativo")
		}
		stocks = append(stocks, entity.Stock{
			ProductID:   t.stringAt(rec, "product_id"),
			ProductName: t.stringAt(rec, "product_name"),
			Stock:       stock,
		})
	}
	return stocks, nil
}

// ── Lectura y parseo ──────────────────────────────────────────────────────────

// table archivo CSV parseado: índice de columnas normalizado + filas crudas.
type table struct {
	file   string
	colIdx map[string]int
	rows   [][]string
}

// readTable lee un CSV completo, normaliza el encabezado y verifica que las
// columnas requeridas existan.
func (l *Loader) readTable(ctx context.Context, file string, required ...string) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(l.dir, file)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", file, err)
	}

	// Export de Excel en Windows-1252/ISO-8859-1: decodificar antes de parsear
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("%s: no es UTF-8 ni Windows-1252 válido: %w", file, err)
		}
		data = decoded
	}

	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsear %s: %w", file, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: archivo vacío, falta el encabezado", file)
	}

	colIdx := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		colIdx[normalizeHeader(h)] = i
	}
	for _, col := range required {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("%s: falta la columna requerida %q", file, col)
		}
	}

	return &table{file: file, colIdx: colIdx, rows: records[1:]}, nil
}

// normalizeHeader replica la normalización del pipeline original:
// "Order ID" → "order_id".
func normalizeHeader(h string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(h), " ", "_"))
}

func (t *table) stringAt(rec []string, col string) string {
	return strings.TrimSpace(rec[t.colIdx[col]])
}

func (t *table) decimalAt(rec []string, row int, col string) (decimal.Decimal, error) {
	raw := t.stringAt(rec, col)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%s: fila %d, columna %q: valor faltante: %w",
			t.file, row, col, domain.ErrMalformedInput)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: fila %d, columna %q: valor numérico inválido %q: %w",
			t.file, row, col, raw, domain.ErrMalformedInput)
	}
	return d, nil
}

func (t *table) intAt(rec []string, row int, col string) (int, error) {
	raw := t.stringAt(rec, col)
	if raw == "" {
		return 0, fmt.Errorf("%s: fila %d, columna %q: valor faltante: %w",
			t.file, row, col, domain.ErrMalformedInput)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: fila %d, columna %q: entero inválido %q: %w",
			t.file, row, col, raw, domain.ErrMalformedInput)
	}
	return n, nil
}

func (t *table) dateAt(rec []string, row int, col string) (time.Time, error) {
	raw := t.stringAt(rec, col)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s: fila %d, columna %q: fecha faltante: %w",
			t.file, row, col, domain.ErrMalformedInput)
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: fila %d, columna %q: fecha inválida %q: %w",
		t.file, row, col, raw, domain.ErrMalformedInput)
}

func (t *table) rangeErr(row int, col, msg string) error {
	return fmt.Errorf("%s: fila %d, columna %q: %s: %w", t.file, row, col, msg, domain.ErrMalformedInput)
}
