// seed genera un dataset Superstore sintético para desarrollo local.
//
// Uso: go run ./cmd/seed [-orders N] [-customers N] [-products N] [-seed N] [directorio]
// Escribe orders.csv, products.csv, customers.csv y stock.csv en el
// directorio indicado (por defecto ./data), listos para DATA_SOURCE=csv.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Categorías y subcategorías del catálogo Superstore.
var catalog = map[string][]string{
	"Furniture":       {"Bookcases", "Chairs", "Furnishings", "Tables"},
	"Office Supplies": {"Appliances", "Binders", "Envelopes", "Labels", "Paper", "Storage"},
	"Technology":      {"Accessories", "Copiers", "Machines", "Phones"},
}

var shipModes = []string{"Standard Class", "Second Class", "First Class", "Same Day"}

var segments = []string{"Consumer", "Corporate", "Home Office"}

type product struct {
	id, category, subCategory, name string
	unitPrice                       decimal.Decimal
}

type customer struct {
	id, name, segment string
}

func main() {
	nOrders := flag.Int("orders", 1000, "líneas de pedido a generar")
	nCustomers := flag.Int("customers", 80, "clientes a generar")
	nProducts := flag.Int("products", 120, "productos a generar")
	seed := flag.Int64("seed", 42, "semilla del generador")
	flag.Parse()

	dir := "./data"
	if flag.NArg() > 0 {
		dir = flag.Arg(0)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}

	faker := gofakeit.New(uint64(*seed))
	rng := rand.New(rand.NewSource(*seed))

	products := makeProducts(faker, rng, *nProducts)
	customers := makeCustomers(faker, *nCustomers)

	writeCSV(dir, "products.csv", []string{"product_id", "category", "sub_category"}, len(products), func(i int) []string {
		p := products[i]
		return []string{p.id, p.category, p.subCategory}
	})
	writeCSV(dir, "customers.csv", []string{"customer_id", "customer_name", "segment"}, len(customers), func(i int) []string {
		c := customers[i]
		return []string{c.id, c.name, c.segment}
	})
	writeCSV(dir, "stock.csv", []string{"product_id", "product_name", "stock"}, len(products), func(i int) []string {
		p := products[i]
		return []string{p.id, p.name, fmt.Sprintf("%d", rng.Intn(500))}
	})

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	writeCSV(dir, "orders.csv", []string{
		"order_id", "customer_id", "customer_name", "product_id",
		"sales", "profit", "discount", "quantity", "ship_mode", "order_date", "ship_date",
	}, *nOrders, func(int) []string {
		p := products[rng.Intn(len(products))]
		c := customers[rng.Intn(len(customers))]
		qty := 1 + rng.Intn(9)
		// Descuento en pasos de 0.05 entre 0 y 0.4, como el dataset original.
		discount := decimal.New(int64(rng.Intn(9)*5), -2)
		sales := p.unitPrice.Mul(decimal.NewFromInt(int64(qty))).
			Mul(decimal.NewFromInt(1).Sub(discount)).Round(2)
		// Margen entre -20% y +40% de la venta; con descuento alto puede dar pérdida.
		marginPct := decimal.New(int64(rng.Intn(61)-20), -2)
		profit := sales.Mul(marginPct).Round(2)

		orderDate := start.AddDate(0, 0, rng.Intn(730))
		shipDate := orderDate.AddDate(0, 0, rng.Intn(8))

		return []string{
			"ORD-" + uuid.NewString()[:8],
			c.id, c.name, p.id,
			sales.String(), profit.String(), discount.String(),
			fmt.Sprintf("%d", qty),
			shipModes[rng.Intn(len(shipModes))],
			orderDate.Format("2006-01-02"),
			shipDate.Format("2006-01-02"),
		}
	})

	fmt.Fprintf(os.Stderr, "Dataset generado en %s (%d pedidos, %d productos, %d clientes)\n",
		dir, *nOrders, len(products), len(customers))
}

func makeProducts(faker *gofakeit.Faker, rng *rand.Rand, n int) []product {
	categories := make([]string, 0, len(catalog))
	for c := range catalog {
		categories = append(categories, c)
	}
	// El orden de iteración de map no es estable; fijarlo para que la misma
	// semilla produzca el mismo dataset.
	sort.Strings(categories)

	products := make([]product, 0, n)
	for i := 0; i < n; i++ {
		cat := categories[rng.Intn(len(categories))]
		sub := catalog[cat][rng.Intn(len(catalog[cat]))]
		products = append(products, product{
			id:          fmt.Sprintf("%s-%s-%05d", cat[:3], sub[:2], 10000+i),
			category:    cat,
			subCategory: sub,
			name:        faker.ProductName(),
			unitPrice:   decimal.NewFromFloat(faker.Price(5, 900)).Round(2),
		})
	}
	return products
}

func makeCustomers(faker *gofakeit.Faker, n int) []customer {
	customers := make([]customer, 0, n)
	for i := 0; i < n; i++ {
		customers = append(customers, customer{
			id:      fmt.Sprintf("CU-%05d", 10000+i),
			name:    faker.Name(),
			segment: segments[i%len(segments)],
		})
	}
	return customers
}

func writeCSV(dir, file string, header []string, n int, rowAt func(int) []string) {
	path := filepath.Join(dir, file)
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear %s: %v\n", path, err)
		os.Exit(1)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", path, err)
		os.Exit(1)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(rowAt(i)); err != nil {
			fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", path, err)
			os.Exit(1)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", path, err)
		os.Exit(1)
	}
}
