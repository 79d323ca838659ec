// report calcula los nueve reportes del Superstore sin levantar la API.
//
// Uso: go run ./cmd/report [-pdf salida.pdf] [directorio-csv]
// Por defecto lee los CSV de ./data y escribe el reporte completo como JSON
// en la salida estándar. Con -pdf además genera el cuaderno en PDF.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/superstore-analytics/internal/application/reports"
	"github.com/jhoicas/superstore-analytics/internal/infrastructure/csvstore"
	"github.com/jhoicas/superstore-analytics/internal/infrastructure/pdf"
)

func main() {
	pdfPath := flag.String("pdf", "", "ruta del PDF a generar (opcional)")
	flag.Parse()

	dir := "./data"
	if flag.NArg() > 0 {
		dir = flag.Arg(0)
	}

	ctx := context.Background()
	ds, err := csvstore.NewLoader(dir).LoadDataset(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar dataset: %v\n", err)
		os.Exit(1)
	}

	report, err := reports.NewUseCase(ds).FullReport(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Calcular reportes: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(os.Stderr, "Serializar reporte: %v\n", err)
		os.Exit(1)
	}

	if *pdfPath != "" {
		doc, err := pdf.NewMarotoReportGenerator().GenerateReportPDF(ctx, report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Generar PDF: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*pdfPath, doc, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Escribir PDF: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "PDF escrito en %s\n", *pdfPath)
	}
}
