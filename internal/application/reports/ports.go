package reports

import (
	"context"

	"github.com/jhoicas/superstore-analytics/internal/application/dto"
)

// ReportPDFGenerator puerto de salida: exporta el reporte completo como PDF.
// La implementación vive en infrastructure/pdf (Maroto v2).
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, report *dto.FullReportDTO) ([]byte, error)
}
