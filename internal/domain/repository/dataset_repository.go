package repository

import (
	"context"

	"github.com/jhoicas/superstore-analytics/internal/domain/entity"
)

// DatasetRepository carga el snapshot completo de las cuatro tablas lógicas.
// Las implementaciones (CSV, PostgreSQL) son read-only: el dataset se carga una
// vez al arranque y no se vuelve a tocar.
//
// Contrato de errores: un valor no numérico o una fecha mal formada en la
// fuente debe producir un error que identifique fila y columna (fail fast),
// nunca una coerción silenciosa a cero.
type DatasetRepository interface {
	LoadDataset(ctx context.Context) (*entity.Dataset, error)
}
