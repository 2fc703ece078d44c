package repository

import (
	"context"

	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
)

// VariantRepository puerto de solo lectura sobre el catálogo de variantes.
// Retorna nil sin error si la variante no existe (el caller decide si es fatal).
type VariantRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Variant, error)
	// GetByIDs carga un lote de variantes indexado por id (cálculo de capacidad).
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Variant, error)
}
