package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo adaptador de solo lectura sobre el catálogo de variantes.
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

const variantColumns = `id, tenant_id, sku, name, gross_weight_kg, unit_volume_m3, created_at, updated_at`

// GetByID obtiene una variante por ID. Retorna nil si no existe.
func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants WHERE id = $1`
	var v entity.Variant
	err := r.q.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.TenantID, &v.SKU, &v.Name, &v.GrossWeightKg, &v.UnitVolumeM3, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

// GetByIDs carga un lote de variantes indexado por id. Ids inexistentes
// simplemente no aparecen en el mapa (el cálculo de capacidad los marca).
func (r *VariantRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Variant, error) {
	result := make(map[string]*entity.Variant, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query := `SELECT ` + variantColumns + ` FROM variants WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get variants: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var v entity.Variant
		if err := rows.Scan(&v.ID, &v.TenantID, &v.SKU, &v.Name, &v.GrossWeightKg, &v.UnitVolumeM3, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		result[v.ID] = &v
	}
	return result, rows.Err()
}
