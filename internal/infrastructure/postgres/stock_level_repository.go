package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/StockLedger-api/internal/domain"
	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

const stockLevelColumns = `tenant_id, warehouse_id, variant_id, stock_status, quantity, reserved_qty, unit_cost, total_cost, last_transaction_at`

func scanStockLevel(row pgx.Row) (*entity.StockLevel, error) {
	var s entity.StockLevel
	var lastTx *time.Time
	err := row.Scan(
		&s.Key.TenantID, &s.Key.WarehouseID, &s.Key.VariantID, &s.Key.Status,
		&s.Quantity, &s.ReservedQty, &s.UnitCost, &s.TotalCost, &lastTx,
	)
	if err != nil {
		return nil, err
	}
	if lastTx != nil {
		s.LastTransactionAt = *lastTx
	}
	return &s, nil
}

// Get obtiene la fila de una clave. Claves nunca vistas leen como fila en cero.
func (r *StockLevelRepo) Get(ctx context.Context, key entity.StockLevelKey) (*entity.StockLevel, error) {
	query := `
		SELECT ` + stockLevelColumns + `
		FROM stock_levels
		WHERE tenant_id = $1 AND warehouse_id = $2 AND variant_id = $3 AND stock_status = $4`
	level, err := scanStockLevel(r.q.QueryRow(ctx, query, key.TenantID, key.WarehouseID, key.VariantID, key.Status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.NewZeroStockLevel(key), nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return level, nil
}

// GetForUpdate asegura la existencia de la fila (inserción en cero, idempotente)
// y la bloquea (SELECT FOR UPDATE): sección crítica por clave. Filas de claves
// nunca mutadas salen con last_transaction_at en cero; si la operación no puede
// crear, el rollback descarta la fila sembrada.
func (r *StockLevelRepo) GetForUpdate(ctx context.Context, key entity.StockLevelKey) (*entity.StockLevel, error) {
	seed := `
		INSERT INTO stock_levels (tenant_id, warehouse_id, variant_id, stock_status, quantity, reserved_qty, unit_cost, total_cost)
		VALUES ($1, $2, $3, $4, 0, 0, 0, 0)
		ON CONFLICT (tenant_id, warehouse_id, variant_id, stock_status) DO NOTHING`
	if _, err := r.q.Exec(ctx, seed, key.TenantID, key.WarehouseID, key.VariantID, key.Status); err != nil {
		return nil, fmt.Errorf("seed stock level: %w", mapLockError(err))
	}
	query := `
		SELECT ` + stockLevelColumns + `
		FROM stock_levels
		WHERE tenant_id = $1 AND warehouse_id = $2 AND variant_id = $3 AND stock_status = $4
		FOR UPDATE`
	level, err := scanStockLevel(r.q.QueryRow(ctx, query, key.TenantID, key.WarehouseID, key.VariantID, key.Status))
	if err != nil {
		return nil, fmt.Errorf("get stock level for update: %w", mapLockError(err))
	}
	return level, nil
}

// Upsert inserta o actualiza la fila completa de una clave.
// Los CHECK de la tabla son la última defensa de los invariantes.
func (r *StockLevelRepo) Upsert(ctx context.Context, level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (tenant_id, warehouse_id, variant_id, stock_status, quantity, reserved_qty, unit_cost, total_cost, last_transaction_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (tenant_id, warehouse_id, variant_id, stock_status)
		DO UPDATE SET
			quantity = EXCLUDED.quantity,
			reserved_qty = EXCLUDED.reserved_qty,
			unit_cost = EXCLUDED.unit_cost,
			total_cost = EXCLUDED.total_cost,
			last_transaction_at = EXCLUDED.last_transaction_at`
	_, err := r.q.Exec(ctx, query,
		level.Key.TenantID, level.Key.WarehouseID, level.Key.VariantID, level.Key.Status,
		level.Quantity, level.ReservedQty, level.UnitCost, level.TotalCost, level.LastTransactionAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvariantViolation
		}
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// buildFilter arma el WHERE dinámico compartido por List y Count.
func buildFilter(filter repository.StockLevelFilter) (string, []any) {
	where := ` WHERE s.tenant_id = $1`
	args := []any{filter.TenantID}
	pos := 2
	if filter.WarehouseID != "" {
		where += fmt.Sprintf(" AND s.warehouse_id = $%d", pos)
		args = append(args, filter.WarehouseID)
		pos++
	}
	if filter.VariantID != "" {
		where += fmt.Sprintf(" AND s.variant_id = $%d", pos)
		args = append(args, filter.VariantID)
		pos++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND s.stock_status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.MinQuantity != nil {
		where += fmt.Sprintf(" AND s.quantity >= $%d", pos)
		args = append(args, *filter.MinQuantity)
		pos++
	}
	if !filter.IncludeZeroStock {
		where += " AND s.quantity > 0"
	}
	return where, args
}

// List lectura filtrada y paginada con datos de presentación de la variante.
func (r *StockLevelRepo) List(ctx context.Context, filter repository.StockLevelFilter, limit, offset int) ([]*repository.StockLevelRow, error) {
	where, args := buildFilter(filter)
	query := `
		SELECT s.tenant_id, s.warehouse_id, s.variant_id, s.stock_status,
		       s.quantity, s.reserved_qty, s.unit_cost, s.total_cost, s.last_transaction_at,
		       COALESCE(v.sku, ''), COALESCE(v.name, '')
		FROM stock_levels s
		LEFT JOIN variants v ON v.id = s.variant_id` + where +
		fmt.Sprintf(" ORDER BY s.warehouse_id, s.variant_id, s.stock_status LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var list []*repository.StockLevelRow
	for rows.Next() {
		var row repository.StockLevelRow
		var lastTx *time.Time
		if err := rows.Scan(
			&row.Key.TenantID, &row.Key.WarehouseID, &row.Key.VariantID, &row.Key.Status,
			&row.Quantity, &row.ReservedQty, &row.UnitCost, &row.TotalCost, &lastTx,
			&row.SKU, &row.VariantName,
		); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		if lastTx != nil {
			row.LastTransactionAt = *lastTx
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// Count total de filas que satisfacen el filtro (para paginación).
func (r *StockLevelRepo) Count(ctx context.Context, filter repository.StockLevelFilter) (int, error) {
	where, args := buildFilter(filter)
	var total int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_levels s`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count stock levels: %w", err)
	}
	return total, nil
}

// SummaryByStatus totales de cantidad y reservado por estado (dashboard).
func (r *StockLevelRepo) SummaryByStatus(ctx context.Context, tenantID string) (map[entity.StockStatus]repository.StatusTotals, error) {
	query := `
		SELECT stock_status, COALESCE(SUM(quantity), 0), COALESCE(SUM(reserved_qty), 0), COUNT(*)
		FROM stock_levels
		WHERE tenant_id = $1
		GROUP BY stock_status`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("summary by status: %w", err)
	}
	defer rows.Close()
	totals := make(map[entity.StockStatus]repository.StatusTotals)
	for rows.Next() {
		var status entity.StockStatus
		var qty, reserved decimal.Decimal
		var count int
		if err := rows.Scan(&status, &qty, &reserved, &count); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		totals[status] = repository.StatusTotals{Quantity: qty, ReservedQty: reserved, Rows: count}
	}
	return totals, rows.Err()
}
