package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: no hay Update ni Delete.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create persiste un registro de auditoría.
func (r *StockTransactionRepo) Create(ctx context.Context, txn *entity.StockTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_transactions (id, group_id, tenant_id, warehouse_id, variant_id, stock_status, type, quantity, unit_cost, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	createdBy := (*string)(nil)
	if txn.CreatedBy != "" {
		createdBy = &txn.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		txn.ID, txn.GroupID, txn.TenantID, txn.WarehouseID, txn.VariantID, txn.Status,
		txn.Type, txn.Quantity, txn.UnitCost, txn.Reference, createdBy, txn.CreatedAt,
	)
	if err != nil {
		// id repetido: la operación ya quedó registrada (reintento del caller).
		if isUniqueViolation(err) {
			return fmt.Errorf("transacción de stock duplicada %s: %w", txn.ID, err)
		}
		return fmt.Errorf("create stock transaction: %w", err)
	}
	return nil
}

// List transacciones filtradas, más reciente primero.
func (r *StockTransactionRepo) List(ctx context.Context, filter repository.StockTransactionFilter, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT id, group_id, tenant_id, warehouse_id, variant_id, stock_status, type, quantity, unit_cost, reference, created_by, created_at
		FROM stock_transactions WHERE tenant_id = $1`
	args := []any{filter.TenantID}
	pos := 2
	if filter.WarehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, filter.WarehouseID)
		pos++
	}
	if filter.VariantID != "" {
		query += fmt.Sprintf(" AND variant_id = $%d", pos)
		args = append(args, filter.VariantID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.Reference != "" {
		query += fmt.Sprintf(" AND reference = $%d", pos)
		args = append(args, filter.Reference)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		var createdBy *string
		if err := rows.Scan(&t.ID, &t.GroupID, &t.TenantID, &t.WarehouseID, &t.VariantID, &t.Status,
			&t.Type, &t.Quantity, &t.UnitCost, &t.Reference, &createdBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		if createdBy != nil {
			t.CreatedBy = *createdBy
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
