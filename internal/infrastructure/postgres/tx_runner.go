package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/StockLedger-api/internal/application/inventory"
	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// lock_timeout acota la espera por filas bloqueadas: un bloqueo que no llega
// a tiempo aflora como ErrConcurrencyConflict y el caller puede reintentar.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout string
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: "3s"}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	txnRepo repository.StockTransactionRepository,
	warehouseRepo repository.WarehouseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%s'", r.lockTimeout)); err != nil {
		return fmt.Errorf("set lock_timeout: %w", err)
	}

	levelRepo := NewStockLevelRepository(tx)
	txnRepo := NewStockTransactionRepository(tx)
	warehouseRepo := NewWarehouseRepository(tx)

	if err := fn(levelRepo, txnRepo, warehouseRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
