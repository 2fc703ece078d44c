package inventory

import (
	"context"

	"github.com/jhoicas/StockLedger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad: o toda la mutación se confirma o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		levelRepo repository.StockLevelRepository,
		txnRepo repository.StockTransactionRepository,
		warehouseRepo repository.WarehouseRepository,
	) error) error
}
