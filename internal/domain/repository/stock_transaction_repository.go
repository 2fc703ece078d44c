package repository

import (
	"context"
	"time"

	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
)

// StockTransactionFilter filtros para el listado de auditoría.
type StockTransactionFilter struct {
	TenantID    string
	WarehouseID string
	VariantID   string
	Type        string
	Reference   string
	From        *time.Time
	To          *time.Time
}

// StockTransactionRepository puerto de persistencia del registro append-only.
// Solo el Movement Engine y el Reservation Manager escriben; nadie actualiza ni borra.
type StockTransactionRepository interface {
	Create(ctx context.Context, tx *entity.StockTransaction) error
	List(ctx context.Context, filter StockTransactionFilter, limit, offset int) ([]*entity.StockTransaction, error)
}
