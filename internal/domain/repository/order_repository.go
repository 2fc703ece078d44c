package repository

import (
	"context"

	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
)

// OrderRepository puerto de solo lectura sobre pedidos y sus líneas.
// El motor solo los consume para el cálculo de capacidad; su ciclo de vida es externo.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
}
