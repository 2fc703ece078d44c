package repository

import (
	"context"

	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
)

// WarehouseRepository puerto de persistencia para bodegas (incluye pseudo-bodegas de vehículo).
type WarehouseRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Warehouse, error)
	// EnsureVehicleWarehouse crea la pseudo-bodega del vehículo si no existe (idempotente).
	EnsureVehicleWarehouse(ctx context.Context, warehouse *entity.Warehouse) error
}
