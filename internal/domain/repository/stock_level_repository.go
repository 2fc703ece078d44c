package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
)

// StockLevelFilter filtros para listados de stock (Query Service).
type StockLevelFilter struct {
	TenantID         string
	WarehouseID      string
	VariantID        string
	Status           entity.StockStatus
	MinQuantity      *decimal.Decimal
	IncludeZeroStock bool
}

// StockLevelRow fila de listado con datos de presentación de la variante.
type StockLevelRow struct {
	entity.StockLevel
	SKU         string
	VariantName string
}

// StockLevelRepository define el puerto de persistencia del libro de stock.
// Get/GetForUpdate devuelven una fila en cero para claves nunca vistas:
// las filas se crean implícitamente con el primer ajuste.
type StockLevelRepository interface {
	Get(ctx context.Context, key entity.StockLevelKey) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); sección crítica por clave.
	GetForUpdate(ctx context.Context, key entity.StockLevelKey) (*entity.StockLevel, error)
	Upsert(ctx context.Context, level *entity.StockLevel) error
	List(ctx context.Context, filter StockLevelFilter, limit, offset int) ([]*StockLevelRow, error)
	Count(ctx context.Context, filter StockLevelFilter) (int, error)
	// SummaryByStatus totales de cantidad y reservado por estado (dashboard).
	SummaryByStatus(ctx context.Context, tenantID string) (map[entity.StockStatus]StatusTotals, error)
}

// StatusTotals agregado por estado para el resumen.
type StatusTotals struct {
	Quantity    decimal.Decimal
	ReservedQty decimal.Decimal
	Rows        int
}
