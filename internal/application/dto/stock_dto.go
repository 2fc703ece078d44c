package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevelDTO fila de stock para respuestas HTTP. AvailableQty siempre derivado.
type StockLevelDTO struct {
	WarehouseID       string          `json:"warehouse_id"`
	VariantID         string          `json:"variant_id"`
	SKU               string          `json:"sku,omitempty"`
	VariantName       string          `json:"variant_name,omitempty"`
	StockStatus       string          `json:"stock_status"`
	Quantity          decimal.Decimal `json:"quantity"`
	ReservedQty       decimal.Decimal `json:"reserved_qty"`
	AvailableQty      decimal.Decimal `json:"available_qty"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	LastTransactionAt *time.Time      `json:"last_transaction_at,omitempty"`
}

// ListStockLevelsRequest query params de GET /api/stock-levels.
type ListStockLevelsRequest struct {
	WarehouseID      string `query:"warehouse_id"`
	VariantID        string `query:"variant_id"`
	StockStatus      string `query:"stock_status"`
	MinQuantity      string `query:"min_quantity"`
	IncludeZeroStock bool   `query:"include_zero_stock"`
	PageRequest
}

// ListStockLevelsResponse respuesta paginada del listado.
type ListStockLevelsResponse struct {
	StockLevels []StockLevelDTO `json:"stock_levels"`
	TotalCount  int             `json:"total_count"`
	Limit       int             `json:"limit"`
	Offset      int             `json:"offset"`
}

// AdjustRequest body de POST /api/stock-levels/adjust.
// Delta puede ser negativo (merma/consumo); UnitCost solo aplica en entradas.
type AdjustRequest struct {
	WarehouseID string           `json:"warehouse_id" validate:"required"`
	VariantID   string           `json:"variant_id" validate:"required"`
	StockStatus string           `json:"stock_status" validate:"required"`
	Delta       decimal.Decimal  `json:"delta"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference   string           `json:"reference,omitempty"`
}

// ReserveRequest body de POST /api/stock-levels/reserve. Solo estado ON_HAND.
type ReserveRequest struct {
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	VariantID   string          `json:"variant_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference,omitempty"`
}

// ReserveResponse resultado de reservar o liberar.
type ReserveResponse struct {
	QuantityReserved   decimal.Decimal `json:"quantity_reserved,omitempty"`
	QuantityReleased   decimal.Decimal `json:"quantity_released,omitempty"`
	RemainingAvailable decimal.Decimal `json:"remaining_available"`
}

// TransferEndpoint identifica un extremo del traslado (bodega + estado).
type TransferEndpoint struct {
	WarehouseID string `json:"warehouse_id" validate:"required"`
	StockStatus string `json:"stock_status" validate:"required"`
}

// TransferRequest body de POST /api/stock-levels/transfer.
type TransferRequest struct {
	From      TransferEndpoint `json:"from" validate:"required"`
	To        TransferEndpoint `json:"to" validate:"required"`
	VariantID string           `json:"variant_id" validate:"required"`
	Amount    decimal.Decimal  `json:"amount"`
	Reference string           `json:"reference,omitempty"`
}

// TransferResponse ambas filas después del traslado.
type TransferResponse struct {
	From StockLevelDTO `json:"from"`
	To   StockLevelDTO `json:"to"`
}

// ReconcileRequest body de POST /api/stock-levels/reconcile (conteo físico).
type ReconcileRequest struct {
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	VariantID   string          `json:"variant_id" validate:"required"`
	StockStatus string          `json:"stock_status" validate:"required"`
	CountedQty  decimal.Decimal `json:"counted_qty"`
	Reference   string          `json:"reference,omitempty"`
}

// ReconcileResponse varianza registrada y fila resultante.
type ReconcileResponse struct {
	Variance   decimal.Decimal `json:"variance"`
	Adjustment StockLevelDTO   `json:"adjustment"`
}

// LoadVehicleRequest body de POST /api/stock-levels/load-vehicle.
// Mueve stock ON_HAND de la bodega a la pseudo-bodega del vehículo (TRUCK_STOCK).
type LoadVehicleRequest struct {
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	VehicleID   string          `json:"vehicle_id" validate:"required"`
	VariantID   string          `json:"variant_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference,omitempty"`
}

// StockTransactionDTO registro de auditoría para respuestas HTTP.
type StockTransactionDTO struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id"`
	WarehouseID string          `json:"warehouse_id"`
	VariantID   string          `json:"variant_id"`
	StockStatus string          `json:"stock_status"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Reference   string          `json:"reference,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StockSummaryDTO totales por estado para el dashboard.
type StockSummaryDTO struct {
	StockStatus  string          `json:"stock_status"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReservedQty  decimal.Decimal `json:"reserved_qty"`
	AvailableQty decimal.Decimal `json:"available_qty"`
	Rows         int             `json:"rows"`
}
