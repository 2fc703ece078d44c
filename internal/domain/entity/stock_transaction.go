package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de stock (registro inmutable de auditoría).
const (
	TxTypeAdjust         = "ADJUST"
	TxTypeReserve        = "RESERVE"
	TxTypeRelease        = "RELEASE"
	TxTypeTransferOut    = "TRANSFER_OUT"
	TxTypeTransferIn     = "TRANSFER_IN"
	TxTypeCountReconcile = "COUNT_RECONCILE"
	TxTypeLoadVehicle    = "LOAD_VEHICLE"
)

// StockTransaction registro append-only de cada mutación del libro.
// GroupID agrupa las filas de una misma operación lógica (un transfer produce dos).
// La suma de Quantity por clave desde la creación reproduce la cantidad actual.
type StockTransaction struct {
	ID          string
	GroupID     string
	TenantID    string
	WarehouseID string
	VariantID   string
	Status      StockStatus
	Type        string
	Quantity    decimal.Decimal // delta con signo; RESERVE/RELEASE registran el monto sin afectar quantity
	UnitCost    decimal.Decimal
	Reference   string // id de pedido, vehículo, nota de conteo, etc.
	CreatedBy   string
	CreatedAt   time.Time
}
