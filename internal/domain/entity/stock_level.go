package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus estado lógico en el que se encuentra una cantidad de stock.
type StockStatus string

// Estados de stock válidos.
const (
	StatusOnHand     StockStatus = "ON_HAND"     // disponible en bodega
	StatusInTransit  StockStatus = "IN_TRANSIT"  // en tránsito entre bodegas
	StatusTruckStock StockStatus = "TRUCK_STOCK" // cargado en vehículo
	StatusQuarantine StockStatus = "QUARANTINE"  // retenido / cuarentena
)

// Valid indica si el estado es uno de los valores conocidos.
func (s StockStatus) Valid() bool {
	switch s {
	case StatusOnHand, StatusInTransit, StatusTruckStock, StatusQuarantine:
		return true
	}
	return false
}

// StockLevelKey identifica de forma única una fila del libro de stock.
type StockLevelKey struct {
	TenantID    string
	WarehouseID string
	VariantID   string
	Status      StockStatus
}

// String representación canónica de la clave (tenant/bodega/variante/estado).
// Se usa también como orden global de bloqueo en operaciones multi-fila.
func (k StockLevelKey) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", k.TenantID, k.WarehouseID, k.VariantID, k.Status)
}

// Less orden lexicográfico entre claves. Las operaciones que tocan dos filas
// (transfer, load vehicle) bloquean siempre la menor primero para evitar deadlocks.
func (k StockLevelKey) Less(other StockLevelKey) bool {
	return k.String() < other.String()
}

// StockLevel fila atómica del libro de inventario: cantidad de una variante
// en una bodega bajo un estado. AvailableQty es siempre derivado, nunca se persiste.
type StockLevel struct {
	Key               StockLevelKey
	Quantity          decimal.Decimal // unidades presentes (soporta fraccionarios, ej. gas a granel)
	ReservedQty       decimal.Decimal // retención blanda contra pedidos pendientes
	UnitCost          decimal.Decimal // costo promedio ponderado
	TotalCost         decimal.Decimal
	LastTransactionAt time.Time
}

// NewZeroStockLevel fila inicializada en cero para una clave nunca vista.
// Las filas se crean implícitamente con el primer ajuste que las toca.
func NewZeroStockLevel(key StockLevelKey) *StockLevel {
	return &StockLevel{
		Key:         key,
		Quantity:    decimal.Zero,
		ReservedQty: decimal.Zero,
		UnitCost:    decimal.Zero,
		TotalCost:   decimal.Zero,
	}
}

// AvailableQty cantidad disponible: Quantity - ReservedQty. Derivada en cada lectura.
func (s *StockLevel) AvailableQty() decimal.Decimal {
	return s.Quantity.Sub(s.ReservedQty)
}

// CheckInvariants valida 0 <= ReservedQty <= Quantity. Toda mutación debe dejar
// la fila en un estado que pase esta verificación antes de persistir.
func (s *StockLevel) CheckInvariants() error {
	if s.Quantity.IsNegative() {
		return fmt.Errorf("quantity %s negativa en %s", s.Quantity, s.Key)
	}
	if s.ReservedQty.IsNegative() {
		return fmt.Errorf("reserved_qty %s negativa en %s", s.ReservedQty, s.Key)
	}
	if s.ReservedQty.GreaterThan(s.Quantity) {
		return fmt.Errorf("reserved_qty %s mayor que quantity %s en %s", s.ReservedQty, s.Quantity, s.Key)
	}
	return nil
}
