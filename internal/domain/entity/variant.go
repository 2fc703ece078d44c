package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant representa un SKU vendible/rastreable con sus atributos físicos
// (ej. cilindro lleno de 13kg). Peso y volumen alimentan el cálculo de capacidad.
// El catálogo es de solo lectura para el motor de stock.
type Variant struct {
	ID            string
	TenantID      string
	SKU           string
	Name          string
	GrossWeightKg decimal.Decimal // peso bruto unitario
	UnitVolumeM3  decimal.Decimal // volumen unitario
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
