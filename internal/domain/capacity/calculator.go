package capacity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/StockLedger-api/internal/domain/entity"
)

// VariantLookup resuelve una variante por id. Retorna nil (sin error) si no existe:
// la ausencia degrada a contribución cero, nunca bloquea el cálculo.
type VariantLookup func(variantID string) *entity.Variant

// LineDetail detalle por línea del snapshot de capacidad.
// Unresolved marca líneas cuya variante no pudo resolverse (ej. gas a granel ad-hoc):
// aportan cero y quedan señaladas explícitamente, sin búsqueda difusa de respaldo.
type LineDetail struct {
	VariantID    string
	SKU          string
	Description  string
	Quantity     decimal.Decimal
	UnitWeightKg decimal.Decimal
	UnitVolumeM3 decimal.Decimal
	LineWeightKg decimal.Decimal
	LineVolumeM3 decimal.Decimal
	Unresolved   bool
}

// Snapshot agregado efímero de peso/volumen de un pedido. No se persiste.
type Snapshot struct {
	OrderID       string
	TotalWeightKg decimal.Decimal
	TotalVolumeM3 decimal.Decimal
	Lines         []LineDetail
}

// CalculateOrderCapacity agrega peso y volumen de las líneas de un pedido:
// line_weight = qty * gross_weight_kg, line_volume = qty * unit_volume_m3.
// Función pura: mismo resultado para las mismas líneas y el mismo catálogo.
func CalculateOrderCapacity(orderID string, lines []entity.OrderLine, lookup VariantLookup) Snapshot {
	snap := Snapshot{
		OrderID:       orderID,
		TotalWeightKg: decimal.Zero,
		TotalVolumeM3: decimal.Zero,
		Lines:         make([]LineDetail, 0, len(lines)),
	}
	for _, line := range lines {
		detail := LineDetail{
			VariantID:    line.VariantID,
			Description:  line.Description,
			Quantity:     line.Quantity,
			UnitWeightKg: decimal.Zero,
			UnitVolumeM3: decimal.Zero,
			LineWeightKg: decimal.Zero,
			LineVolumeM3: decimal.Zero,
		}
		var variant *entity.Variant
		if line.VariantID != "" {
			variant = lookup(line.VariantID)
		}
		if variant == nil {
			detail.Unresolved = true
			snap.Lines = append(snap.Lines, detail)
			continue
		}
		detail.SKU = variant.SKU
		detail.UnitWeightKg = variant.GrossWeightKg
		detail.UnitVolumeM3 = variant.UnitVolumeM3
		detail.LineWeightKg = line.Quantity.Mul(variant.GrossWeightKg)
		detail.LineVolumeM3 = line.Quantity.Mul(variant.UnitVolumeM3)
		snap.TotalWeightKg = snap.TotalWeightKg.Add(detail.LineWeightKg)
		snap.TotalVolumeM3 = snap.TotalVolumeM3.Add(detail.LineVolumeM3)
		snap.Lines = append(snap.Lines, detail)
	}
	return snap
}

// Sum suma varios snapshots (carga multi-pedido de un vehículo).
func Sum(snapshots []Snapshot) (totalWeightKg, totalVolumeM3 decimal.Decimal) {
	totalWeightKg, totalVolumeM3 = decimal.Zero, decimal.Zero
	for _, s := range snapshots {
		totalWeightKg = totalWeightKg.Add(s.TotalWeightKg)
		totalVolumeM3 = totalVolumeM3.Add(s.TotalVolumeM3)
	}
	return totalWeightKg, totalVolumeM3
}
