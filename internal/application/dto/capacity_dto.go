package dto

import "github.com/shopspring/decimal"

// CapacityLineDTO detalle por línea del snapshot de capacidad.
type CapacityLineDTO struct {
	VariantID    string          `json:"variant_id,omitempty"`
	SKU          string          `json:"sku,omitempty"`
	Description  string          `json:"description,omitempty"`
	Quantity     decimal.Decimal `json:"qty"`
	UnitWeightKg decimal.Decimal `json:"unit_weight_kg"`
	UnitVolumeM3 decimal.Decimal `json:"unit_volume_m3"`
	LineWeightKg decimal.Decimal `json:"line_weight_kg"`
	LineVolumeM3 decimal.Decimal `json:"line_volume_m3"`
	Unresolved   bool            `json:"unresolved,omitempty"`
}

// CapacitySnapshotDTO agregado peso/volumen de un pedido.
type CapacitySnapshotDTO struct {
	OrderID       string            `json:"order_id"`
	TotalWeightKg decimal.Decimal   `json:"total_weight_kg"`
	TotalVolumeM3 decimal.Decimal   `json:"total_volume_m3"`
	LineDetails   []CapacityLineDTO `json:"line_details"`
}

// MultiOrderCapacityRequest body de POST /api/capacity/orders.
type MultiOrderCapacityRequest struct {
	OrderIDs []string `json:"order_ids" validate:"required,min=1,dive,required"`
}

// MultiOrderCapacityResponse agregado multi-pedido para validar cargas de vehículo.
type MultiOrderCapacityResponse struct {
	TotalWeightKg decimal.Decimal       `json:"total_weight_kg"`
	TotalVolumeM3 decimal.Decimal       `json:"total_volume_m3"`
	PerOrder      []CapacitySnapshotDTO `json:"per_order"`
}
