package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order pedido de cliente, fuente de solo lectura para el cálculo de capacidad.
// La creación y ciclo de vida del pedido viven fuera de este motor.
type Order struct {
	ID        string
	TenantID  string
	Number    string
	Lines     []OrderLine
	CreatedAt time.Time
}

// OrderLine línea de pedido. VariantID puede ser vacío para líneas ad-hoc
// (ej. gas a granel sin SKU); esas líneas aportan cero al peso/volumen.
type OrderLine struct {
	ID          string
	OrderID     string
	VariantID   string
	Description string
	Quantity    decimal.Decimal
}
