package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((CantidadActual * CostoActual) + (Delta * CostoEntrada)) / (CantidadActual + Delta)
// Solo aplica en entradas (delta positivo con costo informado); salidas conservan el costo actual.
func WeightedAverageCost(currentQty, currentCost, delta, inboundCost decimal.Decimal) decimal.Decimal {
	sum := currentQty.Add(delta)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentQty.Mul(currentCost).Add(delta.Mul(inboundCost))
	return num.Div(sum)
}
