package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/StockLedger-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestWeightedAverageCost(t *testing.T) {
	tests := []struct {
		name        string
		currentQty  string
		currentCost string
		delta       string
		inboundCost string
		want        string
	}{
		{"entrada sobre stock existente", "100", "10", "50", "16", "12"},
		{"primer movimiento sobre fila en cero", "0", "0", "50", "16", "16"},
		{"entrada al mismo costo no cambia nada", "100", "10", "20", "10", "10"},
		{"cantidades fraccionarias", "1.5", "10", "0.5", "30", "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inventory.WeightedAverageCost(dec(tt.currentQty), dec(tt.currentCost), dec(tt.delta), dec(tt.inboundCost))
			assert.True(t, got.Equal(dec(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestWeightedAverageCost_SumaNoPositiva(t *testing.T) {
	// Si la cantidad resultante queda en cero o negativa no hay base para
	// promediar: el costo se reinicia a cero.
	got := inventory.WeightedAverageCost(dec("10"), dec("5"), dec("-10"), dec("0"))
	assert.True(t, got.IsZero())

	got = inventory.WeightedAverageCost(dec("10"), dec("5"), dec("-15"), dec("0"))
	assert.True(t, got.IsZero())
}
