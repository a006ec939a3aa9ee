package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocampo/agrocampo-api/internal/domain/ledger"
	"github.com/agrocampo/agrocampo-api/internal/domain/unit"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestWeightedAverageCost_VectorConcreto: el caso de referencia contable.
//
//	Stock inicial: 10 kg a 1000/kg (en base: 10000 g a 1.0/g)
//	Entrada:       10 kg a 12000/kg (en base: 10000 g a 12.0/g)
//	Esperado:      (10000*1.0 + 10000*12.0) / 20000 = 6.5/g  (= 6500/kg)
// ──────────────────────────────────────────────────────────────────────────────
func TestWeightedAverageCost_VectorConcreto(t *testing.T) {
	oldQty := decimal.NewFromInt(10_000)   // 10 kg en gramos
	oldAvg := decimal.NewFromInt(1)        // 1000/kg = 1.0/g
	inQty := decimal.NewFromInt(10_000)    // 10 kg en gramos
	inCost, err := ledger.CostPerBase(decimal.NewFromInt(12_000), unit.Kilo)
	require.NoError(t, err)

	nuevo := ledger.WeightedAverageCost(oldQty, oldAvg, inQty, inCost)
	assert.True(t, nuevo.Equal(decimal.NewFromFloat(6.5)),
		"esperado 6.5/g (6500/kg), obtenido %s", nuevo)
}

func TestWeightedAverageCost_SumaCero(t *testing.T) {
	// Sin stock no hay promedio con sentido: cero por política, no un crash.
	nuevo := ledger.WeightedAverageCost(decimal.Zero, decimal.NewFromInt(5), decimal.Zero, decimal.NewFromInt(9))
	assert.True(t, nuevo.IsZero())
}

func TestCostPerBase(t *testing.T) {
	// 12000 por kilo -> 12 por gramo.
	c, err := ledger.CostPerBase(decimal.NewFromInt(12_000), unit.Kilo)
	require.NoError(t, err)
	assert.True(t, c.Equal(decimal.NewFromInt(12)))

	// 100000 por bulto de 50 kg -> 2 por gramo.
	c, err = ledger.CostPerBase(decimal.NewFromInt(100_000), unit.Bulto50Kg)
	require.NoError(t, err)
	assert.True(t, c.Equal(decimal.NewFromInt(2)))
}
