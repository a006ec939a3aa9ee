package unit_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocampo/agrocampo-api/internal/domain"
	"github.com/agrocampo/agrocampo-api/internal/domain/unit"
)

func TestToBase_FactoresFijos(t *testing.T) {
	cases := []struct {
		unidad   string
		baseKind string
		cantidad float64
		esperado float64
	}{
		{unit.Bulto50Kg, unit.BaseGramos, 1, 50_000},
		{unit.Kilo, unit.BaseGramos, 2.5, 2_500},
		{unit.Gramo, unit.BaseGramos, 7, 7},
		{unit.Litro, unit.BaseMililitros, 3, 3_000},
		{unit.Mililitro, unit.BaseMililitros, 40, 40},
		{unit.Galon, unit.BaseMililitros, 1, 3785.41},
		{unit.Unidad, unit.BaseUnidades, 12, 12},
	}
	for _, tc := range cases {
		got, err := unit.ToBase(decimal.NewFromFloat(tc.cantidad), tc.unidad, tc.baseKind)
		require.NoError(t, err, "conversión válida no debe fallar: %s", tc.unidad)
		assert.True(t, got.Equal(decimal.NewFromFloat(tc.esperado)),
			"%s: esperado %v, obtenido %s", tc.unidad, tc.esperado, got)
	}
}

// TestRoundTrip: para toda unidad compatible con su dimensión, convertir a base
// y volver a expresar en la unidad de compra debe devolver la cantidad original.
func TestRoundTrip(t *testing.T) {
	unidades := map[string]string{
		unit.Bulto50Kg: unit.BaseGramos,
		unit.Kilo:      unit.BaseGramos,
		unit.Gramo:     unit.BaseGramos,
		unit.Litro:     unit.BaseMililitros,
		unit.Mililitro: unit.BaseMililitros,
		unit.Galon:     unit.BaseMililitros,
		unit.Unidad:    unit.BaseUnidades,
	}
	x := decimal.NewFromFloat(3.75)
	tolerancia := decimal.NewFromFloat(1e-9)
	for u, base := range unidades {
		enBase, err := unit.ToBase(x, u, base)
		require.NoError(t, err)
		devuelta, err := unit.FromBase(enBase, u, base)
		require.NoError(t, err)
		assert.True(t, devuelta.Sub(x).Abs().LessThan(tolerancia),
			"round-trip %s: esperado %s, obtenido %s", u, x, devuelta)
	}
}

func TestToBase_DimensionIncompatible(t *testing.T) {
	// Litros sobre un insumo en gramos: rechazado.
	_, err := unit.ToBase(decimal.NewFromInt(1), unit.Litro, unit.BaseGramos)
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnit)

	_, err = unit.ToBase(decimal.NewFromInt(1), unit.Kilo, unit.BaseMililitros)
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnit)

	_, err = unit.ToBase(decimal.NewFromInt(1), unit.Unidad, unit.BaseGramos)
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnit)
}

func TestToBase_UnidadDesconocida(t *testing.T) {
	_, err := unit.ToBase(decimal.NewFromInt(1), "arroba", unit.BaseGramos)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, unit.IsValid("arroba"))
}

func TestBaseKindOf(t *testing.T) {
	kind, err := unit.BaseKindOf(unit.Galon)
	require.NoError(t, err)
	assert.Equal(t, unit.BaseMililitros, kind)

	_, err = unit.BaseKindOf("caja")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
