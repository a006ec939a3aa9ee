package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocampo/agrocampo-api/internal/domain"
	"github.com/agrocampo/agrocampo-api/internal/domain/entity"
	"github.com/agrocampo/agrocampo-api/internal/domain/ledger"
	"github.com/agrocampo/agrocampo-api/internal/domain/unit"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

// itemGramos construye un insumo de prueba en gramos.
func itemGramos(qty, avg float64) entity.InventoryItem {
	return entity.InventoryItem{
		ID:              "item-1",
		WarehouseID:     "wh-1",
		Name:            "Urea 46%",
		Category:        entity.CategoryFertilizante,
		BaseUnit:        unit.BaseGramos,
		CurrentQuantity: decimal.NewFromFloat(qty),
		AverageCost:     decimal.NewFromFloat(avg),
	}
}

func precio(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas (IN)
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_EntradaConPrecio_RecalculaPromedio(t *testing.T) {
	// 10 kg a 1.0/g de promedio; entran 10 kg a 12000/kg.
	item := itemGramos(10_000, 1.0)
	res, err := ledger.Apply(item, ledger.MovementRequest{
		Type:      entity.MovementTypeIN,
		Quantity:  decimal.NewFromInt(10),
		Unit:      unit.Kilo,
		UnitPrice: precio(12_000),
	}, testNow)
	require.NoError(t, err)

	assert.True(t, res.Item.CurrentQuantity.Equal(decimal.NewFromInt(20_000)))
	assert.True(t, res.Item.AverageCost.Equal(decimal.NewFromFloat(6.5)),
		"promedio esperado 6.5/g, obtenido %s", res.Item.AverageCost)
	// Costo contable del movimiento: 10000 g * 12/g.
	assert.True(t, res.Movement.CalculatedCost.Equal(decimal.NewFromInt(120_000)))
	// Memoria de última compra actualizada.
	assert.Equal(t, unit.Kilo, res.Item.LastPurchaseUnit)
	assert.True(t, res.Item.LastPurchasePrice.Equal(decimal.NewFromInt(12_000)))
}

func TestApply_EntradaSinPrecio_PromedioIntacto(t *testing.T) {
	// Traslado al costo existente: se valora al promedio vigente y este no cambia.
	item := itemGramos(5_000, 2.0)
	res, err := ledger.Apply(item, ledger.MovementRequest{
		Type:     entity.MovementTypeIN,
		Quantity: decimal.NewFromInt(3),
		Unit:     unit.Kilo,
	}, testNow)
	require.NoError(t, err)

	assert.True(t, res.Item.CurrentQuantity.Equal(decimal.NewFromInt(8_000)))
	assert.True(t, res.Item.AverageCost.Equal(decimal.NewFromFloat(2.0)))
	assert.True(t, res.Movement.CalculatedCost.Equal(decimal.NewFromInt(6_000)))
	// Sin precio no hay compra: la memoria de última compra no se toca.
	assert.Empty(t, res.Item.LastPurchaseUnit)
}

func TestApply_EntradaActualizaVencimiento(t *testing.T) {
	item := itemGramos(0, 0)
	vence := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	res, err := ledger.Apply(item, ledger.MovementRequest{
		Type:           entity.MovementTypeIN,
		Quantity:       decimal.NewFromInt(1),
		Unit:           unit.Kilo,
		UnitPrice:      precio(5_000),
		ExpirationDate: &vence,
	}, testNow)
	require.NoError(t, err)
	require.NotNil(t, res.Item.ExpirationDate)
	assert.True(t, res.Item.ExpirationDate.Equal(vence))
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas (OUT)
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_SalidaNoCambiaPromedio(t *testing.T) {
	// Secuencia de consumos: el promedio jamás se mueve.
	item := itemGramos(20_000, 6.5)
	for _, kg := range []int64{2, 5, 1} {
		res, err := ledger.Apply(item, ledger.MovementRequest{
			Type:     entity.MovementTypeOUT,
			Quantity: decimal.NewFromInt(kg),
			Unit:     unit.Kilo,
		}, testNow)
		require.NoError(t, err)
		assert.True(t, res.Item.AverageCost.Equal(decimal.NewFromFloat(6.5)),
			"una salida nunca cambia el costo promedio")
		item = res.Item
	}
	assert.True(t, item.CurrentQuantity.Equal(decimal.NewFromInt(12_000)))
}

func TestApply_SalidaCostoAlPromedio(t *testing.T) {
	item := itemGramos(10_000, 3.0)
	res, err := ledger.Apply(item, ledger.MovementRequest{
		Type:     entity.MovementTypeOUT,
		Quantity: decimal.NewFromInt(2),
		Unit:     unit.Kilo,
	}, testNow)
	require.NoError(t, err)
	assert.True(t, res.Movement.CalculatedCost.Equal(decimal.NewFromInt(6_000)))
}

func TestApply_SobreConsumoRecortaACero(t *testing.T) {
	// Pedir más de lo disponible no es error: recorta a cero y reporta el
	// faltante como discrepancia.
	item := itemGramos(1_500, 4.0)
	res, err := ledger.Apply(item, ledger.MovementRequest{
		Type:     entity.MovementTypeOUT,
		Quantity: decimal.NewFromInt(2),
		Unit:     unit.Kilo,
	}, testNow)
	require.NoError(t, err, "el sobre-consumo no debe levantar ErrInvalidQuantity")
	assert.True(t, res.Item.CurrentQuantity.IsZero(), "la cantidad queda en 0, nunca negativa")
	assert.True(t, res.Shortfall.Equal(decimal.NewFromInt(500)))
	assert.True(t, res.Movement.Discrepancy.Equal(decimal.NewFromInt(500)))
}

func TestApply_SnapACeroBajoEpsilon(t *testing.T) {
	// Residuo < 0.1 unidades base tras la salida: se ajusta a exactamente 0.
	item := itemGramos(1_000.05, 1.0)
	res, err := ledger.Apply(item, ledger.MovementRequest{
		Type:     entity.MovementTypeOUT,
		Quantity: decimal.NewFromInt(1),
		Unit:     unit.Kilo,
	}, testNow)
	require.NoError(t, err)
	assert.True(t, res.Item.CurrentQuantity.IsZero(),
		"0.05 g residuales deben ajustarse a cero, obtenido %s", res.Item.CurrentQuantity)
	assert.True(t, res.Shortfall.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones previas a la mutación
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_UnidadIncompatibleRechazada(t *testing.T) {
	item := itemGramos(10_000, 1.0)
	_, err := ledger.Apply(item, ledger.MovementRequest{
		Type:     entity.MovementTypeIN,
		Quantity: decimal.NewFromInt(1),
		Unit:     unit.Litro,
		UnitPrice: precio(100),
	}, testNow)
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnit)
	// El snapshot original queda intacto (Apply trabaja por valor).
	assert.True(t, item.CurrentQuantity.Equal(decimal.NewFromInt(10_000)))
	assert.True(t, item.AverageCost.Equal(decimal.NewFromInt(1)))
}

func TestApply_CantidadNoPositivaRechazada(t *testing.T) {
	item := itemGramos(10_000, 1.0)
	for _, q := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-3)} {
		_, err := ledger.Apply(item, ledger.MovementRequest{
			Type:     entity.MovementTypeOUT,
			Quantity: q,
			Unit:     unit.Kilo,
		}, testNow)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
}

func TestApply_TipoInvalidoRechazado(t *testing.T) {
	item := itemGramos(10, 1)
	_, err := ledger.Apply(item, ledger.MovementRequest{
		Type:     "TRANSFER",
		Quantity: decimal.NewFromInt(1),
		Unit:     unit.Gramo,
	}, testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_BackdateRespetado(t *testing.T) {
	item := itemGramos(10_000, 1.0)
	ayer := testNow.AddDate(0, 0, -1)
	res, err := ledger.Apply(item, ledger.MovementRequest{
		Type:     entity.MovementTypeOUT,
		Quantity: decimal.NewFromInt(1),
		Unit:     unit.Kilo,
		Date:     &ayer,
	}, testNow)
	require.NoError(t, err)
	assert.True(t, res.Movement.Date.Equal(ayer))
	assert.True(t, res.Movement.CreatedAt.Equal(testNow))
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: saldo inicial
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_SaldoInicial(t *testing.T) {
	// Insumo nuevo: 20 kg a 5000/kg de saldo de apertura.
	item := itemGramos(0, 0)
	res, err := ledger.Apply(item, ledger.MovementRequest{
		Type:      entity.MovementTypeIN,
		Quantity:  decimal.NewFromInt(20),
		Unit:      unit.Kilo,
		UnitPrice: precio(5_000),
	}, testNow)
	require.NoError(t, err)
	assert.True(t, res.Item.CurrentQuantity.Equal(decimal.NewFromInt(20_000)), "20 kg = 20000 g")
	assert.True(t, res.Item.AverageCost.Equal(decimal.NewFromInt(5)), "5000/kg = 5.0/g")
	assert.True(t, res.Movement.CalculatedCost.Equal(decimal.NewFromInt(100_000)))
}
