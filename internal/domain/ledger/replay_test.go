package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocampo/agrocampo-api/internal/domain/entity"
	"github.com/agrocampo/agrocampo-api/internal/domain/ledger"
	"github.com/agrocampo/agrocampo-api/internal/domain/unit"
)

// TestReplay_ReconstruyeEstado: invariante central del libro. Una mezcla de
// compras a distintos precios y unidades, entradas sin precio y consumos,
// reproducida desde cero, debe reconstruir el (cantidad, promedio) vivo.
func TestReplay_ReconstruyeEstado(t *testing.T) {
	item := itemGramos(0, 0)
	fecha := testNow

	pasos := []ledger.MovementRequest{
		{Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(20), Unit: unit.Kilo, UnitPrice: precio(5_000)},
		{Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(4), Unit: unit.Kilo},
		{Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1), Unit: unit.Bulto50Kg, UnitPrice: precio(300_000)},
		{Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(2), Unit: unit.Kilo}, // traslado sin precio
		{Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(10_500), Unit: unit.Gramo},
	}

	var historial []*entity.Movement
	for _, req := range pasos {
		d := fecha
		req.Date = &d
		res, err := ledger.Apply(item, req, fecha)
		require.NoError(t, err)
		item = res.Item
		mov := res.Movement
		historial = append(historial, &mov)
		fecha = fecha.Add(24 * time.Hour)
	}

	estado, err := ledger.Replay(item, historial)
	require.NoError(t, err)
	assert.True(t, estado.Matches(item),
		"replay (%s, %s) debe coincidir con el estado vivo (%s, %s)",
		estado.Quantity, estado.AverageCost, item.CurrentQuantity, item.AverageCost)
	assert.True(t, estado.Quantity.Equal(item.CurrentQuantity))
	assert.True(t, estado.AverageCost.Equal(item.AverageCost))
}

// El replay ordena por fecha aunque el histórico llegue desordenado.
func TestReplay_OrdenaPorFecha(t *testing.T) {
	item := itemGramos(0, 0)

	in := ledger.MovementRequest{Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(10), Unit: unit.Kilo, UnitPrice: precio(1_000)}
	d1 := testNow
	in.Date = &d1
	res1, err := ledger.Apply(item, in, testNow)
	require.NoError(t, err)

	out := ledger.MovementRequest{Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(3), Unit: unit.Kilo}
	d2 := testNow.Add(time.Hour)
	out.Date = &d2
	res2, err := ledger.Apply(res1.Item, out, testNow)
	require.NoError(t, err)

	m1, m2 := res1.Movement, res2.Movement
	// Desordenado a propósito.
	estado, err := ledger.Replay(res2.Item, []*entity.Movement{&m2, &m1})
	require.NoError(t, err)
	assert.True(t, estado.Quantity.Equal(decimal.NewFromInt(7_000)))
	assert.True(t, estado.AverageCost.Equal(decimal.NewFromInt(1)))
}

func TestReplay_HistorialVacio(t *testing.T) {
	item := itemGramos(0, 0)
	estado, err := ledger.Replay(item, nil)
	require.NoError(t, err)
	assert.True(t, estado.Quantity.IsZero())
	assert.True(t, estado.AverageCost.IsZero())
	assert.True(t, estado.Matches(item))
}
