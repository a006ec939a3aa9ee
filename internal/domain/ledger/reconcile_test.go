package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocampo/agrocampo-api/internal/domain"
	"github.com/agrocampo/agrocampo-api/internal/domain/entity"
	"github.com/agrocampo/agrocampo-api/internal/domain/ledger"
	"github.com/agrocampo/agrocampo-api/internal/domain/unit"
)

func itemConCompra(qty, avg float64, lastUnit string) entity.InventoryItem {
	item := itemGramos(qty, avg)
	item.LastPurchaseUnit = lastUnit
	return item
}

func TestReconcile_ConteoExacto_SinMovimiento(t *testing.T) {
	item := itemConCompra(10_000, 2.0, unit.Kilo)
	req, err := ledger.Reconcile(item, decimal.NewFromInt(10_000), "cualquier texto")
	require.NoError(t, err)
	assert.Nil(t, req, "conteo exacto: no se crea movimiento")
}

func TestReconcile_SinJustificacion_Rechazada(t *testing.T) {
	item := itemConCompra(10_000, 2.0, unit.Kilo)
	_, err := ledger.Reconcile(item, decimal.NewFromInt(9_000), "   ")
	assert.ErrorIs(t, err, domain.ErrMissingJustification)
}

// TestReconcile_SobranteNeutroEnCosto: un sobrante físico se valora al promedio
// vigente; aplicar el movimiento resultante aumenta cantidad pero deja el
// promedio exactamente igual. Verificación explícita: con un precio mal puesto
// la fórmula del promedio ponderado sí lo perturbaría.
func TestReconcile_SobranteNeutroEnCosto(t *testing.T) {
	item := itemConCompra(10_000, 2.5, unit.Kilo)
	fisico := decimal.NewFromInt(12_000) // sobran 2000 g

	req, err := ledger.Reconcile(item, fisico, "conteo trimestral bodega 1")
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, entity.MovementTypeIN, req.Type)
	assert.Equal(t, unit.Kilo, req.Unit)
	assert.True(t, req.Quantity.Equal(decimal.NewFromInt(2)), "2000 g = 2 kg")
	require.NotNil(t, req.UnitPrice)
	// Precio = promedio * factor: 2.5/g * 1000 = 2500/kg.
	assert.True(t, req.UnitPrice.Equal(decimal.NewFromInt(2_500)))

	res, err := ledger.Apply(item, *req, testNow)
	require.NoError(t, err)
	assert.True(t, res.Item.CurrentQuantity.Equal(fisico))
	assert.True(t, res.Item.AverageCost.Equal(decimal.NewFromFloat(2.5)),
		"el promedio no debe derivar por una conciliación: %s", res.Item.AverageCost)
}

func TestReconcile_FaltanteSaleAlPromedio(t *testing.T) {
	item := itemConCompra(10_000, 2.5, unit.Kilo)
	fisico := decimal.NewFromInt(7_000) // faltan 3000 g

	req, err := ledger.Reconcile(item, fisico, "merma por derrame")
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, entity.MovementTypeOUT, req.Type)
	assert.True(t, req.Quantity.Equal(decimal.NewFromInt(3)))
	assert.Nil(t, req.UnitPrice, "una salida no lleva precio")
	assert.Equal(t, "merma por derrame", req.Notes)

	res, err := ledger.Apply(item, *req, testNow)
	require.NoError(t, err)
	assert.True(t, res.Item.CurrentQuantity.Equal(fisico))
	assert.True(t, res.Item.AverageCost.Equal(decimal.NewFromFloat(2.5)))
}

func TestReconcile_SinMemoriaDeCompra_UsaUnidadBase(t *testing.T) {
	// Insumo sin compras previas: el ajuste se expresa en la unidad de factor 1.
	item := itemGramos(500, 1.0)
	req, err := ledger.Reconcile(item, decimal.NewFromInt(800), "ingreso no registrado")
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, unit.Gramo, req.Unit)
	assert.True(t, req.Quantity.Equal(decimal.NewFromInt(300)))
}

// TestReconcile_Idempotencia: conciliar con el stock ya registrado no crea
// movimiento y deja el promedio intacto, cuantas veces se llame.
func TestReconcile_Idempotencia(t *testing.T) {
	item := itemConCompra(4_200, 1.75, unit.Kilo)
	for i := 0; i < 3; i++ {
		req, err := ledger.Reconcile(item, item.CurrentQuantity, "verificación rutinaria")
		require.NoError(t, err)
		assert.Nil(t, req)
	}
	assert.True(t, item.AverageCost.Equal(decimal.NewFromFloat(1.75)))
}
