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

// itemValorado construye un insumo cuyo StockValue() es exactamente value.
func itemValorado(id string, value int64) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:              id,
		BaseUnit:        unit.BaseGramos,
		CurrentQuantity: decimal.NewFromInt(value),
		AverageCost:     decimal.NewFromInt(1),
	}
}

func TestValuation(t *testing.T) {
	items := []*entity.InventoryItem{
		itemValorado("a", 800),
		itemValorado("b", 150),
		itemValorado("c", 50),
	}
	assert.True(t, ledger.Valuation(items).Equal(decimal.NewFromInt(1_000)))
	assert.True(t, ledger.Valuation(nil).IsZero())
}

// TestABCClassify_CortesDeFrontera: valores [800, 150, 50] sobre total 1000.
// 800 acumula exactamente 80% -> A; 950 acumula 95% -> B; el resto -> C.
func TestABCClassify_CortesDeFrontera(t *testing.T) {
	items := []*entity.InventoryItem{
		itemValorado("c", 50),
		itemValorado("a", 800),
		itemValorado("b", 150),
	}
	classes := ledger.ABCClassify(items)
	assert.Equal(t, ledger.ClassA, classes["a"])
	assert.Equal(t, ledger.ClassB, classes["b"])
	assert.Equal(t, ledger.ClassC, classes["c"])
}

func TestABCClassify_ValorizacionCero(t *testing.T) {
	items := []*entity.InventoryItem{itemValorado("a", 0), itemValorado("b", 0)}
	classes := ledger.ABCClassify(items)
	assert.Equal(t, ledger.ClassC, classes["a"])
	assert.Equal(t, ledger.ClassC, classes["b"])
}

func TestLowStock(t *testing.T) {
	bajo := itemValorado("bajo", 100)
	bajo.MinStock = decimal.NewFromInt(200)
	alto := itemValorado("alto", 900)
	alto.MinStock = decimal.NewFromInt(200)
	sinUmbral := itemValorado("sin", 1)

	res := ledger.LowStock([]*entity.InventoryItem{bajo, alto, sinUmbral})
	require.Len(t, res, 1)
	assert.Equal(t, "bajo", res[0].ID)
}

func TestExpirationStatus_Terciles(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	vencido := now.AddDate(0, 0, -1)
	porVencer := now.AddDate(0, 0, 30)
	fresco := now.AddDate(0, 0, 90)

	assert.Equal(t, ledger.ExpirationExpired, ledger.ExpirationStatus(&vencido, now))
	assert.Equal(t, ledger.ExpirationWarning, ledger.ExpirationStatus(&porVencer, now))
	assert.Equal(t, ledger.ExpirationFresh, ledger.ExpirationStatus(&fresco, now))
	assert.Equal(t, ledger.ExpirationFresh, ledger.ExpirationStatus(nil, now))

	// Redondeo techo: 59 días y unas horas cuenta como 60 -> WARNING;
	// 60 días y unas horas cuenta como 61 -> FRESH.
	justoDentro := now.Add(59*24*time.Hour + 6*time.Hour)
	justoFuera := now.Add(60*24*time.Hour + 6*time.Hour)
	assert.Equal(t, ledger.ExpirationWarning, ledger.ExpirationStatus(&justoDentro, now))
	assert.Equal(t, ledger.ExpirationFresh, ledger.ExpirationStatus(&justoFuera, now))
}

func TestIdleCapital(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	conSalidaReciente := itemValorado("reciente", 500)
	conSalidaVieja := itemValorado("viejo", 300)
	sinSalidas := itemValorado("nunca", 200)
	sinStock := itemValorado("vacio", 0)

	movs := []*entity.Movement{
		{ItemID: "reciente", Type: entity.MovementTypeOUT, Date: now.AddDate(0, 0, -10)},
		{ItemID: "viejo", Type: entity.MovementTypeOUT, Date: now.AddDate(0, 0, -90)},
		{ItemID: "nunca", Type: entity.MovementTypeIN, Date: now.AddDate(0, 0, -5)},
		{ItemID: "vacio", Type: entity.MovementTypeOUT, Date: now.AddDate(0, 0, -120)},
	}

	entries := ledger.IdleCapital(
		[]*entity.InventoryItem{conSalidaReciente, conSalidaVieja, sinSalidas, sinStock},
		movs, now,
	)
	require.Len(t, entries, 2)
	ids := map[string]bool{}
	total := decimal.Zero
	for _, e := range entries {
		ids[e.Item.ID] = true
		total = total.Add(e.Value)
	}
	assert.True(t, ids["viejo"], "última salida hace 90 días: inmovilizado")
	assert.True(t, ids["nunca"], "nunca ha salido y tiene stock: inmovilizado")
	assert.True(t, total.Equal(decimal.NewFromInt(500)))
}

func TestCompareSuppliers_RankingAscendente(t *testing.T) {
	item := entity.InventoryItem{
		ID:               "item-1",
		BaseUnit:         unit.BaseGramos,
		LastPurchaseUnit: unit.Kilo,
	}
	// AgroSur: 10 kg por 80000 -> 8/g. CampoRico: 5 kg por 50000 -> 10/g.
	movs := []*entity.Movement{
		{ItemID: "item-1", Type: entity.MovementTypeIN, Supplier: "CampoRico",
			Quantity: decimal.NewFromInt(5), Unit: unit.Kilo, CalculatedCost: decimal.NewFromInt(50_000)},
		{ItemID: "item-1", Type: entity.MovementTypeIN, Supplier: "AgroSur",
			Quantity: decimal.NewFromInt(10), Unit: unit.Kilo, CalculatedCost: decimal.NewFromInt(80_000)},
		// Salidas y movimientos sin proveedor se ignoran.
		{ItemID: "item-1", Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(1), Unit: unit.Kilo},
		{ItemID: "item-1", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1), Unit: unit.Kilo},
	}

	ranking, err := ledger.CompareSuppliers(item, movs)
	require.NoError(t, err)
	require.Len(t, ranking, 2)
	assert.Equal(t, "AgroSur", ranking[0].Supplier, "el más barato primero")
	// 8/g reescalado a kilo: 8000/kg.
	assert.True(t, ranking[0].CostPerUnit.Equal(decimal.NewFromInt(8_000)))
	assert.Equal(t, unit.Kilo, ranking[0].CompareUnit)
	assert.Equal(t, "CampoRico", ranking[1].Supplier)
	assert.True(t, ranking[1].CostPerUnit.Equal(decimal.NewFromInt(10_000)))
}

func TestDiscrepancies(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	movs := []*entity.Movement{
		{ID: "limpio", Discrepancy: decimal.Zero, Date: now},
		{ID: "viejo", Discrepancy: decimal.NewFromInt(200), Date: now.AddDate(0, 0, -3)},
		{ID: "nuevo", Discrepancy: decimal.NewFromInt(50), Date: now.AddDate(0, 0, -1)},
	}
	out := ledger.Discrepancies(movs)
	require.Len(t, out, 2)
	assert.Equal(t, "nuevo", out[0].ID, "más reciente primero")
	assert.Equal(t, "viejo", out[1].ID)
}
