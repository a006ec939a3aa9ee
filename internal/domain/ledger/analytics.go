package ledger

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrocampo/agrocampo-api/internal/domain/entity"
	"github.com/agrocampo/agrocampo-api/internal/domain/unit"
)

// Vistas derivadas del libro: solo lectura, se recalculan en cada consulta
// (nunca se cachean a través de mutaciones).

// Clases ABC (corte de Pareto 80/95).
const (
	ClassA = "A"
	ClassB = "B"
	ClassC = "C"
)

// Estados de vencimiento.
const (
	ExpirationExpired = "EXPIRED" // días restantes <= 0
	ExpirationWarning = "WARNING" // 0 < días restantes <= 60
	ExpirationFresh   = "FRESH"   // > 60 días
)

// expirationWarningDays ventana de alerta de vencimiento.
const expirationWarningDays = 60

// idleCapitalDays ventana de obsolescencia para capital inmovilizado.
const idleCapitalDays = 45

// Valuation devuelve la valorización total del inventario:
// sum(cantidad * costo promedio) sobre los insumos del alcance.
func Valuation(items []*entity.InventoryItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.StockValue())
	}
	return total
}

// LowStock filtra los insumos con umbral definido y stock en o bajo el umbral.
func LowStock(items []*entity.InventoryItem) []*entity.InventoryItem {
	var out []*entity.InventoryItem
	for _, it := range items {
		if it.IsLowStock() {
			out = append(out, it)
		}
	}
	return out
}

// ExpirationStatus clasifica un vencimiento contra now en días enteros con
// redondeo techo. Sin fecha de vencimiento el insumo es FRESH.
func ExpirationStatus(expirationDate *time.Time, now time.Time) string {
	if expirationDate == nil {
		return ExpirationFresh
	}
	days := int(math.Ceil(expirationDate.Sub(now).Hours() / 24))
	switch {
	case days <= 0:
		return ExpirationExpired
	case days <= expirationWarningDays:
		return ExpirationWarning
	default:
		return ExpirationFresh
	}
}

// Expiring devuelve los insumos vencidos o por vencer (EXPIRED o WARNING).
func Expiring(items []*entity.InventoryItem, now time.Time) []*entity.InventoryItem {
	var out []*entity.InventoryItem
	for _, it := range items {
		if s := ExpirationStatus(it.ExpirationDate, now); s != ExpirationFresh {
			out = append(out, it)
		}
	}
	return out
}

// ABCClassify aplica el corte de Pareto estándar sobre la valorización:
// ordena descendente por valor de stock y acumula; A = acumulado <= 80% del
// total, B = <= 95%, C = resto. Con valorización total cero todo es clase C.
func ABCClassify(items []*entity.InventoryItem) map[string]string {
	classes := make(map[string]string, len(items))
	total := Valuation(items)
	if total.LessThanOrEqual(decimal.Zero) {
		for _, it := range items {
			classes[it.ID] = ClassC
		}
		return classes
	}

	sorted := make([]*entity.InventoryItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StockValue().GreaterThan(sorted[j].StockValue())
	})

	cutA := decimal.NewFromFloat(0.80)
	cutB := decimal.NewFromFloat(0.95)
	cumulative := decimal.Zero
	for _, it := range sorted {
		cumulative = cumulative.Add(it.StockValue())
		ratio := cumulative.Div(total)
		switch {
		case ratio.LessThanOrEqual(cutA):
			classes[it.ID] = ClassA
		case ratio.LessThanOrEqual(cutB):
			classes[it.ID] = ClassB
		default:
			classes[it.ID] = ClassC
		}
	}
	return classes
}

// IdleCapitalEntry un insumo con capital inmovilizado.
type IdleCapitalEntry struct {
	Item        *entity.InventoryItem
	Value       decimal.Decimal
	LastOutDate *time.Time // nil = nunca ha tenido salida
}

// IdleCapital devuelve el valor del stock (cantidad > 0) cuya salida más
// reciente es anterior a la ventana de 45 días, o que nunca ha tenido salida.
func IdleCapital(items []*entity.InventoryItem, movements []*entity.Movement, now time.Time) []IdleCapitalEntry {
	lastOut := make(map[string]time.Time, len(items))
	for _, m := range movements {
		if m.Type != entity.MovementTypeOUT {
			continue
		}
		if prev, ok := lastOut[m.ItemID]; !ok || m.Date.After(prev) {
			lastOut[m.ItemID] = m.Date
		}
	}
	threshold := now.AddDate(0, 0, -idleCapitalDays)
	var out []IdleCapitalEntry
	for _, it := range items {
		if !it.CurrentQuantity.GreaterThan(decimal.Zero) {
			continue
		}
		last, ok := lastOut[it.ID]
		if ok && !last.Before(threshold) {
			continue
		}
		entry := IdleCapitalEntry{Item: it, Value: it.StockValue()}
		if ok {
			t := last
			entry.LastOutDate = &t
		}
		out = append(out, entry)
	}
	return out
}

// SupplierPrice costo promedio ponderado implícito de un proveedor para un
// insumo, expresado por unidad de comparación (la última unidad de compra del
// insumo). Informativo: jamás retroalimenta el costo promedio del insumo.
type SupplierPrice struct {
	Supplier       string
	CostPerUnit    decimal.Decimal // por compareUnit
	CompareUnit    string
	PurchaseCount  int
	TotalQuantity  decimal.Decimal // en unidades base
}

// CompareSuppliers agrupa las entradas de un insumo por proveedor, promedia el
// costo implícito por unidad base ponderado por cantidad (costo / cantidad
// base), lo reescala a la unidad de comparación y ordena ascendente por costo.
func CompareSuppliers(item entity.InventoryItem, movements []*entity.Movement) ([]SupplierPrice, error) {
	compareUnit := item.LastPurchaseUnit
	if compareUnit == "" || !unit.IsValid(compareUnit) {
		compareUnit = baseUnitAsPurchase(item.BaseUnit)
	}
	factor, err := unit.Factor(compareUnit)
	if err != nil {
		return nil, err
	}

	type acc struct {
		cost  decimal.Decimal
		qty   decimal.Decimal
		count int
	}
	bySupplier := make(map[string]*acc)
	for _, m := range movements {
		if m.Type != entity.MovementTypeIN || m.ItemID != item.ID || m.Supplier == "" {
			continue
		}
		baseQty, err := unit.ToBase(m.Quantity, m.Unit, item.BaseUnit)
		if err != nil || !baseQty.GreaterThan(decimal.Zero) {
			continue
		}
		a, ok := bySupplier[m.Supplier]
		if !ok {
			a = &acc{cost: decimal.Zero, qty: decimal.Zero}
			bySupplier[m.Supplier] = a
		}
		a.cost = a.cost.Add(m.CalculatedCost)
		a.qty = a.qty.Add(baseQty)
		a.count++
	}

	out := make([]SupplierPrice, 0, len(bySupplier))
	for supplier, a := range bySupplier {
		out = append(out, SupplierPrice{
			Supplier:      supplier,
			CostPerUnit:   a.cost.Div(a.qty).Mul(factor),
			CompareUnit:   compareUnit,
			PurchaseCount: a.count,
			TotalQuantity: a.qty,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CostPerUnit.LessThan(out[j].CostPerUnit)
	})
	return out, nil
}

// Discrepancies devuelve los movimientos con faltante recortado (salidas que
// pidieron más stock del disponible), del más reciente al más antiguo.
// Es la señal de "discrepancia de stock" que el motor no convierte en error.
func Discrepancies(movements []*entity.Movement) []*entity.Movement {
	var out []*entity.Movement
	for _, m := range movements {
		if m.Discrepancy.GreaterThan(decimal.Zero) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
