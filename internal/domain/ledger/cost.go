// Package ledger implementa el motor del libro de inventario: costo promedio
// ponderado, aplicación de movimientos, conciliación de conteos físicos,
// replay del histórico y las vistas analíticas derivadas.
//
// Todo el paquete son funciones puras sobre snapshots: sin I/O, sin logging.
// La atomicidad de la persistencia la garantiza la capa de aplicación.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/agrocampo/agrocampo-api/internal/domain/unit"
)

// WeightedAverageCost calcula el nuevo costo promedio ponderado por unidad base.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntradaBase * CostoEntradaBase)) / (StockActual + CantEntradaBase)
//
// Caso degenerado: si la suma de cantidades es cero no existe promedio con
// sentido; se devuelve cero por política (no es un error).
func WeightedAverageCost(currentQty, currentAvgCost, incomingBaseQty, incomingCostPerBase decimal.Decimal) decimal.Decimal {
	sum := currentQty.Add(incomingBaseQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentQty.Mul(currentAvgCost).Add(incomingBaseQty.Mul(incomingCostPerBase))
	return num.Div(sum)
}

// CostPerBase convierte un precio por unidad de compra a costo por unidad base.
// Ej.: 12000 por kilo -> 12 por gramo.
func CostPerBase(unitPrice decimal.Decimal, purchaseUnit string) (decimal.Decimal, error) {
	factor, err := unit.Factor(purchaseUnit)
	if err != nil {
		return decimal.Zero, err
	}
	return unitPrice.Div(factor), nil
}
