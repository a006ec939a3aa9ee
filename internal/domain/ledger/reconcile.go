package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agrocampo/agrocampo-api/internal/domain"
	"github.com/agrocampo/agrocampo-api/internal/domain/entity"
	"github.com/agrocampo/agrocampo-api/internal/domain/unit"
)

// Reconcile traduce un conteo físico en un movimiento sintético, sin inventar
// información de costo nueva.
//
// physicalQty viene en unidades base. Devuelve nil (sin movimiento) si el
// conteo coincide exactamente con el stock registrado. Un sobrante se registra
// como entrada valorada al promedio vigente, de modo que la fórmula del
// promedio ponderado sea un no-op sobre el costo: una conciliación jamás
// deriva el costo promedio, solo corrige cantidad. Un faltante sale como OUT,
// inerte para el promedio por definición.
func Reconcile(item entity.InventoryItem, physicalQty decimal.Decimal, justification string) (*MovementRequest, error) {
	diff := physicalQty.Sub(item.CurrentQuantity)
	if diff.IsZero() {
		return nil, nil
	}
	if strings.TrimSpace(justification) == "" {
		return nil, domain.ErrMissingJustification
	}

	// La diferencia se expresa en la unidad de la última compra (la unidad en
	// la que el bodeguero realmente transa). Sin memoria de compra se usa la
	// propia unidad base (factor 1).
	adjUnit := item.LastPurchaseUnit
	if adjUnit == "" || !unit.IsValid(adjUnit) {
		adjUnit = baseUnitAsPurchase(item.BaseUnit)
	}
	qtyInUnit, err := unit.FromBase(diff.Abs(), adjUnit, item.BaseUnit)
	if err != nil {
		return nil, err
	}

	req := &MovementRequest{
		Quantity: qtyInUnit,
		Unit:     adjUnit,
		Notes:    justification,
	}
	if diff.GreaterThan(decimal.Zero) {
		req.Type = entity.MovementTypeIN
		// Sobrante valorado al promedio actual: precio por unidad de ajuste =
		// promedio por base * factor. Así el promedio ponderado no se mueve.
		factor, err := unit.Factor(adjUnit)
		if err != nil {
			return nil, err
		}
		price := item.AverageCost.Mul(factor)
		req.UnitPrice = &price
	} else {
		req.Type = entity.MovementTypeOUT
	}
	return req, nil
}

// baseUnitAsPurchase mapea una unidad base a la unidad de compra de factor 1.
func baseUnitAsPurchase(baseKind string) string {
	switch baseKind {
	case unit.BaseGramos:
		return unit.Gramo
	case unit.BaseMililitros:
		return unit.Mililitro
	default:
		return unit.Unidad
	}
}
