package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrocampo/agrocampo-api/internal/domain/entity"
	"github.com/agrocampo/agrocampo-api/internal/domain/unit"
)

// ReplayState es el estado reconstruido de un insumo tras reproducir su
// histórico completo de movimientos desde cero.
type ReplayState struct {
	Quantity    decimal.Decimal // en unidades base
	AverageCost decimal.Decimal // por unidad base
}

// Replay reproduce los movimientos de un insumo en orden cronológico desde
// estado vacío (cantidad 0, costo 0) y devuelve el estado resultante.
//
// Es la garantía de auditabilidad del libro hecha ejecutable: el resultado
// debe coincidir con el (cantidad, costo promedio) actual del insumo, módulo
// el ajuste a cero bajo el epsilon. El costo por base implícito de cada
// entrada se deriva de CalculatedCost / cantidadBase, que para compras reales
// es exactamente precio/factor y para entradas sin precio es el promedio
// vigente al momento (por lo que el promedio no se mueve, igual que en vivo).
func Replay(item entity.InventoryItem, movements []*entity.Movement) (ReplayState, error) {
	ordered := make([]*entity.Movement, len(movements))
	copy(ordered, movements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	state := entity.InventoryItem{
		ID:          item.ID,
		WarehouseID: item.WarehouseID,
		Name:        item.Name,
		BaseUnit:    item.BaseUnit,
	}
	for _, m := range ordered {
		req := MovementRequest{
			Type:     m.Type,
			Quantity: m.Quantity,
			Unit:     m.Unit,
		}
		if m.Type == entity.MovementTypeIN {
			baseQty, err := unit.ToBase(m.Quantity, m.Unit, item.BaseUnit)
			if err != nil {
				return ReplayState{}, err
			}
			if baseQty.GreaterThan(decimal.Zero) {
				factor, err := unit.Factor(m.Unit)
				if err != nil {
					return ReplayState{}, err
				}
				price := m.CalculatedCost.Div(baseQty).Mul(factor)
				req.UnitPrice = &price
			}
		}
		res, err := Apply(state, req, time.Now())
		if err != nil {
			return ReplayState{}, err
		}
		state = res.Item
	}
	return ReplayState{Quantity: state.CurrentQuantity, AverageCost: state.AverageCost}, nil
}

// replayTolerance: tolerancia relativa 1e-6 al comparar contra el estado vivo.
var replayTolerance = decimal.NewFromFloat(1e-6)

// Matches compara el estado reproducido contra el insumo vivo con tolerancia
// relativa (el estado vivo pudo acumular ajustes a cero bajo el epsilon).
func (s ReplayState) Matches(item entity.InventoryItem) bool {
	return withinRelative(s.Quantity, item.CurrentQuantity) &&
		withinRelative(s.AverageCost, item.AverageCost)
}

func withinRelative(a, b decimal.Decimal) bool {
	diff := a.Sub(b).Abs()
	if diff.IsZero() {
		return true
	}
	scale := decimal.Max(a.Abs(), b.Abs(), snapEpsilon)
	return diff.LessThanOrEqual(scale.Mul(replayTolerance).Add(snapEpsilon))
}
