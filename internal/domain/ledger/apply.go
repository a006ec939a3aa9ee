package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrocampo/agrocampo-api/internal/domain"
	"github.com/agrocampo/agrocampo-api/internal/domain/entity"
	"github.com/agrocampo/agrocampo-api/internal/domain/unit"
)

// snapEpsilon: cantidades residuales menores a 0.1 unidades base se ajustan a
// cero para absorber deriva de punto flotante por conversiones repetidas.
// Umbral absoluto, uniforme para todas las escalas de unidad.
var snapEpsilon = decimal.NewFromFloat(0.1)

// MovementRequest es la solicitud de movimiento que recibe el motor.
// Quantity viene en Unit (unidad de compra), no en la unidad base del insumo.
type MovementRequest struct {
	Type     string
	Quantity decimal.Decimal
	Unit     string

	// UnitPrice: precio por 1 Unit. Solo tiene sentido en entradas; si está
	// presente la entrada es una compra real y recalcula el costo promedio.
	// Ausente, la entrada se valora al promedio vigente (saldo inicial,
	// traslado al costo existente) y el promedio no cambia.
	UnitPrice      *decimal.Decimal
	ExpirationDate *time.Time
	Date           *time.Time // backdate opcional; por defecto, ahora

	Supplier   string
	CostCenter string
	Personnel  string
	InvoiceRef string
	Notes      string
}

// ApplyResult es el resultado de aplicar un movimiento: el insumo actualizado,
// el registro del movimiento y el faltante recortado (si la salida pidió más
// stock del disponible).
type ApplyResult struct {
	Item     entity.InventoryItem
	Movement entity.Movement

	// Shortfall > 0 señala sobre-consumo: la salida pedía más de lo que había
	// y la cantidad se recortó a cero. Anomalía de negocio a reportar vía
	// analítica, no transacción a abortar (el registro tardío en campo es
	// legítimo).
	Shortfall decimal.Decimal
}

// Apply es la transición de estado autoritativa de stock + costo.
//
// Valida antes de mutar: unidad compatible y cantidad positiva; ante error el
// snapshot queda intacto. Entradas con precio recalculan el promedio ponderado
// y actualizan la memoria de última compra; entradas sin precio y toda salida
// se valoran al promedio vigente (una salida jamás cambia el promedio).
// La cantidad resultante se recorta a >= 0 y se ajusta a cero bajo el epsilon.
func Apply(item entity.InventoryItem, req MovementRequest, now time.Time) (ApplyResult, error) {
	if req.Type != entity.MovementTypeIN && req.Type != entity.MovementTypeOUT {
		return ApplyResult{}, domain.ErrInvalidInput
	}
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return ApplyResult{}, domain.ErrInvalidQuantity
	}
	baseQty, err := unit.ToBase(req.Quantity, req.Unit, item.BaseUnit)
	if err != nil {
		return ApplyResult{}, err
	}

	var calculatedCost decimal.Decimal
	shortfall := decimal.Zero

	switch req.Type {
	case entity.MovementTypeIN:
		if req.UnitPrice != nil {
			// Compra real: nuevo promedio ponderado y actualización de la
			// memoria de última compra.
			costPerBase, err := CostPerBase(*req.UnitPrice, req.Unit)
			if err != nil {
				return ApplyResult{}, err
			}
			item.AverageCost = WeightedAverageCost(item.CurrentQuantity, item.AverageCost, baseQty, costPerBase)
			calculatedCost = baseQty.Mul(costPerBase)
			item.LastPurchasePrice = *req.UnitPrice
			item.LastPurchaseUnit = req.Unit
		} else {
			// Sin precio no hay información de costo nueva: se valora al
			// promedio existente y el promedio queda igual.
			calculatedCost = baseQty.Mul(item.AverageCost)
		}
		if req.ExpirationDate != nil {
			item.ExpirationDate = req.ExpirationDate
		}
		item.CurrentQuantity = item.CurrentQuantity.Add(baseQty)

	case entity.MovementTypeOUT:
		calculatedCost = baseQty.Mul(item.AverageCost)
		newQty := item.CurrentQuantity.Sub(baseQty)
		if newQty.LessThan(decimal.Zero) {
			// Recorte defensivo: el libro siempre queda mostrable; el
			// faltante se expone a la analítica como discrepancia de stock.
			shortfall = newQty.Neg()
			newQty = decimal.Zero
		}
		item.CurrentQuantity = newQty
	}

	// Snap a cero bajo el epsilon para absorber deriva de conversiones.
	if item.CurrentQuantity.GreaterThan(decimal.Zero) && item.CurrentQuantity.LessThan(snapEpsilon) {
		item.CurrentQuantity = decimal.Zero
	}

	date := now
	if req.Date != nil {
		date = *req.Date
	}
	item.UpdatedAt = now

	mov := entity.Movement{
		WarehouseID:    item.WarehouseID,
		ItemID:         item.ID,
		ItemName:       item.Name,
		Type:           req.Type,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		CalculatedCost: calculatedCost,
		Discrepancy:    shortfall,
		Date:           date,
		Supplier:       req.Supplier,
		CostCenter:     req.CostCenter,
		Personnel:      req.Personnel,
		InvoiceRef:     req.InvoiceRef,
		Notes:          req.Notes,
		CreatedAt:      now,
	}

	return ApplyResult{Item: item, Movement: mov, Shortfall: shortfall}, nil
}
