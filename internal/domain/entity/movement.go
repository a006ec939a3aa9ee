package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Movement representa un movimiento de stock. Es append-only: una vez creado
// jamás se edita; corregir un error significa registrar un movimiento
// compensatorio, nunca borrar el histórico. La única excepción es el borrado
// en cascada al eliminar el insumo.
//
// Invariante central del libro: reproducir los movimientos de un insumo en
// orden cronológico desde estado vacío debe reconstruir exactamente su
// (cantidad, costo promedio) actual.
type Movement struct {
	ID          string
	WarehouseID string
	ItemID      string
	ItemName    string // snapshot del nombre al momento del movimiento

	Type     string          // IN | OUT
	Quantity decimal.Decimal // positiva, en Unit (no necesariamente la unidad base)
	Unit     string          // unidad de compra elegida para este movimiento

	// CalculatedCost es el costo contable del movimiento. Siempre lo calcula el
	// motor a partir del costo por unidad base vigente; nunca viene del usuario.
	CalculatedCost decimal.Decimal

	// Discrepancy registra el faltante recortado cuando una salida pidió más de
	// lo disponible (en unidades base). Señal de calidad de datos para
	// analítica, no un error de la transacción.
	Discrepancy decimal.Decimal

	Date time.Time // inmutable; fecha de creación salvo backdate del caller

	// Contexto descriptivo: el motor de costos nunca consulta estos campos.
	Supplier   string
	CostCenter string
	Personnel  string
	InvoiceRef string
	Notes      string

	CreatedAt time.Time
	CreatedBy string // UserID
}
