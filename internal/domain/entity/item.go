package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de insumo agrícola (enum cerrado).
const (
	CategoryFertilizante   = "FERTILIZANTE"
	CategoryInsecticida    = "INSECTICIDA"
	CategoryFungicida      = "FUNGICIDA"
	CategoryHerbicida      = "HERBICIDA"
	CategoryBioestimulante = "BIOESTIMULANTE"
	CategoryDesinfectante  = "DESINFECTANTE"
	CategoryOtro           = "OTRO"
)

// Categories lista las categorías válidas para validación en el borde.
var Categories = []string{
	CategoryFertilizante, CategoryInsecticida, CategoryFungicida,
	CategoryHerbicida, CategoryBioestimulante, CategoryDesinfectante,
	CategoryOtro,
}

// InventoryItem representa un insumo almacenado en una bodega (finca).
//
// BaseUnit se fija al crear el insumo a partir de la dimensión física de su
// unidad de compra y no cambia nunca. CurrentQuantity y AverageCost se
// expresan siempre en esa unidad base; AverageCost es el costo promedio
// ponderado por unidad base y solo muta vía aplicación de movimientos.
type InventoryItem struct {
	ID          string
	WarehouseID string
	Name        string
	Category    string

	BaseUnit        string          // g | ml | unidad, fijo desde la creación
	CurrentQuantity decimal.Decimal // en BaseUnit, nunca negativa
	AverageCost     decimal.Decimal // costo por 1 unidad base

	// Memoria de última compra: unidad por defecto para próximas entradas/salidas.
	LastPurchasePrice decimal.Decimal // precio pagado por 1 LastPurchaseUnit
	LastPurchaseUnit  string

	MinStock       decimal.Decimal // umbral de reorden en unidades base (0 = sin umbral)
	ExpirationDate *time.Time
	Description    string
	ImageRef       string // referencia opaca; el core nunca interpreta estos bytes

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLowStock indica si el insumo está en o bajo su umbral de reorden.
func (i *InventoryItem) IsLowStock() bool {
	return i.MinStock.GreaterThan(decimal.Zero) && i.CurrentQuantity.LessThanOrEqual(i.MinStock)
}

// StockValue devuelve la valorización del stock actual (cantidad * costo promedio).
func (i *InventoryItem) StockValue() decimal.Decimal {
	return i.CurrentQuantity.Mul(i.AverageCost)
}
