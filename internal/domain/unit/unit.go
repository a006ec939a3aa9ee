// Package unit centraliza la tabla de conversión de unidades de compra a
// unidades base. Toda conversión de unidades del sistema pasa por aquí; ningún
// otro paquete debe deducir la dimensión física a partir del string de unidad.
package unit

import (
	"github.com/shopspring/decimal"

	"github.com/agrocampo/agrocampo-api/internal/domain"
)

// Unidades base canónicas. La cantidad y el costo promedio de un insumo se
// almacenan siempre en estos términos, sin importar la unidad de compra.
const (
	BaseGramos     = "g"
	BaseMililitros = "ml"
	BaseUnidades   = "unidad"
)

// Unidades de compra (enum cerrado). Se validan en el borde de la API: en
// runtime no existen unidades desconocidas.
const (
	Bulto50Kg = "bulto_50kg"
	Kilo      = "kilo"
	Gramo     = "gramo"
	Litro     = "litro"
	Mililitro = "mililitro"
	Galon     = "galon"
	Unidad    = "unidad"
)

// conversion factor hacia la unidad base de su dimensión.
type conversion struct {
	baseKind string
	factor   decimal.Decimal
}

// Tabla fija de conversión. Galón: 3785.41 ml (galón US, factor documentado y fijo).
var table = map[string]conversion{
	Bulto50Kg: {BaseGramos, decimal.NewFromInt(50_000)},
	Kilo:      {BaseGramos, decimal.NewFromInt(1_000)},
	Gramo:     {BaseGramos, decimal.NewFromInt(1)},
	Litro:     {BaseMililitros, decimal.NewFromInt(1_000)},
	Mililitro: {BaseMililitros, decimal.NewFromInt(1)},
	Galon:     {BaseMililitros, decimal.NewFromFloat(3785.41)},
	Unidad:    {BaseUnidades, decimal.NewFromInt(1)},
}

// IsValid indica si u pertenece al enum cerrado de unidades de compra.
func IsValid(u string) bool {
	_, ok := table[u]
	return ok
}

// BaseKindOf devuelve la unidad base de la dimensión física de u
// (g, ml o unidad). ErrInvalidInput si la unidad no existe.
func BaseKindOf(u string) (string, error) {
	c, ok := table[u]
	if !ok {
		return "", domain.ErrInvalidInput
	}
	return c.baseKind, nil
}

// Factor devuelve cuántas unidades base equivalen a 1 unidad de compra u.
func Factor(u string) (decimal.Decimal, error) {
	c, ok := table[u]
	if !ok {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return c.factor, nil
}

// ToBase convierte una cantidad expresada en la unidad de compra u a la unidad
// base del insumo (baseKind). ErrIncompatibleUnit si la dimensión de u no
// coincide con baseKind (ej.: litros sobre un insumo en gramos).
func ToBase(quantity decimal.Decimal, u, baseKind string) (decimal.Decimal, error) {
	c, ok := table[u]
	if !ok {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if c.baseKind != baseKind {
		return decimal.Zero, domain.ErrIncompatibleUnit
	}
	return quantity.Mul(c.factor), nil
}

// FromBase expresa una cantidad en unidades base en términos de la unidad de
// compra u (inversa de ToBase).
func FromBase(baseQuantity decimal.Decimal, u, baseKind string) (decimal.Decimal, error) {
	c, ok := table[u]
	if !ok {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if c.baseKind != baseKind {
		return decimal.Zero, domain.ErrIncompatibleUnit
	}
	return baseQuantity.Div(c.factor), nil
}
