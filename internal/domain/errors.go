package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los cuatro primeros son fallas de validación previas a cualquier mutación:
// el motor de movimientos los levanta antes de tocar el ítem o el histórico.
var (
	ErrIncompatibleUnit     = errors.New("unidad incompatible con la unidad base del insumo")
	ErrItemNotFound         = errors.New("insumo no encontrado")
	ErrInvalidQuantity      = errors.New("cantidad inválida: debe ser mayor que cero")
	ErrMissingJustification = errors.New("el ajuste de inventario requiere justificación")

	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)
