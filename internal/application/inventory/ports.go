package inventory

import (
	"context"

	"github.com/agrocampo/agrocampo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del motor del libro:
// la actualización del insumo y el append del movimiento se confirman juntos
// o no se confirma ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}
