package repository

import (
	"time"

	"github.com/agrocampo/agrocampo-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos.
// Los movimientos son append-only: no existe Update. DeleteByItem es la única
// excepción a la inmutabilidad (cascada al borrar el insumo) y debe ejecutarse
// en la misma transacción que el borrado del insumo.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// ListByItem devuelve los movimientos de un insumo orden descendente por fecha.
	ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	// ListByItemAsc devuelve el histórico completo en orden cronológico (replay).
	ListByItemAsc(itemID string) ([]*entity.Movement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	DeleteByItem(itemID string) error
}
