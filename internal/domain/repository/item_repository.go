package repository

import "github.com/agrocampo/agrocampo-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para InventoryItem (DIP).
// La cantidad y el costo promedio del insumo solo mutan vía el motor de
// movimientos, dentro de una transacción con bloqueo de fila.
type ItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE);
	// solo tiene sentido sobre un Querier transaccional.
	GetForUpdate(id string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryItem, error)
	Delete(id string) error
}
