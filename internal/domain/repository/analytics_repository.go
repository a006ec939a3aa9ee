package repository

import (
	"context"

	"github.com/agrocampo/agrocampo-api/internal/domain/entity"
)

// AnalyticsRepository define las lecturas crudas para las vistas analíticas
// del libro. Las implementaciones son read-only: cargan snapshots y el use
// case delega el cálculo (valorización, ABC, capital inmovilizado, etc.) en
// las funciones puras del dominio.
type AnalyticsRepository interface {
	// LoadItems carga todos los insumos de una bodega (sin paginar: snapshot).
	LoadItems(ctx context.Context, warehouseID string) ([]*entity.InventoryItem, error)
	// LoadMovements carga todos los movimientos de una bodega, orden cronológico.
	LoadMovements(ctx context.Context, warehouseID string) ([]*entity.Movement, error)
}
