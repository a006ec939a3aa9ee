package postgres

import (
	"context"
	"fmt"

	"github.com/agrocampo/agrocampo-api/internal/domain/entity"
	"github.com/agrocampo/agrocampo-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo lecturas read-only para las vistas analíticas del libro.
// Carga snapshots completos por bodega; el cálculo vive en el dominio.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// LoadItems carga todos los insumos de una bodega (snapshot sin paginar).
func (r *AnalyticsRepo) LoadItems(ctx context.Context, warehouseID string) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items WHERE warehouse_id = $1
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// LoadMovements carga todos los movimientos de una bodega en orden cronológico.
func (r *AnalyticsRepo) LoadMovements(ctx context.Context, warehouseID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE warehouse_id = $1
		ORDER BY date ASC, created_at ASC`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("load movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var createdBy *string
		if err := rows.Scan(
			&m.ID, &m.WarehouseID, &m.ItemID, &m.ItemName, &m.Type, &m.Quantity, &m.Unit,
			&m.CalculatedCost, &m.Discrepancy, &m.Date,
			&m.Supplier, &m.CostCenter, &m.Personnel, &m.InvoiceRef, &m.Notes,
			&m.CreatedAt, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
