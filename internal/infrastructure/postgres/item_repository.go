package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agrocampo/agrocampo-api/internal/domain"
	"github.com/agrocampo/agrocampo-api/internal/domain/entity"
	"github.com/agrocampo/agrocampo-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, warehouse_id, name, category, base_unit, current_quantity, average_cost,
		last_purchase_price, last_purchase_unit, min_stock, expiration_date, description, image_ref,
		created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de insumos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un insumo nuevo.
func (r *ItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.WarehouseID, item.Name, item.Category, item.BaseUnit,
		item.CurrentQuantity, item.AverageCost,
		item.LastPurchasePrice, nullIfEmpty(item.LastPurchaseUnit), item.MinStock,
		item.ExpirationDate, item.Description, item.ImageRef,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID.
func (r *ItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el insumo y bloquea la fila (SELECT FOR UPDATE).
// Evita que dos movimientos concurrentes lean el mismo promedio viejo.
func (r *ItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *ItemRepo) scanOne(query string, args ...any) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var lastUnit *string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&it.ID, &it.WarehouseID, &it.Name, &it.Category, &it.BaseUnit,
		&it.CurrentQuantity, &it.AverageCost,
		&it.LastPurchasePrice, &lastUnit, &it.MinStock,
		&it.ExpirationDate, &it.Description, &it.ImageRef,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	if lastUnit != nil {
		it.LastPurchaseUnit = *lastUnit
	}
	return &it, nil
}

// Update actualiza el estado completo del insumo (solo desde el motor, en tx).
func (r *ItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET
			name = $2, category = $3, current_quantity = $4, average_cost = $5,
			last_purchase_price = $6, last_purchase_unit = $7, min_stock = $8,
			expiration_date = $9, description = $10, image_ref = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.CurrentQuantity, item.AverageCost,
		item.LastPurchasePrice, nullIfEmpty(item.LastPurchaseUnit), item.MinStock,
		item.ExpirationDate, item.Description, item.ImageRef, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// ListByWarehouse lista insumos de una bodega con paginación, por nombre.
func (r *ItemRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items WHERE warehouse_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// Delete elimina un insumo por ID. El borrado en cascada de sus movimientos lo
// coordina el caso de uso dentro de la misma transacción.
func (r *ItemRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func scanItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		var lastUnit *string
		if err := rows.Scan(
			&it.ID, &it.WarehouseID, &it.Name, &it.Category, &it.BaseUnit,
			&it.CurrentQuantity, &it.AverageCost,
			&it.LastPurchasePrice, &lastUnit, &it.MinStock,
			&it.ExpirationDate, &it.Description, &it.ImageRef,
			&it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if lastUnit != nil {
			it.LastPurchaseUnit = *lastUnit
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
