package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/inventory/items.
// PurchaseUnit fija la unidad base del insumo (por su dimensión física).
// OpeningQuantity > 0 crea el primer movimiento IN como saldo inicial.
type CreateItemRequest struct {
	WarehouseID     string           `json:"warehouse_id"`
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	PurchaseUnit    string           `json:"purchase_unit"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	OpeningQuantity decimal.Decimal  `json:"opening_quantity,omitempty"` // en PurchaseUnit
	MinStock        decimal.Decimal  `json:"min_stock,omitempty"`        // en unidades base
	ExpirationDate  *time.Time       `json:"expiration_date,omitempty"`
	Description     string           `json:"description,omitempty"`
	ImageRef        string           `json:"image_ref,omitempty"`
}

// RegisterMovementRequest body para POST /api/inventory/items/:id/movements.
type RegisterMovementRequest struct {
	Type           string           `json:"type"` // IN | OUT
	Quantity       decimal.Decimal  `json:"quantity"`
	Unit           string           `json:"unit"`
	UnitPrice      *decimal.Decimal `json:"unit_price,omitempty"` // solo entradas con compra real
	ExpirationDate *time.Time       `json:"expiration_date,omitempty"`
	Date           *time.Time       `json:"date,omitempty"` // backdate opcional
	Supplier       string           `json:"supplier,omitempty"`
	CostCenter     string           `json:"cost_center,omitempty"`
	Personnel      string           `json:"personnel,omitempty"`
	InvoiceRef     string           `json:"invoice_ref,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// ReconcileRequest body para POST /api/inventory/items/:id/reconcile.
// PhysicalQuantity en unidades base del insumo.
type ReconcileRequest struct {
	PhysicalQuantity decimal.Decimal `json:"physical_quantity"`
	Justification    string          `json:"justification"`
}

// ItemResponse representación de un insumo.
type ItemResponse struct {
	ID                string          `json:"id"`
	WarehouseID       string          `json:"warehouse_id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	BaseUnit          string          `json:"base_unit"`
	CurrentQuantity   decimal.Decimal `json:"current_quantity"`
	AverageCost       decimal.Decimal `json:"average_cost"`
	StockValue        decimal.Decimal `json:"stock_value"`
	LastPurchasePrice decimal.Decimal `json:"last_purchase_price"`
	LastPurchaseUnit  string          `json:"last_purchase_unit,omitempty"`
	MinStock          decimal.Decimal `json:"min_stock"`
	LowStock          bool            `json:"low_stock"`
	ExpirationDate    *time.Time      `json:"expiration_date,omitempty"`
	ExpirationStatus  string          `json:"expiration_status"`
	Description       string          `json:"description,omitempty"`
	ImageRef          string          `json:"image_ref,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ItemListResponse listado paginado de insumos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// MovementResponse representación de un movimiento.
type MovementResponse struct {
	ID             string          `json:"id"`
	WarehouseID    string          `json:"warehouse_id"`
	ItemID         string          `json:"item_id"`
	ItemName       string          `json:"item_name"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	CalculatedCost decimal.Decimal `json:"calculated_cost"`
	Discrepancy    decimal.Decimal `json:"discrepancy,omitempty"`
	Date           time.Time       `json:"date"`
	Supplier       string          `json:"supplier,omitempty"`
	CostCenter     string          `json:"cost_center,omitempty"`
	Personnel      string          `json:"personnel,omitempty"`
	InvoiceRef     string          `json:"invoice_ref,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by,omitempty"`
}

// ApplyMovementResponse insumo actualizado + movimiento registrado.
type ApplyMovementResponse struct {
	Item     ItemResponse      `json:"item"`
	Movement *MovementResponse `json:"movement,omitempty"`
}

// MovementListResponse histórico paginado (descendente por fecha).
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"page"`
}

// ReplayResponse resultado de la verificación de auditabilidad de un insumo.
type ReplayResponse struct {
	ItemID             string          `json:"item_id"`
	Consistent         bool            `json:"consistent"`
	LiveQuantity       decimal.Decimal `json:"live_quantity"`
	LiveAverageCost    decimal.Decimal `json:"live_average_cost"`
	ReplayQuantity     decimal.Decimal `json:"replay_quantity"`
	ReplayAverageCost  decimal.Decimal `json:"replay_average_cost"`
	MovementsReplayed  int             `json:"movements_replayed"`
}
