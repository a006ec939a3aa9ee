package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO resumen analítico del libro para una bodega.
type DashboardSummaryDTO struct {
	WarehouseID    string          `json:"warehouse_id"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
	ItemCount      int             `json:"item_count"`
	LowStock       []ItemResponse  `json:"low_stock"`
	Expiring       []ItemResponse  `json:"expiring"`
	ABCMap         map[string]string `json:"abc_map"` // itemID -> A|B|C
	IdleCapital    []IdleCapitalDTO  `json:"idle_capital"`
	Discrepancies  []MovementResponse `json:"discrepancies"`
}

// IdleCapitalDTO insumo con capital inmovilizado (>45 días sin salida).
type IdleCapitalDTO struct {
	ItemID      string          `json:"item_id"`
	ItemName    string          `json:"item_name"`
	Value       decimal.Decimal `json:"value"`
	LastOutDate *time.Time      `json:"last_out_date,omitempty"` // nil = nunca salió
}

// SupplierPriceDTO comparación de precios implícitos por proveedor para un insumo.
type SupplierPriceDTO struct {
	Supplier      string          `json:"supplier"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit"`
	CompareUnit   string          `json:"compare_unit"`
	PurchaseCount int             `json:"purchase_count"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}
