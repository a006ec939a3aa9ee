// Package analytics contiene los casos de uso de las vistas derivadas del
// libro: valorización, bajo stock, vencimientos, clasificación ABC, capital
// inmovilizado y discrepancias de stock.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/agrocampo/agrocampo-api/internal/application/dto"
	"github.com/agrocampo/agrocampo-api/internal/application/inventory"
	"github.com/agrocampo/agrocampo-api/internal/domain/entity"
	"github.com/agrocampo/agrocampo-api/internal/domain/ledger"
	"github.com/agrocampo/agrocampo-api/internal/domain/repository"
)

// DashboardUseCase arma el resumen analítico de una bodega.
//
// Fuente de datos: AnalyticsRepository (snapshots read-only). Todo el cálculo
// lo hacen las funciones puras del dominio; se recalcula en cada consulta, sin
// caché a través de mutaciones.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO de la bodega indicada.
// Dos cargas en paralelo: insumos y movimientos.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, warehouseID string) (*dto.DashboardSummaryDTO, error) {
	type itemsResult struct {
		items []*entity.InventoryItem
		err   error
	}
	type movsResult struct {
		movs []*entity.Movement
		err  error
	}

	itemsCh := make(chan itemsResult, 1)
	movsCh := make(chan movsResult, 1)

	go func() {
		items, err := uc.analyticsRepo.LoadItems(ctx, warehouseID)
		itemsCh <- itemsResult{items, err}
	}()
	go func() {
		movs, err := uc.analyticsRepo.LoadMovements(ctx, warehouseID)
		movsCh <- movsResult{movs, err}
	}()

	ir := <-itemsCh
	mr := <-movsCh
	if ir.err != nil {
		return nil, fmt.Errorf("dashboard: cargar insumos: %w", ir.err)
	}
	if mr.err != nil {
		return nil, fmt.Errorf("dashboard: cargar movimientos: %w", mr.err)
	}

	now := time.Now()
	items, movs := ir.items, mr.movs

	lowStock := toItemDTOs(ledger.LowStock(items), now)
	expiring := toItemDTOs(ledger.Expiring(items, now), now)

	idle := ledger.IdleCapital(items, movs, now)
	idleDTOs := make([]dto.IdleCapitalDTO, 0, len(idle))
	for _, e := range idle {
		idleDTOs = append(idleDTOs, dto.IdleCapitalDTO{
			ItemID:      e.Item.ID,
			ItemName:    e.Item.Name,
			Value:       e.Value,
			LastOutDate: e.LastOutDate,
		})
	}

	disc := ledger.Discrepancies(movs)
	discDTOs := make([]dto.MovementResponse, 0, len(disc))
	for _, m := range disc {
		discDTOs = append(discDTOs, *inventory.ToMovementResponse(m))
	}

	return &dto.DashboardSummaryDTO{
		WarehouseID:    warehouseID,
		TotalValuation: ledger.Valuation(items),
		ItemCount:      len(items),
		LowStock:       lowStock,
		Expiring:       expiring,
		ABCMap:         ledger.ABCClassify(items),
		IdleCapital:    idleDTOs,
		Discrepancies:  discDTOs,
	}, nil
}

// GetABCMap devuelve la clasificación ABC vigente de la bodega.
func (uc *DashboardUseCase) GetABCMap(ctx context.Context, warehouseID string) (map[string]string, error) {
	items, err := uc.analyticsRepo.LoadItems(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("abc: cargar insumos: %w", err)
	}
	return ledger.ABCClassify(items), nil
}

func toItemDTOs(items []*entity.InventoryItem, now time.Time) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *inventory.ToItemResponse(it, now))
	}
	return out
}
