package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/agrocampo/agrocampo-api/internal/domain"
	"github.com/agrocampo/agrocampo-api/internal/domain/entity"
	"github.com/agrocampo/agrocampo-api/internal/domain/ledger"
	"github.com/agrocampo/agrocampo-api/internal/domain/repository"
)

// ValuationPDFGenerator renderiza el reporte de valorización. La implementación
// concreta vive en infraestructura (Maroto).
type ValuationPDFGenerator interface {
	GenerateValuationPDF(
		ctx context.Context,
		warehouse *entity.Warehouse,
		items []*entity.InventoryItem,
		abc map[string]string,
		cutoff time.Time,
	) ([]byte, error)
}

// ReportUseCase genera el reporte de valorización de inventario de una bodega.
type ReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	warehouseRepo repository.WarehouseRepository
	generator     ValuationPDFGenerator
}

// NewReportUseCase construye el caso de uso inyectando sus dependencias.
func NewReportUseCase(
	analyticsRepo repository.AnalyticsRepository,
	warehouseRepo repository.WarehouseRepository,
	generator ValuationPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		analyticsRepo: analyticsRepo,
		warehouseRepo: warehouseRepo,
		generator:     generator,
	}
}

// DownloadValuationPDF carga la bodega y su inventario, clasifica ABC y genera
// el PDF con fecha de corte al momento de la consulta.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la bodega no existe.
func (uc *ReportUseCase) DownloadValuationPDF(
	ctx context.Context,
	warehouseID string,
) (pdfBytes []byte, filename string, err error) {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener bodega: %w", err)
	}
	if warehouse == nil {
		return nil, "", domain.ErrNotFound
	}

	items, err := uc.analyticsRepo.LoadItems(ctx, warehouseID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: cargar insumos: %w", err)
	}

	cutoff := time.Now()
	pdfBytes, err = uc.generator.GenerateValuationPDF(ctx, warehouse, items, ledger.ABCClassify(items), cutoff)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar PDF: %w", err)
	}

	filename = fmt.Sprintf("valorizacion-%s-%s.pdf", warehouse.ID, cutoff.Format("20060102"))
	return pdfBytes, filename, nil
}
