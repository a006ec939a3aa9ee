package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/agrocampo/agrocampo-api/internal/application/analytics"
	"github.com/agrocampo/agrocampo-api/internal/application/dto"
	"github.com/agrocampo/agrocampo-api/internal/domain"
)

// ReportHandler descarga de reportes PDF.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// DownloadValuation godoc
// @Summary      Descargar reporte PDF de valorización de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        warehouse_id  path  string  true  "Bodega (UUID)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/valuation/{warehouse_id} [get]
func (h *ReportHandler) DownloadValuation(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.DownloadValuationPDF(c.Context(), c.Params("warehouse_id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bodega no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
