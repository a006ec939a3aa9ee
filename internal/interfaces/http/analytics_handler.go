package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/agrocampo/agrocampo-api/internal/application/analytics"
	"github.com/agrocampo/agrocampo-api/internal/application/dto"
)

// AnalyticsHandler maneja los endpoints de las vistas derivadas del libro.
type AnalyticsHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *appanalytics.DashboardUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen analítico de la bodega
// @Description  Valorización total, bajo stock, próximos a vencer, clasificación
//
//	ABC, capital inmovilizado y discrepancias. Todo se recalcula al
//	momento de la consulta.
//
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true  "Bodega (UUID)"
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}

	summary, err := h.uc.GetSummary(c.Context(), warehouseID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	return c.JSON(summary)
}

// GetABC godoc
// @Summary      Clasificación ABC vigente de la bodega
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true  "Bodega (UUID)"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/abc [get]
func (h *AnalyticsHandler) GetABC(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}

	abc, err := h.uc.GetABCMap(c.Context(), warehouseID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	return c.JSON(abc)
}
