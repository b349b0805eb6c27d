package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/pecuadex/pecuadex-api/internal/application/analytics"
)

// DashboardHandler maneja el resumen del panel de administración.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Resumen godoc
// @Summary      Resumen del panel
// @Description  Totales por entidad, ingresos y gastos, series de los últimos 6 meses,
//
//	productos más vendidos, comentarios recientes y cotizaciones pendientes.
//
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ResumenResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/Resumen [get]
func (h *DashboardHandler) Resumen(c *fiber.Ctx) error {
	out, err := h.uc.Resumen(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
