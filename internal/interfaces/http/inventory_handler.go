package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/inventory"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
)

// InventoryHandler kardex de piezas: vista de costeo y movimientos manuales (solo Admin).
type InventoryHandler struct {
	uc *inventory.MovimientoUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.MovimientoUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de pieza
// @Tags         movimientospieza
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovimientoRequest  true  "piezaId, tipoMovimiento (Entrada|Salida), cantidad, costoUnitario (entradas)"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movimientospieza/AgregarMovimentoPieza [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.MovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Vista de costeo (kardex)
// @Tags         movimientospieza
// @Security     Bearer
// @Produce      json
// @Param        search         query  string  false  "Pieza o tipo de movimiento"
// @Param        sortField      query  string  false  "fecha, pieza, cantidad, costoPromedio, saldoValor"
// @Param        sortDirection  query  string  false  "asc | desc"
// @Param        fechaDesde     query  string  false  "AAAA-MM-DD"
// @Param        fechaHasta     query  string  false  "AAAA-MM-DD"
// @Param        page           query  int     false  "Página"
// @Param        pageSize       query  int     false  "Elementos por página"
// @Success      200  {array}  dto.MovimientoResponse
// @Router       /api/movimientospieza/ListaMovimientosPieza [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	return listHandler(func(c *fiber.Ctx, q listquery.Query) (listquery.Page[dto.MovimientoResponse], error) {
		return h.uc.List(c.Context(), q)
	})(c)
}
