package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/usecase"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
)

// PiezaHandler CRUD de piezas (solo Admin).
type PiezaHandler struct {
	uc *usecase.PiezaUseCase
}

func NewPiezaHandler(uc *usecase.PiezaUseCase) *PiezaHandler {
	return &PiezaHandler{uc: uc}
}

// List godoc
// @Summary      Listar piezas con existencias y costo promedio
// @Tags         pieza
// @Security     Bearer
// @Produce      json
// @Param        search         query  string  false  "Texto a buscar"
// @Param        sortField      query  string  false  "nombre, unidadMedida, existencias, costoPromedio"
// @Param        sortDirection  query  string  false  "asc | desc"
// @Param        page           query  int     false  "Página"
// @Param        pageSize       query  int     false  "Elementos por página"
// @Success      200  {array}  dto.PiezaResponse
// @Router       /api/pieza/ListaPiezas [get]
func (h *PiezaHandler) List(c *fiber.Ctx) error {
	return listHandler(func(c *fiber.Ctx, q listquery.Query) (listquery.Page[dto.PiezaResponse], error) {
		return h.uc.List(c.Context(), q)
	})(c)
}

// Create godoc
// @Summary      Crear pieza
// @Tags         pieza
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PiezaRequest  true  "Datos de la pieza"
// @Success      201   {object}  dto.PiezaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pieza/AgregarPiezas [post]
func (h *PiezaHandler) Create(c *fiber.Ctx) error {
	var in dto.PiezaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Modificar pieza
// @Tags         pieza
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "ID de la pieza"
// @Param        body  body  dto.PiezaRequest  true  "Datos de la pieza"
// @Success      200   {object}  dto.PiezaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pieza/ModificarPieza/{id} [put]
func (h *PiezaHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badID(c, err)
	}
	var in dto.PiezaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pieza
// @Tags         pieza
// @Security     Bearer
// @Param        id   path  int  true  "ID de la pieza"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pieza/EliminarPieza/{id} [delete]
func (h *PiezaHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badID(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
