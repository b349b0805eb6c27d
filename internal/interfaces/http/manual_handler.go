package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/usecase"
)

// ManualHandler manuales enlazados a productos.
type ManualHandler struct {
	uc *usecase.ManualUseCase
}

func NewManualHandler(uc *usecase.ManualUseCase) *ManualHandler {
	return &ManualHandler{uc: uc}
}

// List godoc
// @Summary      Listar manuales
// @Tags         manual
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ManualResponse
// @Router       /api/manual/ListaManuales [get]
func (h *ManualHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByProducto godoc
// @Summary      Manuales de un producto
// @Tags         manual
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {array}  dto.ManualResponse
// @Router       /api/manual/ObtenerManualPorProducto/{id} [get]
func (h *ManualHandler) ListByProducto(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badID(c, err)
	}
	out, err := h.uc.ListByProducto(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Enlazar manual por URL
// @Tags         manual
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ManualRequest  true  "productoId, titulo, urlDocumento"
// @Success      201   {object}  dto.ManualResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/manual/AgregarManual [post]
func (h *ManualHandler) Create(c *fiber.Ctx) error {
	var in dto.ManualRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar manual
// @Tags         manual
// @Security     Bearer
// @Param        id   path  int  true  "ID del manual"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manual/EliminarManual/{id} [delete]
func (h *ManualHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badID(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
