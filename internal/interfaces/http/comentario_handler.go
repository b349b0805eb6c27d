package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/usecase"
)

// ComentarioHandler reseñas de productos comprados y testimonios públicos.
type ComentarioHandler struct {
	uc *usecase.ComentarioUseCase
}

func NewComentarioHandler(uc *usecase.ComentarioUseCase) *ComentarioHandler {
	return &ComentarioHandler{uc: uc}
}

// List godoc
// @Summary      Testimonios
// @Tags         comentarios
// @Produce      json
// @Success      200  {array}  dto.ComentarioResponse
// @Router       /api/comentarios/ListaComentarios [get]
func (h *ComentarioHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByProducto godoc
// @Summary      Reseñas de un producto
// @Tags         comentarios
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {array}  dto.ComentarioResponse
// @Router       /api/comentarios/ObtenerPorProducto/{id} [get]
func (h *ComentarioHandler) ListByProducto(c *fiber.Ctx) error {
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

// Mine godoc
// @Summary      Reseñas del usuario autenticado
// @Tags         comentarios
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ComentarioResponse
// @Router       /api/comentarios/MisComentarios [get]
func (h *ComentarioHandler) Mine(c *fiber.Ctx) error {
	out, err := h.uc.Mine(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar reseña de un producto comprado
// @Tags         comentarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ComentarioRequest  true  "productoId, ventaId, descripcion, calificacion"
// @Success      201   {object}  dto.ComentarioResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/comentarios/AgregarComentario [post]
// @Router       /api/comprascliente/comment [post]
func (h *ComentarioHandler) Create(c *fiber.Ctx) error {
	var in dto.ComentarioRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Modificar reseña propia
// @Tags         comentarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del comentario"
// @Param        body  body  dto.ComentarioRequest  true  "descripcion, calificacion"
// @Success      200   {object}  dto.ComentarioResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/comentarios/ModificarComentario/{id} [put]
func (h *ComentarioHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badID(c, err)
	}
	var in dto.ComentarioRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar reseña (autor o Admin)
// @Tags         comentarios
// @Security     Bearer
// @Param        id   path  int  true  "ID del comentario"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/comentarios/EliminarComentario/{id} [delete]
func (h *ComentarioHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badID(c, err)
	}
	if err := h.uc.Delete(c.Context(), GetUserID(c), IsAdmin(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
