package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/usecase"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
)

// ComponenteHandler lista de materiales de cada producto.
type ComponenteHandler struct {
	uc *usecase.ComponenteUseCase
}

func NewComponenteHandler(uc *usecase.ComponenteUseCase) *ComponenteHandler {
	return &ComponenteHandler{uc: uc}
}

// List godoc
// @Summary      Listar componentes de productos
// @Tags         componentesproducto
// @Security     Bearer
// @Produce      json
// @Param        search         query  string  false  "Producto o pieza"
// @Param        sortField      query  string  false  "producto, pieza, cantidadRequerida"
// @Param        sortDirection  query  string  false  "asc | desc"
// @Param        page           query  int     false  "Página"
// @Param        pageSize       query  int     false  "Elementos por página"
// @Success      200  {array}  dto.ComponenteResponse
// @Router       /api/componentesproducto/ListaComponentesProductos [get]
func (h *ComponenteHandler) List(c *fiber.Ctx) error {
	return listHandler(func(c *fiber.Ctx, q listquery.Query) (listquery.Page[dto.ComponenteResponse], error) {
		return h.uc.List(c.Context(), q)
	})(c)
}

// Create godoc
// @Summary      Agregar pieza a un producto
// @Tags         componentesproducto
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ComponenteRequest  true  "productoId, piezaId, cantidadRequerida"
// @Success      201   {object}  dto.ComponenteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/componentesproducto/AgregarComponentesProducto [post]
func (h *ComponenteHandler) Create(c *fiber.Ctx) error {
	var in dto.ComponenteRequest
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
// @Summary      Quitar pieza de un producto
// @Tags         componentesproducto
// @Security     Bearer
// @Param        productoId  path  int  true  "ID del producto"
// @Param        piezaId     path  int  true  "ID de la pieza"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/componentesproducto/EliminarComponentesProducto/{productoId}/{piezaId} [delete]
func (h *ComponenteHandler) Delete(c *fiber.Ctx) error {
	productoID, err := paramID(c, "productoId")
	if err != nil {
		return badID(c, err)
	}
	piezaID, err := paramID(c, "piezaId")
	if err != nil {
		return badID(c, err)
	}
	if err := h.uc.Delete(c.Context(), productoID, piezaID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Costo godoc
// @Summary      Costo de materiales y margen de un producto
// @Tags         componentesproducto
// @Security     Bearer
// @Produce      json
// @Param        productoId  path  int  true  "ID del producto"
// @Success      200  {object}  dto.CostoProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/componentesproducto/CostoProducto/{productoId} [get]
func (h *ComponenteHandler) Costo(c *fiber.Ctx) error {
	id, err := paramID(c, "productoId")
	if err != nil {
		return badID(c, err)
	}
	out, err := h.uc.Costo(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
