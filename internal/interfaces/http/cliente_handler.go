package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/usecase"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
)

// ClienteHandler portal del cliente: sus compras y los manuales de lo que compró.
type ClienteHandler struct {
	uc *usecase.ClienteUseCase
}

func NewClienteHandler(uc *usecase.ClienteUseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc}
}

// Compras godoc
// @Summary      Compras del cliente autenticado
// @Tags         comprascliente
// @Security     Bearer
// @Produce      json
// @Param        search         query  string  false  "Producto, total o fecha dd/mm/aaaa"
// @Param        sortField      query  string  false  "fecha, total, estado"
// @Param        sortDirection  query  string  false  "asc | desc"
// @Param        page           query  int     false  "Página"
// @Param        pageSize       query  int     false  "Elementos por página"
// @Success      200  {array}  dto.CompraClienteResponse
// @Router       /api/comprascliente/ListaComprasCliente [get]
func (h *ClienteHandler) Compras(c *fiber.Ctx) error {
	return listHandler(func(c *fiber.Ctx, q listquery.Query) (listquery.Page[dto.CompraClienteResponse], error) {
		return h.uc.Compras(c.Context(), GetUserID(c), q)
	})(c)
}

// Manuales godoc
// @Summary      Manuales de los productos comprados
// @Tags         comprascliente
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ManualesProductoResponse
// @Router       /api/comprascliente/ClienteManualProductos [get]
func (h *ClienteHandler) Manuales(c *fiber.Ctx) error {
	out, err := h.uc.Manuales(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
