package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/usecase"
)

// CotizacionHandler solicitudes de cotización (públicas) y su gestión (Admin).
type CotizacionHandler struct {
	uc *usecase.CotizacionUseCase
}

func NewCotizacionHandler(uc *usecase.CotizacionUseCase) *CotizacionHandler {
	return &CotizacionHandler{uc: uc}
}

// Solicitar godoc
// @Summary      Solicitar cotización
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CotizacionRequest  true  "Datos del cliente y de la operación"
// @Success      200   {object}  dto.SolicitarCotizacionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/SolicitarCotizacion [post]
func (h *CotizacionHandler) Solicitar(c *fiber.Ctx) error {
	var in dto.CotizacionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Solicitar(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Estimar godoc
// @Summary      Estimar precio sin registrar la solicitud
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EstimarPrecioRequest  true  "cantidadDispositivos, funcionalidadesRequeridas"
// @Success      200   {object}  dto.EstimarPrecioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/EstimarPrecio [post]
func (h *CotizacionHandler) Estimar(c *fiber.Ctx) error {
	var in dto.EstimarPrecioRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Estimar(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cotizaciones
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      json
// @Param        search         query  string  false  "Cliente, email, empresa, ganado o estado"
// @Param        sortField      query  string  false  "fecha, nombreCliente, precioEstimado, estado"
// @Param        sortDirection  query  string  false  "asc | desc"
// @Param        fechaDesde     query  string  false  "AAAA-MM-DD"
// @Param        fechaHasta     query  string  false  "AAAA-MM-DD"
// @Param        page           query  int     false  "Página"
// @Param        pageSize       query  int     false  "Elementos por página"
// @Success      200  {object}  dto.CotizacionListResponse
// @Router       /api/cotizaciones/ListarCotizaciones [get]
func (h *CotizacionHandler) List(c *fiber.Ctx) error {
	q, err := parseQuery(c)
	if err != nil {
		return validationMsg(c, err.Error())
	}
	page, err := h.uc.List(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	items := page.Items
	if items == nil {
		items = []dto.CotizacionResponse{}
	}
	return c.JSON(dto.CotizacionListResponse{TotalItems: page.TotalItems, Items: items})
}

// CambiarEstado godoc
// @Summary      Cambiar estado de una cotización
// @Tags         cotizaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID de la cotización"
// @Param        body  body  dto.CambiarEstadoRequest  true  "Pendiente | Contactado | Aprobada | Rechazada"
// @Success      200   {object}  dto.CotizacionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/CambiarEstado/{id} [put]
func (h *CotizacionHandler) CambiarEstado(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badID(c, err)
	}
	var in dto.CambiarEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CambiarEstado(c.Context(), id, in.Estado)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar cotización en PDF
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la cotización"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id}/pdf [get]
func (h *CotizacionHandler) PDF(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badID(c, err)
	}
	pdf, err := h.uc.PDF(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="cotizacion-%d.pdf"`, id))
	return c.Send(pdf)
}
