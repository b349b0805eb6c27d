package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/orders"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
)

// OrdersHandler alta y consulta de compras a proveedores y ventas a clientes.
type OrdersHandler struct {
	compras *orders.CompraUseCase
	ventas  *orders.VentaUseCase
}

func NewOrdersHandler(compras *orders.CompraUseCase, ventas *orders.VentaUseCase) *OrdersHandler {
	return &OrdersHandler{compras: compras, ventas: ventas}
}

// CreateCompra godoc
// @Summary      Registrar compra (genera entradas en el kardex)
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompraRequest  true  "proveedorId y detalles"
// @Success      201   {object}  dto.CompraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/compras/AgregarCompra [post]
func (h *OrdersHandler) CreateCompra(c *fiber.Ctx) error {
	var in dto.CompraRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.compras.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCompras godoc
// @Summary      Listar compras
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        search         query  string  false  "Proveedor, pieza o presentación"
// @Param        sortField      query  string  false  "fecha, total, proveedor"
// @Param        sortDirection  query  string  false  "asc | desc"
// @Param        fechaDesde     query  string  false  "AAAA-MM-DD"
// @Param        fechaHasta     query  string  false  "AAAA-MM-DD"
// @Param        page           query  int     false  "Página"
// @Param        pageSize       query  int     false  "Elementos por página"
// @Success      200  {array}  dto.CompraResponse
// @Router       /api/compras/ListaCompras [get]
func (h *OrdersHandler) ListCompras(c *fiber.Ctx) error {
	return listHandler(func(c *fiber.Ctx, q listquery.Query) (listquery.Page[dto.CompraResponse], error) {
		return h.compras.List(c.Context(), q)
	})(c)
}

// CreateVenta godoc
// @Summary      Registrar venta (descuenta piezas de los componentes)
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VentaRequest  true  "usuarioId y detalles"
// @Success      201   {object}  dto.VentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas/AgregarVenta [post]
func (h *OrdersHandler) CreateVenta(c *fiber.Ctx) error {
	var in dto.VentaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ventas.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListVentas godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        search         query  string  false  "Producto, estado o cliente"
// @Param        sortField      query  string  false  "fecha, total, estado"
// @Param        sortDirection  query  string  false  "asc | desc"
// @Param        fechaDesde     query  string  false  "AAAA-MM-DD"
// @Param        fechaHasta     query  string  false  "AAAA-MM-DD"
// @Param        page           query  int     false  "Página"
// @Param        pageSize       query  int     false  "Elementos por página"
// @Success      200  {array}  dto.VentaResponse
// @Router       /api/ventas/ListaVentas [get]
func (h *OrdersHandler) ListVentas(c *fiber.Ctx) error {
	return listHandler(func(c *fiber.Ctx, q listquery.Query) (listquery.Page[dto.VentaResponse], error) {
		return h.ventas.List(c.Context(), q)
	})(c)
}
