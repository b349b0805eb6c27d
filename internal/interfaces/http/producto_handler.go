package http

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/usecase"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
)

// ProductoHandler CRUD de productos; las variantes ConManual reciben multipart con el PDF del manual.
type ProductoHandler struct {
	uc *usecase.ProductoUseCase
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *usecase.ProductoUseCase) *ProductoHandler {
	return &ProductoHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos
// @Tags         producto
// @Produce      json
// @Param        search         query  string  false  "Texto a buscar"
// @Param        sortField      query  string  false  "nombre, precioSugerido, fechaRegistro"
// @Param        sortDirection  query  string  false  "asc | desc"
// @Param        page           query  int     false  "Página"
// @Param        pageSize       query  int     false  "Elementos por página"
// @Success      200  {array}  dto.ProductoResponse
// @Router       /api/producto/ListaProductos [get]
func (h *ProductoHandler) List(c *fiber.Ctx) error {
	return listHandler(func(c *fiber.Ctx, q listquery.Query) (listquery.Page[dto.ProductoResponse], error) {
		return h.uc.List(c.Context(), q)
	})(c)
}

// Get godoc
// @Summary      Obtener producto con componentes, comentarios y manuales
// @Tags         producto
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/producto/ObtenerProducto/{id} [get]
func (h *ProductoHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badID(c, err)
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         producto
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductoRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/producto/AgregarProducto [post]
func (h *ProductoHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductoRequest
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
// @Summary      Modificar producto
// @Tags         producto
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID del producto"
// @Param        body  body  dto.ProductoRequest  true  "Datos del producto"
// @Success      200   {object}  dto.ProductoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/producto/ModificarProducto/{id} [put]
func (h *ProductoHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badID(c, err)
	}
	var in dto.ProductoRequest
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
// @Summary      Eliminar producto (y sus manuales)
// @Tags         producto
// @Security     Bearer
// @Param        id   path  int  true  "ID del producto"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/producto/EliminarProducto/{id} [delete]
func (h *ProductoHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badID(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateConManual godoc
// @Summary      Crear producto con manual PDF
// @Tags         producto
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        nombre          formData  string  true   "Nombre"
// @Param        descripcion     formData  string  true   "Descripción"
// @Param        precioSugerido  formData  number  true   "Precio sugerido"
// @Param        imagen          formData  string  true   "URL de la imagen"
// @Param        tituloManual    formData  string  false  "Título del manual"
// @Param        archivoManual   formData  file    false  "Manual en PDF"
// @Success      201  {object}  dto.ProductoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/producto/AgregarProductoConManual [post]
func (h *ProductoHandler) CreateConManual(c *fiber.Ctx) error {
	in, up, err := productoForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody("INVALID_BODY", err))
	}
	defer closeUpload(up)
	out, err := h.uc.CreateConManual(c.Context(), in, up)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateConManual godoc
// @Summary      Modificar producto y reemplazar su manual
// @Tags         producto
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id              path      int     true   "ID del producto"
// @Param        nombre          formData  string  true   "Nombre"
// @Param        descripcion     formData  string  true   "Descripción"
// @Param        precioSugerido  formData  number  true   "Precio sugerido"
// @Param        imagen          formData  string  true   "URL de la imagen"
// @Param        tituloManual    formData  string  false  "Título del manual"
// @Param        archivoManual   formData  file    false  "Manual en PDF"
// @Success      200  {object}  dto.ProductoResponse
// @Router       /api/producto/ModificarProductoConManual/{id} [put]
func (h *ProductoHandler) UpdateConManual(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badID(c, err)
	}
	in, up, err := productoForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody("INVALID_BODY", err))
	}
	defer closeUpload(up)
	out, err := h.uc.UpdateConManual(c.Context(), id, in, up)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// productoForm lee los campos del formulario. Acepta también JSON sin archivo.
// El llamador debe cerrar el upload con closeUpload.
func productoForm(c *fiber.Ctx) (dto.ProductoRequest, *dto.ManualUpload, error) {
	var in dto.ProductoRequest
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&in); err != nil {
			return in, nil, fiber.NewError(fiber.StatusBadRequest, "cuerpo inválido")
		}
		return in, nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return in, nil, fiber.NewError(fiber.StatusBadRequest, "formulario multipart inválido")
	}
	in.Nombre = c.FormValue("nombre")
	in.Descripcion = c.FormValue("descripcion")
	in.Imagen = c.FormValue("imagen")
	if v := strings.TrimSpace(c.FormValue("precioSugerido")); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return in, nil, fiber.NewError(fiber.StatusBadRequest, "precioSugerido debe ser numérico")
		}
		in.PrecioSugerido = d
	}

	files := form.File["archivoManual"]
	if len(files) == 0 {
		return in, nil, nil
	}
	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return in, nil, fiber.NewError(fiber.StatusBadRequest, "no se pudo leer archivoManual")
	}
	return in, &dto.ManualUpload{
		Titulo:      c.FormValue("tituloManual"),
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Content:     f,
	}, nil
}

func closeUpload(up *dto.ManualUpload) {
	if up == nil {
		return
	}
	if cl, ok := up.Content.(io.Closer); ok {
		_ = cl.Close()
	}
}
