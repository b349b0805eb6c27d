package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
)

// Cabeceras de paginación; el cuerpo de los listados sigue siendo un arreglo JSON.
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderTotalPages = "X-Total-Pages"
	HeaderPage       = "X-Page"
	HeaderPageSize   = "X-Page-Size"
	HeaderPageInfo   = "X-Page-Info"
)

func parseQuery(c *fiber.Ctx) (listquery.Query, error) {
	return listquery.ParseQuery(func(key string) string { return c.Query(key) })
}

// writePage responde con los elementos y deja la paginación en cabeceras.
func writePage[T any](c *fiber.Ctx, p listquery.Page[T]) error {
	c.Set(HeaderTotalCount, strconv.Itoa(p.TotalItems))
	c.Set(HeaderTotalPages, strconv.Itoa(p.TotalPages))
	c.Set(HeaderPage, strconv.Itoa(p.CurrentPage))
	c.Set(HeaderPageSize, strconv.Itoa(p.ItemsPerPage))
	c.Set(HeaderPageInfo, p.Info)
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return c.JSON(items)
}

// listHandler une parseo de la consulta, caso de uso y respuesta paginada.
func listHandler[T any](list func(c *fiber.Ctx, q listquery.Query) (listquery.Page[T], error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := parseQuery(c)
		if err != nil {
			return validationMsg(c, err.Error())
		}
		page, err := list(c, q)
		if err != nil {
			return writeError(c, err)
		}
		return writePage(c, page)
	}
}

// paramID lee un id entero positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" inválido")
	}
	return id, nil
}

func badID(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorBody("INVALID_ID", err))
}
