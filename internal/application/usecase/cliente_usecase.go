package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

// ClienteUseCase vistas del portal del cliente: sus compras y los manuales de lo que compró.
type ClienteUseCase struct {
	ventaRepo    repository.VentaRepository
	productoRepo repository.ProductoRepository
	manualRepo   repository.ManualRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(ventaRepo repository.VentaRepository, productoRepo repository.ProductoRepository, manualRepo repository.ManualRepository) *ClienteUseCase {
	return &ClienteUseCase{ventaRepo: ventaRepo, productoRepo: productoRepo, manualRepo: manualRepo}
}

// CompraClienteSpec búsqueda por producto, total y fecha dd/mm/aaaa.
var CompraClienteSpec = listquery.Spec[dto.CompraClienteResponse]{
	Noun: "compras",
	Search: func(c dto.CompraClienteResponse) []string {
		out := []string{c.Total.StringFixed(2), c.Fecha.Format("02/01/2006"), c.Estado}
		for _, p := range c.Productos {
			out = append(out, p.Nombre)
		}
		return out
	},
	Sort: map[string]listquery.KeyFunc[dto.CompraClienteResponse]{
		"ventaId": func(c dto.CompraClienteResponse) any { return c.VentaID },
		"fecha":   func(c dto.CompraClienteResponse) any { return c.Fecha },
		"total":   func(c dto.CompraClienteResponse) any { return c.Total },
		"estado":  func(c dto.CompraClienteResponse) any { return c.Estado },
	},
	Date: func(c dto.CompraClienteResponse) time.Time { return c.Fecha },
}

// Compras ventas del usuario con sus productos.
func (uc *ClienteUseCase) Compras(ctx context.Context, userID string, q listquery.Query) (listquery.Page[dto.CompraClienteResponse], error) {
	var empty listquery.Page[dto.CompraClienteResponse]
	ventas, err := uc.ventaRepo.ListByUsuario(ctx, userID)
	if err != nil {
		return empty, err
	}
	prods, err := uc.productosByID(ctx)
	if err != nil {
		return empty, err
	}
	items := make([]dto.CompraClienteResponse, 0, len(ventas))
	for _, v := range ventas {
		item := dto.CompraClienteResponse{
			VentaID:   v.ID,
			Fecha:     v.Fecha,
			Total:     v.Total,
			Estado:    v.Estado,
			Productos: make([]dto.ProductoCompraCliente, 0, len(v.Detalles)),
		}
		for _, d := range v.Detalles {
			pc := dto.ProductoCompraCliente{
				ProductoID:     d.ProductoID,
				Cantidad:       d.Cantidad,
				PrecioUnitario: d.PrecioUnitario,
				Subtotal:       d.Subtotal,
			}
			if p := prods[d.ProductoID]; p != nil {
				pc.Nombre = p.Nombre
				pc.Imagen = p.Imagen
			}
			item.Productos = append(item.Productos, pc)
		}
		items = append(items, item)
	}
	return listquery.Apply(items, q, CompraClienteSpec), nil
}

// Manuales manuales de los productos comprados, agrupados por producto.
func (uc *ClienteUseCase) Manuales(ctx context.Context, userID string) ([]dto.ManualesProductoResponse, error) {
	ventas, err := uc.ventaRepo.ListByUsuario(ctx, userID)
	if err != nil {
		return nil, err
	}
	comprados := map[int64]struct{}{}
	for _, v := range ventas {
		if v.Estado == entity.VentaCancelada {
			continue
		}
		for _, d := range v.Detalles {
			comprados[d.ProductoID] = struct{}{}
		}
	}
	ids := make([]int64, 0, len(comprados))
	for id := range comprados {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]dto.ManualesProductoResponse, 0, len(ids))
	for _, id := range ids {
		p, err := uc.productoRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		mans, err := uc.manualRepo.ListByProducto(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.ManualesProductoResponse{
			ProductoID:     p.ID,
			NombreProducto: p.Nombre,
			Imagen:         p.Imagen,
			Manuales:       toManuales(mans),
		})
	}
	return out, nil
}

func (uc *ClienteUseCase) productosByID(ctx context.Context) (map[int64]*entity.Producto, error) {
	list, err := uc.productoRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]*entity.Producto, len(list))
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}
