package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/validation"
	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

var cien = decimal.NewFromInt(100)

// ComponenteUseCase lista de materiales de los productos.
type ComponenteUseCase struct {
	repo         repository.ComponenteProductoRepository
	productoRepo repository.ProductoRepository
	piezaRepo    repository.PiezaRepository
}

// NewComponenteUseCase construye el caso de uso.
func NewComponenteUseCase(repo repository.ComponenteProductoRepository, productoRepo repository.ProductoRepository, piezaRepo repository.PiezaRepository) *ComponenteUseCase {
	return &ComponenteUseCase{repo: repo, productoRepo: productoRepo, piezaRepo: piezaRepo}
}

// Create agrega una pieza al producto. El par (producto, pieza) repetido devuelve ErrDuplicate.
func (uc *ComponenteUseCase) Create(ctx context.Context, in dto.ComponenteRequest) (*dto.ComponenteResponse, error) {
	if err := validation.New().
		ID("productoId", in.ProductoID).
		ID("piezaId", in.PiezaID).
		MinDecimal("cantidadRequerida", in.CantidadRequerida, decimal.NewFromInt(1)).
		Err(); err != nil {
		return nil, err
	}
	producto, err := uc.productoRepo.GetByID(ctx, in.ProductoID)
	if err != nil {
		return nil, err
	}
	pieza, err := uc.piezaRepo.GetByID(ctx, in.PiezaID)
	if err != nil {
		return nil, err
	}
	if producto == nil || pieza == nil {
		return nil, domain.ErrNotFound
	}
	c := &entity.ComponenteProducto{ProductoID: in.ProductoID, PiezaID: in.PiezaID, CantidadRequerida: in.CantidadRequerida}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.ComponenteResponse{
		ProductoID:        c.ProductoID,
		PiezaID:           c.PiezaID,
		CantidadRequerida: c.CantidadRequerida,
		Producto:          dto.FromProducto(producto),
		Pieza:             dto.FromPieza(pieza),
	}, nil
}

// Delete quita la pieza del producto.
func (uc *ComponenteUseCase) Delete(ctx context.Context, productoID, piezaID int64) error {
	return uc.repo.Delete(ctx, productoID, piezaID)
}

// ComponenteSpec búsqueda por nombre de producto y de pieza.
var ComponenteSpec = listquery.Spec[dto.ComponenteResponse]{
	Noun: "componentes",
	Search: func(c dto.ComponenteResponse) []string {
		var out []string
		if c.Producto != nil {
			out = append(out, c.Producto.Nombre)
		}
		if c.Pieza != nil {
			out = append(out, c.Pieza.Nombre)
		}
		return out
	},
	Sort: map[string]listquery.KeyFunc[dto.ComponenteResponse]{
		"cantidadRequerida": func(c dto.ComponenteResponse) any { return c.CantidadRequerida },
		"producto": func(c dto.ComponenteResponse) any {
			if c.Producto == nil {
				return nil
			}
			return c.Producto.Nombre
		},
		"pieza": func(c dto.ComponenteResponse) any {
			if c.Pieza == nil {
				return nil
			}
			return c.Pieza.Nombre
		},
	},
}

// List componentes con producto y pieza resueltos.
func (uc *ComponenteUseCase) List(ctx context.Context, q listquery.Query) (listquery.Page[dto.ComponenteResponse], error) {
	var empty listquery.Page[dto.ComponenteResponse]
	comps, err := uc.repo.List(ctx)
	if err != nil {
		return empty, err
	}
	prods, err := uc.productoRepo.List(ctx)
	if err != nil {
		return empty, err
	}
	piezas, err := uc.piezaRepo.List(ctx)
	if err != nil {
		return empty, err
	}
	prodByID := make(map[int64]*entity.Producto, len(prods))
	for _, p := range prods {
		prodByID[p.ID] = p
	}
	piezaByID := make(map[int64]*entity.Pieza, len(piezas))
	for _, p := range piezas {
		piezaByID[p.ID] = p
	}
	items := make([]dto.ComponenteResponse, 0, len(comps))
	for _, c := range comps {
		items = append(items, dto.ComponenteResponse{
			ProductoID:        c.ProductoID,
			PiezaID:           c.PiezaID,
			CantidadRequerida: c.CantidadRequerida,
			Producto:          dto.FromProducto(prodByID[c.ProductoID]),
			Pieza:             dto.FromPieza(piezaByID[c.PiezaID]),
		})
	}
	return listquery.Apply(items, q, ComponenteSpec), nil
}

// Costo suma cantidadRequerida * costoPromedio de cada pieza y calcula el margen contra el precio sugerido.
func (uc *ComponenteUseCase) Costo(ctx context.Context, productoID int64) (*dto.CostoProductoResponse, error) {
	producto, err := uc.productoRepo.GetByID(ctx, productoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	comps, err := uc.repo.ListByProducto(ctx, productoID)
	if err != nil {
		return nil, err
	}
	out := &dto.CostoProductoResponse{
		ProductoID:     producto.ID,
		Nombre:         producto.Nombre,
		PrecioSugerido: producto.PrecioSugerido,
		Lineas:         make([]dto.CostoLineaResponse, 0, len(comps)),
	}
	total := decimal.Zero
	for _, c := range comps {
		pieza, err := uc.piezaRepo.GetByID(ctx, c.PiezaID)
		if err != nil {
			return nil, err
		}
		if pieza == nil {
			continue
		}
		sub := c.CantidadRequerida.Mul(pieza.CostoPromedio).Round(2)
		total = total.Add(sub)
		out.Lineas = append(out.Lineas, dto.CostoLineaResponse{
			PiezaID:           pieza.ID,
			Nombre:            pieza.Nombre,
			CantidadRequerida: c.CantidadRequerida,
			CostoPromedio:     pieza.CostoPromedio.Round(4),
			Subtotal:          sub,
		})
	}
	out.CostoTotal = total
	out.Margen = producto.PrecioSugerido.Sub(total)
	if producto.PrecioSugerido.IsPositive() {
		out.MargenPct = out.Margen.Div(producto.PrecioSugerido).Mul(cien).Round(2)
	}
	return out, nil
}
