// Package orders compras a proveedores y ventas a clientes. Ambas escriben el kardex dentro de la misma transacción.
package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/inventory"
	"github.com/pecuadex/pecuadex-api/internal/application/validation"
	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

var uno = decimal.NewFromInt(1)

// CompraUseCase alta y consulta de compras.
type CompraUseCase struct {
	txRunner      inventory.TxRunner
	proveedorRepo repository.ProveedorRepository
	piezaRepo     repository.PiezaRepository
	compraRepo    repository.CompraRepository
	movRepo       repository.MovimientoPiezaRepository
	now           func() time.Time
}

// NewCompraUseCase construye el caso de uso.
func NewCompraUseCase(
	txRunner inventory.TxRunner,
	proveedorRepo repository.ProveedorRepository,
	piezaRepo repository.PiezaRepository,
	compraRepo repository.CompraRepository,
	movRepo repository.MovimientoPiezaRepository,
) *CompraUseCase {
	return &CompraUseCase{
		txRunner:      txRunner,
		proveedorRepo: proveedorRepo,
		piezaRepo:     piezaRepo,
		compraRepo:    compraRepo,
		movRepo:       movRepo,
		now:           time.Now,
	}
}

// Create registra la compra y una Entrada por detalle (costo unitario = precioTotal / cantidad), todo en una transacción.
func (uc *CompraUseCase) Create(ctx context.Context, in dto.CompraRequest) (*dto.CompraResponse, error) {
	v := validation.New().ID("proveedorId", in.ProveedorID)
	if len(in.Detalles) == 0 {
		v.Fail("detalles", "la compra debe tener al menos un detalle")
	}
	for i, d := range in.Detalles {
		p := fmt.Sprintf("detalles[%d].", i)
		v.ID(p+"piezaId", d.PiezaID).
			Required(p+"presentacion", d.Presentacion).
			MinDecimal(p+"cantidad", d.Cantidad, uno).
			Positive(p+"precioTotal", d.PrecioTotal)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	proveedor, err := uc.proveedorRepo.GetByID(ctx, in.ProveedorID)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrNotFound
	}
	piezas := make(map[int64]*entity.Pieza, len(in.Detalles))
	for _, d := range in.Detalles {
		if _, ok := piezas[d.PiezaID]; ok {
			continue
		}
		p, err := uc.piezaRepo.GetByID(ctx, d.PiezaID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		piezas[d.PiezaID] = p
	}

	fecha := uc.now()
	if in.Fecha != nil {
		fecha = *in.Fecha
	}
	compra := &entity.Compra{ProveedorID: in.ProveedorID, Fecha: fecha}
	movs := make([]*entity.MovimientoPieza, len(in.Detalles))

	piezaIDs := make([]int64, 0, len(in.Detalles))
	for _, d := range in.Detalles {
		piezaIDs = append(piezaIDs, d.PiezaID)
	}

	err = uc.txRunner.Run(ctx, func(movRepo repository.MovimientoPiezaRepository, compraRepo repository.CompraRepository, _ repository.VentaRepository) error {
		if err := inventory.LockPiezas(ctx, movRepo, piezaIDs); err != nil {
			return err
		}
		compra.Detalles = make([]entity.DetalleCompra, 0, len(in.Detalles))
		movIDs := make([]int64, 0, len(in.Detalles))
		for i, d := range in.Detalles {
			costo := d.PrecioTotal.Div(d.Cantidad)
			mov, err := inventory.RegisterEntradaInTx(ctx, movRepo, d.PiezaID, d.Cantidad, costo, fecha, "compra")
			if err != nil {
				return err
			}
			movs[i] = mov
			movIDs = append(movIDs, mov.ID)
			compra.Detalles = append(compra.Detalles, entity.DetalleCompra{
				MovimientosPiezaID: mov.ID,
				PiezaID:            d.PiezaID,
				Presentacion:       strings.TrimSpace(d.Presentacion),
				Cantidad:           d.Cantidad,
				PrecioTotal:        d.PrecioTotal,
			})
		}
		if err := compraRepo.Create(ctx, compra); err != nil {
			return err
		}
		// El id de la compra solo existe tras insertarla
		ref := fmt.Sprintf("compra:%d", compra.ID)
		if err := movRepo.SetReferencia(ctx, movIDs, ref); err != nil {
			return err
		}
		for _, m := range movs {
			m.Referencia = ref
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	movByID := make(map[int64]*entity.MovimientoPieza, len(movs))
	for _, m := range movs {
		movByID[m.ID] = m
	}
	out := toCompraResponse(compra, proveedor, piezas, movByID)
	return &out, nil
}

func toCompraResponse(c *entity.Compra, prov *entity.Proveedor, piezas map[int64]*entity.Pieza, movs map[int64]*entity.MovimientoPieza) dto.CompraResponse {
	out := dto.CompraResponse{
		ID:          c.ID,
		ProveedorID: c.ProveedorID,
		Proveedor:   dto.FromProveedor(prov),
		Fecha:       c.Fecha,
		Total:       c.Total(),
		Detalles:    make([]dto.DetalleCompraResponse, 0, len(c.Detalles)),
	}
	for _, d := range c.Detalles {
		det := dto.DetalleCompraResponse{
			ID:                 d.ID,
			CompraID:           c.ID,
			MovimientosPiezaID: d.MovimientosPiezaID,
			PiezaID:            d.PiezaID,
			Presentacion:       d.Presentacion,
			Cantidad:           d.Cantidad,
			PrecioTotal:        d.PrecioTotal,
		}
		ref := &dto.MovimientoRefResponse{Pieza: dto.FromPieza(piezas[d.PiezaID])}
		if m, ok := movs[d.MovimientosPiezaID]; ok {
			ref.CostoUnitario = m.CostoUnitario
			ref.Referencia = m.Referencia
		} else if d.Cantidad.IsPositive() {
			ref.CostoUnitario = d.PrecioTotal.Div(d.Cantidad)
		}
		det.MovimientosPieza = ref
		out.Detalles = append(out.Detalles, det)
	}
	return out
}

// CompraSpec búsqueda por proveedor, piezas y presentación; rango por fecha.
var CompraSpec = listquery.Spec[dto.CompraResponse]{
	Noun: "compras",
	Search: func(c dto.CompraResponse) []string {
		out := make([]string, 0, 1+2*len(c.Detalles))
		if c.Proveedor != nil {
			out = append(out, c.Proveedor.NombreEmpresa)
		}
		for _, d := range c.Detalles {
			out = append(out, d.Presentacion)
			if d.MovimientosPieza != nil && d.MovimientosPieza.Pieza != nil {
				out = append(out, d.MovimientosPieza.Pieza.Nombre)
			}
		}
		return out
	},
	Sort: map[string]listquery.KeyFunc[dto.CompraResponse]{
		"id":    func(c dto.CompraResponse) any { return c.ID },
		"fecha": func(c dto.CompraResponse) any { return c.Fecha },
		"total": func(c dto.CompraResponse) any { return c.Total },
		"proveedor": func(c dto.CompraResponse) any {
			if c.Proveedor == nil {
				return nil
			}
			return c.Proveedor.NombreEmpresa
		},
	},
	Date: func(c dto.CompraResponse) time.Time { return c.Fecha },
}

// List compras con proveedor, piezas y costo unitario resueltos.
func (uc *CompraUseCase) List(ctx context.Context, q listquery.Query) (listquery.Page[dto.CompraResponse], error) {
	var empty listquery.Page[dto.CompraResponse]
	compras, err := uc.compraRepo.List(ctx)
	if err != nil {
		return empty, err
	}
	provs, err := uc.proveedorRepo.List(ctx)
	if err != nil {
		return empty, err
	}
	piezaList, err := uc.piezaRepo.List(ctx)
	if err != nil {
		return empty, err
	}
	movList, err := uc.movRepo.List(ctx)
	if err != nil {
		return empty, err
	}
	provByID := make(map[int64]*entity.Proveedor, len(provs))
	for _, p := range provs {
		provByID[p.ID] = p
	}
	piezas := make(map[int64]*entity.Pieza, len(piezaList))
	for _, p := range piezaList {
		piezas[p.ID] = p
	}
	movs := make(map[int64]*entity.MovimientoPieza, len(movList))
	for _, m := range movList {
		movs[m.ID] = m
	}
	items := make([]dto.CompraResponse, 0, len(compras))
	for _, c := range compras {
		items = append(items, toCompraResponse(c, provByID[c.ProveedorID], piezas, movs))
	}
	return listquery.Apply(items, q, CompraSpec), nil
}
