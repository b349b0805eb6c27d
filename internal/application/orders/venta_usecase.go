package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/inventory"
	"github.com/pecuadex/pecuadex-api/internal/application/validation"
	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
	"github.com/pecuadex/pecuadex-api/pkg/logger"
)

// VentaUseCase crea ventas y descuenta las piezas de cada producto en una sola transacción.
type VentaUseCase struct {
	txRunner       inventory.TxRunner
	userRepo       repository.UserRepository
	productoRepo   repository.ProductoRepository
	componenteRepo repository.ComponenteProductoRepository
	ventaRepo      repository.VentaRepository
	log            *logger.Logger
	now            func() time.Time
}

// NewVentaUseCase construye el caso de uso.
func NewVentaUseCase(
	txRunner inventory.TxRunner,
	userRepo repository.UserRepository,
	productoRepo repository.ProductoRepository,
	componenteRepo repository.ComponenteProductoRepository,
	ventaRepo repository.VentaRepository,
	log *logger.Logger,
) *VentaUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &VentaUseCase{
		txRunner:       txRunner,
		userRepo:       userRepo,
		productoRepo:   productoRepo,
		componenteRepo: componenteRepo,
		ventaRepo:      ventaRepo,
		log:            log.Component("ventas"),
		now:            time.Now,
	}
}

// Create valida, toma el precio sugerido vigente de cada producto y registra una Salida por
// componente (cantidadRequerida * cantidad). Si alguna pieza no alcanza se devuelve
// ErrInsufficientStock y no se persiste nada.
func (uc *VentaUseCase) Create(ctx context.Context, in dto.VentaRequest) (*dto.VentaResponse, error) {
	v := validation.New().Required("usuarioId", in.UsuarioID)
	if len(in.Detalles) == 0 {
		v.Fail("detalles", "la venta debe tener al menos un detalle")
	}
	for i, d := range in.Detalles {
		p := fmt.Sprintf("detalles[%d].", i)
		v.ID(p+"productoId", d.ProductoID).MinDecimal(p+"cantidad", d.Cantidad, uno)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	usuario, err := uc.userRepo.GetByID(ctx, in.UsuarioID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUserNotFound
	}

	// Validar productos y precios (fuera de la tx, solo lectura)
	productos := make(map[int64]*entity.Producto, len(in.Detalles))
	componentes := make(map[int64][]*entity.ComponenteProducto, len(in.Detalles))
	for _, d := range in.Detalles {
		if _, ok := productos[d.ProductoID]; ok {
			continue
		}
		p, err := uc.productoRepo.GetByID(ctx, d.ProductoID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		productos[d.ProductoID] = p
		cs, err := uc.componenteRepo.ListByProducto(ctx, d.ProductoID)
		if err != nil {
			return nil, err
		}
		componentes[d.ProductoID] = cs
	}

	fecha := uc.now()
	if in.Fecha != nil {
		fecha = *in.Fecha
	}
	venta := &entity.Venta{UsuarioID: usuario.ID, Fecha: fecha, Estado: entity.VentaCompletada}
	for _, d := range in.Detalles {
		precio := productos[d.ProductoID].PrecioSugerido
		sub := precio.Mul(d.Cantidad)
		venta.Detalles = append(venta.Detalles, entity.DetalleVenta{
			ProductoID:     d.ProductoID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: precio,
			Subtotal:       sub,
		})
		venta.Total = venta.Total.Add(sub)
	}

	var piezaIDs []int64
	for _, d := range venta.Detalles {
		for _, c := range componentes[d.ProductoID] {
			piezaIDs = append(piezaIDs, c.PiezaID)
		}
	}

	err = uc.txRunner.Run(ctx, func(movRepo repository.MovimientoPiezaRepository, _ repository.CompraRepository, ventaRepo repository.VentaRepository) error {
		if err := inventory.LockPiezas(ctx, movRepo, piezaIDs); err != nil {
			return err
		}
		// Cabecera y detalles primero: las salidas llevan el id de la venta
		if err := ventaRepo.Create(ctx, venta); err != nil {
			return err
		}
		ref := fmt.Sprintf("venta:%d", venta.ID)
		// Una Salida por componente; sin existencias -> rollback
		for _, d := range venta.Detalles {
			for _, c := range componentes[d.ProductoID] {
				qty := c.CantidadRequerida.Mul(d.Cantidad)
				if _, err := inventory.RegisterSalidaInTx(ctx, movRepo, c.PiezaID, qty, fecha, ref); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("venta_id", venta.ID).Str("usuario_id", usuario.ID).Str("total", venta.Total.String()).Msg("venta registrada")

	out := toVentaResponse(venta, usuario, productos)
	return &out, nil
}

func toVentaResponse(v *entity.Venta, u *entity.User, productos map[int64]*entity.Producto) dto.VentaResponse {
	out := dto.VentaResponse{
		ID:        v.ID,
		Fecha:     v.Fecha,
		Total:     v.Total,
		Estado:    v.Estado,
		UsuarioID: v.UsuarioID,
		Usuario:   dto.FromUsuario(u),
		Detalles:  make([]dto.DetalleVentaResponse, 0, len(v.Detalles)),
	}
	for _, d := range v.Detalles {
		out.Detalles = append(out.Detalles, dto.DetalleVentaResponse{
			ID:             d.ID,
			VentaID:        v.ID,
			ProductoID:     d.ProductoID,
			Producto:       dto.FromProducto(productos[d.ProductoID]),
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	return out
}

// VentaSpec búsqueda por productos, estado y cliente; rango por fecha.
var VentaSpec = listquery.Spec[dto.VentaResponse]{
	Noun: "ventas",
	Search: func(v dto.VentaResponse) []string {
		out := []string{v.Estado}
		if v.Usuario != nil {
			out = append(out, v.Usuario.FullName, v.Usuario.Email)
		}
		for _, d := range v.Detalles {
			if d.Producto != nil {
				out = append(out, d.Producto.Nombre)
			}
		}
		return out
	},
	Sort: map[string]listquery.KeyFunc[dto.VentaResponse]{
		"id":     func(v dto.VentaResponse) any { return v.ID },
		"fecha":  func(v dto.VentaResponse) any { return v.Fecha },
		"total":  func(v dto.VentaResponse) any { return v.Total },
		"estado": func(v dto.VentaResponse) any { return v.Estado },
		"usuario": func(v dto.VentaResponse) any {
			if v.Usuario == nil {
				return nil
			}
			return v.Usuario.FullName
		},
	},
	Date: func(v dto.VentaResponse) time.Time { return v.Fecha },
}

// List ventas con usuario y productos resueltos.
func (uc *VentaUseCase) List(ctx context.Context, q listquery.Query) (listquery.Page[dto.VentaResponse], error) {
	var empty listquery.Page[dto.VentaResponse]
	ventas, err := uc.ventaRepo.List(ctx)
	if err != nil {
		return empty, err
	}
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return empty, err
	}
	prods, err := uc.productoRepo.List(ctx)
	if err != nil {
		return empty, err
	}
	userByID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}
	productos := make(map[int64]*entity.Producto, len(prods))
	for _, p := range prods {
		productos[p.ID] = p
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		items = append(items, toVentaResponse(v, userByID[v.UsuarioID], productos))
	}
	return listquery.Apply(items, q, VentaSpec), nil
}
