// Package analytics contiene el resumen del panel de administración.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

const (
	dashboardTop   = 5 // productos, comentarios y cotizaciones por widget
	dashboardMeses = 6
	mesLayout      = "2006-01"
)

// Repos lecturas que necesita el resumen.
type Repos struct {
	Productos    repository.ProductoRepository
	Ventas       repository.VentaRepository
	Compras      repository.CompraRepository
	Proveedores  repository.ProveedorRepository
	Piezas       repository.PiezaRepository
	Comentarios  repository.ComentarioRepository
	Users        repository.UserRepository
	Cotizaciones repository.CotizacionRepository
}

// DashboardUseCase genera el resumen de negocio del panel.
//
// Fuente de datos: los repositorios de cada entidad (solo lectura).
type DashboardUseCase struct {
	repos Repos
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos Repos) *DashboardUseCase {
	return &DashboardUseCase{repos: repos, now: time.Now}
}

// Resumen construye el ResumenResponse. Las lecturas se hacen en paralelo.
func (uc *DashboardUseCase) Resumen(ctx context.Context) (*dto.ResumenResponse, error) {
	var (
		productos    []*entity.Producto
		ventas       []*entity.Venta
		compras      []*entity.Compra
		proveedores  []*entity.Proveedor
		piezas       []*entity.Pieza
		comentarios  []*entity.Comentario
		usuarios     []*entity.User
		cotizaciones []*entity.Cotizacion
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		productos, err = uc.repos.Productos.List(gctx)
		return wrap("productos", err)
	})
	g.Go(func() (err error) {
		ventas, err = uc.repos.Ventas.List(gctx)
		return wrap("ventas", err)
	})
	g.Go(func() (err error) {
		compras, err = uc.repos.Compras.List(gctx)
		return wrap("compras", err)
	})
	g.Go(func() (err error) {
		proveedores, err = uc.repos.Proveedores.List(gctx)
		return wrap("proveedores", err)
	})
	g.Go(func() (err error) {
		piezas, err = uc.repos.Piezas.List(gctx)
		return wrap("piezas", err)
	})
	g.Go(func() (err error) {
		comentarios, err = uc.repos.Comentarios.List(gctx)
		return wrap("comentarios", err)
	})
	g.Go(func() (err error) {
		usuarios, err = uc.repos.Users.List(gctx)
		return wrap("usuarios", err)
	})
	g.Go(func() (err error) {
		cotizaciones, err = uc.repos.Cotizaciones.List(gctx)
		return wrap("cotizaciones", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := uc.now()
	out := &dto.ResumenResponse{
		Totales: dto.TotalesDTO{
			Productos:    len(productos),
			Ventas:       len(ventas),
			Compras:      len(compras),
			Proveedores:  len(proveedores),
			Piezas:       len(piezas),
			Comentarios:  len(comentarios),
			Usuarios:     len(usuarios),
			Cotizaciones: len(cotizaciones),
		},
		GeneradoEn: now,
	}

	// ── Ingresos y gastos ──────────────────────────────────────────────────────
	meses := ultimosMeses(now, dashboardMeses)
	ventasMes := make(map[string]decimal.Decimal, len(meses))
	comprasMes := make(map[string]decimal.Decimal, len(meses))
	ingresos, gastos := decimal.Zero, decimal.Zero
	hoy := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, v := range ventas {
		if v.Estado == entity.VentaCancelada {
			continue
		}
		ingresos = ingresos.Add(v.Total)
		mes := v.Fecha.In(now.Location()).Format(mesLayout)
		ventasMes[mes] = ventasMes[mes].Add(v.Total)
		if !v.Fecha.Before(hoy) && v.Fecha.Before(hoy.AddDate(0, 0, 1)) {
			out.VentasHoy++
		}
	}
	for _, c := range compras {
		total := c.Total()
		gastos = gastos.Add(total)
		mes := c.Fecha.In(now.Location()).Format(mesLayout)
		comprasMes[mes] = comprasMes[mes].Add(total)
	}
	out.IngresosTotales = ingresos.Round(2)
	out.GastosTotales = gastos.Round(2)
	out.Utilidad = ingresos.Sub(gastos).Round(2)
	if ingresos.IsPositive() {
		out.MargenUtilidad = ingresos.Sub(gastos).Div(ingresos).Mul(decimal.NewFromInt(100)).Round(2)
	}
	out.VentasPorMes = serieMensual(meses, ventasMes)
	out.ComprasPorMes = serieMensual(meses, comprasMes)

	// ── Widgets ────────────────────────────────────────────────────────────────
	prodByID := make(map[int64]*entity.Producto, len(productos))
	for _, p := range productos {
		prodByID[p.ID] = p
	}
	userByID := make(map[string]*entity.User, len(usuarios))
	for _, u := range usuarios {
		userByID[u.ID] = u
	}
	out.ProductosTop = productosTop(ventas, prodByID, dashboardTop)
	out.ComentariosRec = comentariosRecientes(comentarios, userByID, prodByID, dashboardTop)
	out.CotizacionesPend = cotizacionesPendientes(cotizaciones, dashboardTop)
	return out, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("dashboard: %s: %w", what, err)
	}
	return nil
}

// ultimosMeses claves YYYY-MM de los n meses que terminan en el mes actual, del más antiguo al más reciente.
func ultimosMeses(now time.Time, n int) []string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = first.AddDate(0, i-n+1, 0).Format(mesLayout)
	}
	return out
}

func serieMensual(meses []string, montos map[string]decimal.Decimal) []dto.MesMontoDTO {
	out := make([]dto.MesMontoDTO, 0, len(meses))
	for _, m := range meses {
		out = append(out, dto.MesMontoDTO{Mes: m, Monto: montos[m].Round(2)})
	}
	return out
}

func productosTop(ventas []*entity.Venta, prodByID map[int64]*entity.Producto, n int) []dto.ProductoTopDTO {
	acc := map[int64]*dto.ProductoTopDTO{}
	for _, v := range ventas {
		if v.Estado == entity.VentaCancelada {
			continue
		}
		for _, d := range v.Detalles {
			t, ok := acc[d.ProductoID]
			if !ok {
				t = &dto.ProductoTopDTO{ProductoID: d.ProductoID}
				if p := prodByID[d.ProductoID]; p != nil {
					t.Nombre = p.Nombre
					t.Imagen = p.Imagen
				}
				acc[d.ProductoID] = t
			}
			t.UnidadesVendida = t.UnidadesVendida.Add(d.Cantidad)
			t.Ingresos = t.Ingresos.Add(d.Subtotal)
		}
	}
	out := make([]dto.ProductoTopDTO, 0, len(acc))
	for _, t := range acc {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].UnidadesVendida.Cmp(out[j].UnidadesVendida); c != 0 {
			return c > 0
		}
		return out[i].ProductoID < out[j].ProductoID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func comentariosRecientes(list []*entity.Comentario, userByID map[string]*entity.User, prodByID map[int64]*entity.Producto, n int) []dto.ComentarioResponse {
	sorted := append([]*entity.Comentario(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Fecha.After(sorted[j].Fecha) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]dto.ComentarioResponse, 0, len(sorted))
	for _, c := range sorted {
		item := dto.ComentarioResponse{
			ID:           c.ID,
			ProductoID:   c.ProductoID,
			VentaID:      c.VentaID,
			UsuarioID:    c.UsuarioID,
			Descripcion:  c.Descripcion,
			Calificacion: c.Calificacion,
			Fecha:        c.Fecha,
		}
		if u := userByID[c.UsuarioID]; u != nil {
			item.NombreCliente = u.FullName
		}
		if p := prodByID[c.ProductoID]; p != nil {
			item.NombreProducto = p.Nombre
		}
		out = append(out, item)
	}
	return out
}

func cotizacionesPendientes(list []*entity.Cotizacion, n int) []dto.CotizacionResponse {
	pend := make([]*entity.Cotizacion, 0)
	for _, c := range list {
		if c.Estado == entity.CotizacionPendiente {
			pend = append(pend, c)
		}
	}
	sort.SliceStable(pend, func(i, j int) bool { return pend[i].Fecha.After(pend[j].Fecha) })
	if len(pend) > n {
		pend = pend[:n]
	}
	out := make([]dto.CotizacionResponse, 0, len(pend))
	for _, c := range pend {
		out = append(out, dto.FromCotizacion(c))
	}
	return out
}
