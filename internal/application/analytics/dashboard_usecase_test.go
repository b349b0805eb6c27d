package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestResumen(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.Local)

	prov := &entity.Proveedor{NombreEmpresa: "Electrónica del Bajío"}
	require.NoError(t, repos.Proveedores.Create(ctx, prov))
	pieza := &entity.Pieza{Nombre: "Batería"}
	require.NoError(t, repos.Piezas.Create(ctx, pieza))
	collar := &entity.Producto{Nombre: "Collar GPS", PrecioSugerido: d("2500")}
	gateway := &entity.Producto{Nombre: "Gateway", PrecioSugerido: d("8000")}
	require.NoError(t, repos.Productos.Create(ctx, collar))
	require.NoError(t, repos.Productos.Create(ctx, gateway))
	u := &entity.User{ID: "u-1", Email: "rancho@ejemplo.mx", FullName: "Rancho El Sauz"}
	require.NoError(t, repos.Users.Create(ctx, u))

	venta := func(fecha time.Time, productoID int64, cant, precio string) *entity.Venta {
		sub := d(cant).Mul(d(precio))
		v := &entity.Venta{UsuarioID: u.ID, Fecha: fecha, Total: sub, Estado: entity.VentaCompletada,
			Detalles: []entity.DetalleVenta{{ProductoID: productoID, Cantidad: d(cant), PrecioUnitario: d(precio), Subtotal: sub}}}
		require.NoError(t, repos.Ventas.Create(ctx, v))
		return v
	}
	venta(now.Add(-time.Hour), collar.ID, "3", "2500")
	venta(now.AddDate(0, -2, 0), gateway.ID, "1", "8000")
	venta(now.AddDate(-1, 0, 0), collar.ID, "1", "2500")

	mov := &entity.MovimientoPieza{PiezaID: pieza.ID, TipoMovimiento: entity.MovimientoEntrada, Cantidad: d("10"), Existencias: d("10")}
	require.NoError(t, repos.Movimientos.Create(ctx, mov))
	require.NoError(t, repos.Compras.Create(ctx, &entity.Compra{ProveedorID: prov.ID, Fecha: now.AddDate(0, -1, 0),
		Detalles: []entity.DetalleCompra{{PiezaID: pieza.ID, MovimientosPiezaID: mov.ID, Presentacion: "Caja", Cantidad: d("10"), PrecioTotal: d("6000")}}}))

	require.NoError(t, repos.Cotizac.Create(ctx, &entity.Cotizacion{NombreCliente: "A", Estado: entity.CotizacionPendiente, Fecha: now}))
	require.NoError(t, repos.Cotizac.Create(ctx, &entity.Cotizacion{NombreCliente: "B", Estado: entity.CotizacionAprobada, Fecha: now}))

	uc := NewDashboardUseCase(Repos{
		Productos: repos.Productos, Ventas: repos.Ventas, Compras: repos.Compras, Proveedores: repos.Proveedores,
		Piezas: repos.Piezas, Comentarios: repos.Comentarios, Users: repos.Users, Cotizaciones: repos.Cotizac,
	})
	uc.now = func() time.Time { return now }

	r, err := uc.Resumen(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, r.Totales.Productos)
	assert.Equal(t, 3, r.Totales.Ventas)
	assert.Equal(t, 1, r.Totales.Compras)
	assert.Equal(t, 2, r.Totales.Cotizaciones)
	assert.Equal(t, "18000", r.IngresosTotales.String())
	assert.Equal(t, "6000", r.GastosTotales.String())
	assert.Equal(t, "12000", r.Utilidad.String())
	assert.Equal(t, "66.67", r.MargenUtilidad.String())
	assert.Equal(t, 1, r.VentasHoy)

	require.Len(t, r.VentasPorMes, 6)
	assert.Equal(t, "2026-01", r.VentasPorMes[0].Mes)
	assert.Equal(t, "2026-06", r.VentasPorMes[5].Mes)
	assert.Equal(t, "7500", r.VentasPorMes[5].Monto.String())
	assert.Equal(t, "8000", r.VentasPorMes[3].Monto.String())
	assert.Equal(t, "6000", r.ComprasPorMes[4].Monto.String())

	require.Len(t, r.ProductosTop, 2)
	assert.Equal(t, "Collar GPS", r.ProductosTop[0].Nombre)
	assert.Equal(t, "4", r.ProductosTop[0].UnidadesVendida.String())

	require.Len(t, r.CotizacionesPend, 1)
	assert.Equal(t, "A", r.CotizacionesPend[0].NombreCliente)
	assert.Empty(t, r.ComentariosRec)
}
