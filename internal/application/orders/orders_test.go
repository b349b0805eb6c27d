package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/inventory"
	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
	"github.com/pecuadex/pecuadex-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	repos   memory.Repos
	compras *CompraUseCase
	ventas  *VentaUseCase
	prov    *entity.Proveedor
	bateria *entity.Pieza
	antena  *entity.Pieza
	collar  *entity.Producto
	cliente *entity.User
}

// collar GPS = 1 batería + 2 antenas
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	tx := memory.NewTxRunner(store)

	f := &fixture{
		repos:   repos,
		compras: NewCompraUseCase(tx, repos.Proveedores, repos.Piezas, repos.Compras, repos.Movimientos),
		ventas:  NewVentaUseCase(tx, repos.Users, repos.Productos, repos.Componentes, repos.Ventas, nil),
		prov:    &entity.Proveedor{NombreEmpresa: "Electrónica del Bajío"},
		bateria: &entity.Pieza{Nombre: "Batería litio", UnidadMedida: entity.UnidadMedidaDefault},
		antena:  &entity.Pieza{Nombre: "Antena GPS", UnidadMedida: entity.UnidadMedidaDefault},
		collar:  &entity.Producto{Nombre: "Collar GPS", PrecioSugerido: d("2500")},
		cliente: &entity.User{ID: "u-1", Email: "rancho@ejemplo.mx", FullName: "Rancho El Sauz", Roles: []string{entity.RoleUser}},
	}
	require.NoError(t, repos.Proveedores.Create(ctx, f.prov))
	require.NoError(t, repos.Piezas.Create(ctx, f.bateria))
	require.NoError(t, repos.Piezas.Create(ctx, f.antena))
	require.NoError(t, repos.Productos.Create(ctx, f.collar))
	require.NoError(t, repos.Users.Create(ctx, f.cliente))
	require.NoError(t, repos.Componentes.Create(ctx, &entity.ComponenteProducto{ProductoID: f.collar.ID, PiezaID: f.bateria.ID, CantidadRequerida: d("1")}))
	require.NoError(t, repos.Componentes.Create(ctx, &entity.ComponenteProducto{ProductoID: f.collar.ID, PiezaID: f.antena.ID, CantidadRequerida: d("2")}))
	return f
}

func (f *fixture) comprar(t *testing.T, piezaID int64, cantidad, total string) *dto.CompraResponse {
	t.Helper()
	c, err := f.compras.Create(context.Background(), dto.CompraRequest{
		ProveedorID: f.prov.ID,
		Detalles:    []dto.DetalleCompraRequest{{PiezaID: piezaID, Presentacion: "Caja", Cantidad: d(cantidad), PrecioTotal: d(total)}},
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) pieza(t *testing.T, id int64) *entity.Pieza {
	t.Helper()
	p, err := f.repos.Piezas.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

// ─── Compras ──────────────────────────────────────────────────────────────────

func TestCompra_RegistraEntradasYCostoPromedio(t *testing.T) {
	f := newFixture(t)
	c := f.comprar(t, f.bateria.ID, "10", "1000")
	require.Len(t, c.Detalles, 1)
	assert.NotZero(t, c.Detalles[0].MovimientosPiezaID)
	assert.True(t, c.Total.Equal(d("1000")))
	assert.True(t, c.Detalles[0].MovimientosPieza.CostoUnitario.Equal(d("100")))

	f.comprar(t, f.bateria.ID, "10", "2000")
	p := f.pieza(t, f.bateria.ID)
	assert.True(t, p.Existencias.Equal(d("20")))
	assert.True(t, p.CostoPromedio.Equal(d("150")), "got %s", p.CostoPromedio)
}

func TestCompra_MovimientosReferencianLaCompra(t *testing.T) {
	f := newFixture(t)
	c := f.comprar(t, f.bateria.ID, "5", "500")
	want := fmt.Sprintf("compra:%d", c.ID)
	assert.Equal(t, want, c.Detalles[0].MovimientosPieza.Referencia)

	movs, err := f.repos.Movimientos.ListByPieza(context.Background(), f.bateria.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, want, movs[0].Referencia)
}

func TestCompra_Validacion(t *testing.T) {
	f := newFixture(t)
	_, err := f.compras.Create(context.Background(), dto.CompraRequest{ProveedorID: f.prov.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.compras.Create(context.Background(), dto.CompraRequest{
		ProveedorID: f.prov.ID,
		Detalles:    []dto.DetalleCompraRequest{{PiezaID: f.bateria.ID, Presentacion: "Caja", Cantidad: d("0"), PrecioTotal: d("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompra_ProveedorInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.compras.Create(context.Background(), dto.CompraRequest{
		ProveedorID: 999,
		Detalles:    []dto.DetalleCompraRequest{{PiezaID: f.bateria.ID, Presentacion: "Caja", Cantidad: d("1"), PrecioTotal: d("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompra_ListBuscaPorPieza(t *testing.T) {
	f := newFixture(t)
	f.comprar(t, f.bateria.ID, "1", "100")
	f.comprar(t, f.antena.ID, "1", "50")

	page, err := f.compras.List(context.Background(), listquery.Query{Search: "bateria"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Electrónica del Bajío", page.Items[0].Proveedor.NombreEmpresa)

	page, err = f.compras.List(context.Background(), listquery.Query{SortField: "total", SortDirection: listquery.Asc})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, page.Items[0].Total.Equal(d("50")))
}

// ─── Ventas ───────────────────────────────────────────────────────────────────

func TestVenta_PreciaDelServidorYDescuentaPiezas(t *testing.T) {
	f := newFixture(t)
	f.comprar(t, f.bateria.ID, "10", "1000")
	f.comprar(t, f.antena.ID, "10", "500")

	v, err := f.ventas.Create(context.Background(), dto.VentaRequest{
		UsuarioID: f.cliente.ID,
		Detalles:  []dto.DetalleVentaRequest{{ProductoID: f.collar.ID, Cantidad: d("3")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VentaCompletada, v.Estado)
	assert.True(t, v.Total.Equal(d("7500")))
	assert.True(t, v.Detalles[0].PrecioUnitario.Equal(d("2500")))
	assert.Equal(t, "Rancho El Sauz", v.Usuario.FullName)

	assert.True(t, f.pieza(t, f.bateria.ID).Existencias.Equal(d("7")))
	assert.True(t, f.pieza(t, f.antena.ID).Existencias.Equal(d("4")))
}

func TestVenta_SinExistenciasNoPersisteNada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.comprar(t, f.bateria.ID, "10", "1000")
	f.comprar(t, f.antena.ID, "3", "150") // alcanza para 1 collar

	_, err := f.ventas.Create(ctx, dto.VentaRequest{
		UsuarioID: f.cliente.ID,
		Detalles:  []dto.DetalleVentaRequest{{ProductoID: f.collar.ID, Cantidad: d("2")}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	ventas, _ := f.repos.Ventas.List(ctx)
	assert.Empty(t, ventas)
	assert.True(t, f.pieza(t, f.bateria.ID).Existencias.Equal(d("10")), "la salida de baterías se revierte")
	movs, _ := f.repos.Movimientos.List(ctx)
	assert.Len(t, movs, 2)
}

func TestVenta_UsuarioInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.ventas.Create(context.Background(), dto.VentaRequest{
		UsuarioID: "no-existe",
		Detalles:  []dto.DetalleVentaRequest{{ProductoID: f.collar.ID, Cantidad: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestVenta_ListRangoDeFechas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.comprar(t, f.bateria.ID, "10", "1000")
	f.comprar(t, f.antena.ID, "20", "1000")

	enero := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	marzo := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	for _, fecha := range []time.Time{enero, marzo} {
		fecha := fecha
		_, err := f.ventas.Create(ctx, dto.VentaRequest{
			UsuarioID: f.cliente.ID,
			Fecha:     &fecha,
			Detalles:  []dto.DetalleVentaRequest{{ProductoID: f.collar.ID, Cantidad: d("1")}},
		})
		require.NoError(t, err)
	}

	desde := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	page, err := f.ventas.List(ctx, listquery.Query{From: &desde})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, marzo, page.Items[0].Fecha)

	page, err = f.ventas.List(ctx, listquery.Query{Search: "sauz"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestVenta_SalidasReferencianLaVenta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.comprar(t, f.bateria.ID, "10", "1000")
	f.comprar(t, f.antena.ID, "10", "500")

	v, err := f.ventas.Create(ctx, dto.VentaRequest{
		UsuarioID: f.cliente.ID,
		Detalles:  []dto.DetalleVentaRequest{{ProductoID: f.collar.ID, Cantidad: d("1")}},
	})
	require.NoError(t, err)

	movs, err := f.repos.Movimientos.List(ctx)
	require.NoError(t, err)
	var salidas []string
	for _, m := range movs {
		if m.TipoMovimiento == entity.MovimientoSalida {
			salidas = append(salidas, m.Referencia)
		}
	}
	want := fmt.Sprintf("venta:%d", v.ID)
	assert.Equal(t, []string{want, want}, salidas)
}

// lockSpy anota el orden en que se bloquean las piezas.
type lockSpy struct {
	repository.MovimientoPiezaRepository
	locks []int64
}

func (s *lockSpy) LastForUpdate(ctx context.Context, piezaID int64) (*entity.MovimientoPieza, error) {
	s.locks = append(s.locks, piezaID)
	return s.MovimientoPiezaRepository.LastForUpdate(ctx, piezaID)
}

type spyTxRunner struct {
	inner inventory.TxRunner
	spy   *lockSpy
}

func (r *spyTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovimientoPiezaRepository,
	compraRepo repository.CompraRepository,
	ventaRepo repository.VentaRepository,
) error) error {
	return r.inner.Run(ctx, func(movRepo repository.MovimientoPiezaRepository, compraRepo repository.CompraRepository, ventaRepo repository.VentaRepository) error {
		r.spy.MovimientoPiezaRepository = movRepo
		return fn(r.spy, compraRepo, ventaRepo)
	})
}

func TestVenta_BloqueaPiezasEnOrdenAscendente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	spy := &lockSpy{}
	tx := &spyTxRunner{inner: memory.NewTxRunner(store), spy: spy}
	compras := NewCompraUseCase(memory.NewTxRunner(store), repos.Proveedores, repos.Piezas, repos.Compras, repos.Movimientos)
	ventas := NewVentaUseCase(tx, repos.Users, repos.Productos, repos.Componentes, repos.Ventas, nil)

	prov := &entity.Proveedor{NombreEmpresa: "Electrónica del Bajío"}
	bateria := &entity.Pieza{Nombre: "Batería litio", UnidadMedida: entity.UnidadMedidaDefault}
	antena := &entity.Pieza{Nombre: "Antena GPS", UnidadMedida: entity.UnidadMedidaDefault}
	repetidor := &entity.Producto{Nombre: "Repetidor", PrecioSugerido: d("900")}
	collar := &entity.Producto{Nombre: "Collar GPS", PrecioSugerido: d("2500")}
	cliente := &entity.User{ID: "u-1", Email: "rancho@ejemplo.mx", FullName: "Rancho El Sauz", Roles: []string{entity.RoleUser}}
	require.NoError(t, repos.Proveedores.Create(ctx, prov))
	require.NoError(t, repos.Piezas.Create(ctx, bateria))
	require.NoError(t, repos.Piezas.Create(ctx, antena))
	require.NoError(t, repos.Productos.Create(ctx, repetidor))
	require.NoError(t, repos.Productos.Create(ctx, collar))
	require.NoError(t, repos.Users.Create(ctx, cliente))
	require.NoError(t, repos.Componentes.Create(ctx, &entity.ComponenteProducto{ProductoID: repetidor.ID, PiezaID: antena.ID, CantidadRequerida: d("1")}))
	require.NoError(t, repos.Componentes.Create(ctx, &entity.ComponenteProducto{ProductoID: collar.ID, PiezaID: bateria.ID, CantidadRequerida: d("1")}))
	require.NoError(t, repos.Componentes.Create(ctx, &entity.ComponenteProducto{ProductoID: collar.ID, PiezaID: antena.ID, CantidadRequerida: d("2")}))
	for _, id := range []int64{bateria.ID, antena.ID} {
		_, err := compras.Create(ctx, dto.CompraRequest{
			ProveedorID: prov.ID,
			Detalles:    []dto.DetalleCompraRequest{{PiezaID: id, Presentacion: "Caja", Cantidad: d("10"), PrecioTotal: d("100")}},
		})
		require.NoError(t, err)
	}
	require.Less(t, bateria.ID, antena.ID)

	// la primera línea solo usa antenas; aun así la batería se bloquea primero
	_, err := ventas.Create(ctx, dto.VentaRequest{
		UsuarioID: cliente.ID,
		Detalles: []dto.DetalleVentaRequest{
			{ProductoID: repetidor.ID, Cantidad: d("1")},
			{ProductoID: collar.ID, Cantidad: d("1")},
		},
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(spy.locks), 2)
	assert.Equal(t, []int64{bateria.ID, antena.ID}, spy.locks[:2])
}
