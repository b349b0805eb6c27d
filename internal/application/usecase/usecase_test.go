package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/ports"
	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
	"github.com/pecuadex/pecuadex-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ─── Dobles ───────────────────────────────────────────────────────────────────

type fakeDocs struct {
	mu      sync.Mutex
	files   map[string][]byte
	n       int
	saveErr error
}

func newFakeDocs() *fakeDocs { return &fakeDocs{files: map[string][]byte{}} }

func (f *fakeDocs) Save(_ context.Context, fileName string, r io.Reader) (string, string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", "", f.saveErr
	}
	f.n++
	key := fmt.Sprintf("%d-%s", f.n, fileName)
	f.files[key] = b
	return key, "/uploads/" + key, nil
}

func (f *fakeDocs) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, key)
	return nil
}

type fakeMailer struct {
	sent []ports.Mail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, m ports.Mail) error {
	f.sent = append(f.sent, m)
	return f.err
}

type fakeRenderer struct{}

func (fakeRenderer) Render(c *entity.Cotizacion) ([]byte, error) {
	return []byte("%PDF-" + c.NombreCliente), nil
}

// ─── Fixture ──────────────────────────────────────────────────────────────────

type fixture struct {
	repos       memory.Repos
	docs        *fakeDocs
	productos   *ProductoUseCase
	piezas      *PiezaUseCase
	proveedores *ProveedorUseCase
	componentes *ComponenteUseCase
	manuales    *ManualUseCase
	comentarios *ComentarioUseCase
	clientes    *ClienteUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewStore().Repos()
	docs := newFakeDocs()
	return &fixture{
		repos:       repos,
		docs:        docs,
		productos:   NewProductoUseCase(repos.Productos, repos.Componentes, repos.Piezas, repos.Comentarios, repos.Manuales, repos.Users, docs, nil),
		piezas:      NewPiezaUseCase(repos.Piezas),
		proveedores: NewProveedorUseCase(repos.Proveedores),
		componentes: NewComponenteUseCase(repos.Componentes, repos.Productos, repos.Piezas),
		manuales:    NewManualUseCase(repos.Manuales, repos.Productos, docs, nil),
		comentarios: NewComentarioUseCase(repos.Comentarios, repos.Ventas, repos.Productos, repos.Users),
		clientes:    NewClienteUseCase(repos.Ventas, repos.Productos, repos.Manuales),
	}
}

func collarReq() dto.ProductoRequest {
	return dto.ProductoRequest{
		Nombre:         "Collar GPS",
		Descripcion:    "Collar con GPS y batería de 2 años",
		PrecioSugerido: d("2500"),
		Imagen:         "https://cdn.pecuadex.mx/collar.png",
	}
}

func (f *fixture) producto(t *testing.T) *dto.ProductoResponse {
	t.Helper()
	p, err := f.productos.Create(context.Background(), collarReq())
	require.NoError(t, err)
	return p
}

func (f *fixture) usuario(t *testing.T, id, nombre string) *entity.User {
	t.Helper()
	u := &entity.User{ID: id, Email: id + "@rancho.mx", FullName: nombre, Roles: []string{entity.RoleUser}}
	require.NoError(t, f.repos.Users.Create(context.Background(), u))
	return u
}

func (f *fixture) venta(t *testing.T, userID string, productoID int64, fecha time.Time) *entity.Venta {
	t.Helper()
	v := &entity.Venta{
		UsuarioID: userID,
		Fecha:     fecha,
		Total:     d("2500"),
		Estado:    entity.VentaCompletada,
		Detalles:  []entity.DetalleVenta{{ProductoID: productoID, Cantidad: d("1"), PrecioUnitario: d("2500"), Subtotal: d("2500")}},
	}
	require.NoError(t, f.repos.Ventas.Create(context.Background(), v))
	return v
}

// ─── Productos ────────────────────────────────────────────────────────────────

func TestProducto_Validacion(t *testing.T) {
	f := newFixture(t)
	_, err := f.productos.Create(context.Background(), dto.ProductoRequest{Nombre: "ab", Descripcion: "corta", PrecioSugerido: d("0")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "nombre")
	assert.Contains(t, ve.Fields, "descripcion")
	assert.Contains(t, ve.Fields, "precioSugerido")
	assert.Contains(t, ve.Fields, "imagen")
}

func TestProducto_ConManualGuardaArchivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	up := &dto.ManualUpload{Titulo: "Guía de instalación", FileName: "guia.pdf", ContentType: "application/pdf", Size: 4, Content: strings.NewReader("%PDF")}

	p, err := f.productos.CreateConManual(ctx, collarReq(), up)
	require.NoError(t, err)
	require.Len(t, p.Manuales, 1)
	assert.True(t, strings.HasPrefix(p.Manuales[0].URLDocumento, "/uploads/"))
	assert.Len(t, f.docs.files, 1)

	up2 := &dto.ManualUpload{Titulo: "Guía v2", FileName: "guia2.pdf", ContentType: "application/pdf", Size: 4, Content: strings.NewReader("%PDF")}
	_, err = f.productos.UpdateConManual(ctx, p.ID, collarReq(), up2)
	require.NoError(t, err)
	mans, err := f.manuales.ListByProducto(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, mans, 1, "el manual anterior se reemplaza")
	assert.Equal(t, "Guía v2", mans[0].Titulo)
	assert.Len(t, f.docs.files, 1)

	require.NoError(t, f.productos.Delete(ctx, p.ID))
	assert.Empty(t, f.docs.files)
}

func TestProducto_VendidoConservaManuales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	up := &dto.ManualUpload{Titulo: "Guía de instalación", FileName: "guia.pdf", ContentType: "application/pdf", Size: 4, Content: strings.NewReader("%PDF")}
	p, err := f.productos.CreateConManual(ctx, collarReq(), up)
	require.NoError(t, err)
	u := f.usuario(t, "u-1", "Rancho El Sauz")
	f.venta(t, u.ID, p.ID, time.Now())

	assert.ErrorIs(t, f.productos.Delete(ctx, p.ID), domain.ErrConflict)

	mans, err := f.manuales.ListByProducto(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, mans, 1)
	assert.Len(t, f.docs.files, 1)
}

func TestProducto_ReemplazoFallidoConservaManualAnterior(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	up := &dto.ManualUpload{Titulo: "Guía de instalación", FileName: "guia.pdf", ContentType: "application/pdf", Size: 4, Content: strings.NewReader("%PDF")}
	p, err := f.productos.CreateConManual(ctx, collarReq(), up)
	require.NoError(t, err)

	f.docs.saveErr = errors.New("disco lleno")
	up2 := &dto.ManualUpload{Titulo: "Guía v2", FileName: "guia2.pdf", ContentType: "application/pdf", Size: 4, Content: strings.NewReader("%PDF")}
	_, err = f.productos.UpdateConManual(ctx, p.ID, collarReq(), up2)
	require.Error(t, err)

	mans, err := f.manuales.ListByProducto(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, mans, 1)
	assert.Equal(t, "Guía de instalación", mans[0].Titulo)
	assert.Len(t, f.docs.files, 1)
}

func TestProducto_ManualDebeSerPDF(t *testing.T) {
	f := newFixture(t)
	up := &dto.ManualUpload{Titulo: "Foto", FileName: "foto.png", ContentType: "image/png", Content: bytes.NewReader(nil)}
	_, err := f.productos.CreateConManual(context.Background(), collarReq(), up)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProducto_ConComponentesNoSeElimina(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.producto(t)
	pz, err := f.piezas.Create(ctx, dto.PiezaRequest{Nombre: "Batería", Descripcion: "Batería de litio 3.7V"})
	require.NoError(t, err)
	_, err = f.componentes.Create(ctx, dto.ComponenteRequest{ProductoID: p.ID, PiezaID: pz.ID, CantidadRequerida: d("1")})
	require.NoError(t, err)

	assert.ErrorIs(t, f.productos.Delete(ctx, p.ID), domain.ErrConflict)
}

func TestProducto_GetIncluyeRelaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.producto(t)
	u := f.usuario(t, "u-1", "Rancho El Sauz")
	f.venta(t, u.ID, p.ID, time.Now())
	_, err := f.comentarios.Create(ctx, u.ID, dto.ComentarioRequest{ProductoID: p.ID, Descripcion: "Excelente cobertura en el potrero", Calificacion: 5})
	require.NoError(t, err)

	got, err := f.productos.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Comentarios, 1)
	assert.Equal(t, "Rancho El Sauz", got.Comentarios[0].NombreCliente)
	assert.NotNil(t, got.ComponentesProducto)
	assert.NotNil(t, got.Manuales)

	_, err = f.productos.Get(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProducto_ListBuscaYOrdena(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.producto(t)
	req := collarReq()
	req.Nombre = "Gateway LoRa"
	req.PrecioSugerido = d("8000")
	_, err := f.productos.Create(ctx, req)
	require.NoError(t, err)

	page, err := f.productos.List(ctx, listquery.Query{SortField: "precioSugerido", SortDirection: listquery.Desc})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Gateway LoRa", page.Items[0].Nombre)

	page, err = f.productos.List(ctx, listquery.Query{Search: "collar"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)
}

// ─── Piezas y proveedores ─────────────────────────────────────────────────────

func TestPieza_UnidadPorDefecto(t *testing.T) {
	f := newFixture(t)
	p, err := f.piezas.Create(context.Background(), dto.PiezaRequest{Nombre: "Antena", Descripcion: "Antena cerámica GPS"})
	require.NoError(t, err)
	assert.Equal(t, entity.UnidadMedidaDefault, p.UnidadMedida)
	assert.True(t, p.Existencias.IsZero())
}

func TestProveedor_ValidaYActualiza(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.proveedores.Create(ctx, dto.ProveedorRequest{NombreEmpresa: "AB", Email: "no-es-email"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := f.proveedores.Create(ctx, dto.ProveedorRequest{NombreEmpresa: "Electrónica del Bajío", Email: "ventas@bajio.mx"})
	require.NoError(t, err)

	upd, err := f.proveedores.Update(ctx, p.ID, dto.ProveedorRequest{NombreEmpresa: "Electrónica del Bajío SA", Telefono: "+52 (477) 123-4567"})
	require.NoError(t, err)
	assert.Equal(t, "Electrónica del Bajío SA", upd.NombreEmpresa)

	_, err = f.proveedores.Update(ctx, 999, dto.ProveedorRequest{NombreEmpresa: "Otro proveedor"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Componentes ──────────────────────────────────────────────────────────────

func TestComponente_DuplicadoYCosto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.producto(t)
	bat, err := f.piezas.Create(ctx, dto.PiezaRequest{Nombre: "Batería", Descripcion: "Batería de litio 3.7V"})
	require.NoError(t, err)
	ant, err := f.piezas.Create(ctx, dto.PiezaRequest{Nombre: "Antena", Descripcion: "Antena cerámica GPS"})
	require.NoError(t, err)
	require.NoError(t, f.repos.Movimientos.Create(ctx, &entity.MovimientoPieza{PiezaID: bat.ID, TipoMovimiento: entity.MovimientoEntrada, Cantidad: d("10"), Existencias: d("10"), SaldoValor: d("3000"), CostoPromedio: d("300")}))
	require.NoError(t, f.repos.Movimientos.Create(ctx, &entity.MovimientoPieza{PiezaID: ant.ID, TipoMovimiento: entity.MovimientoEntrada, Cantidad: d("10"), Existencias: d("10"), SaldoValor: d("1000"), CostoPromedio: d("100")}))

	_, err = f.componentes.Create(ctx, dto.ComponenteRequest{ProductoID: p.ID, PiezaID: bat.ID, CantidadRequerida: d("1")})
	require.NoError(t, err)
	_, err = f.componentes.Create(ctx, dto.ComponenteRequest{ProductoID: p.ID, PiezaID: ant.ID, CantidadRequerida: d("2")})
	require.NoError(t, err)
	_, err = f.componentes.Create(ctx, dto.ComponenteRequest{ProductoID: p.ID, PiezaID: ant.ID, CantidadRequerida: d("1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = f.componentes.Create(ctx, dto.ComponenteRequest{ProductoID: p.ID, PiezaID: ant.ID, CantidadRequerida: d("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	costo, err := f.componentes.Costo(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, costo.Lineas, 2)
	assert.True(t, costo.CostoTotal.Equal(d("500")), "got %s", costo.CostoTotal)
	assert.True(t, costo.Margen.Equal(d("2000")))
	assert.True(t, costo.MargenPct.Equal(d("80")))

	page, err := f.componentes.List(ctx, listquery.Query{Search: "antena"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)

	require.NoError(t, f.componentes.Delete(ctx, p.ID, ant.ID))
	assert.ErrorIs(t, f.componentes.Delete(ctx, p.ID, ant.ID), domain.ErrNotFound)
}

// ─── Manuales ─────────────────────────────────────────────────────────────────

func TestManual_EnlaceYBorrado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.producto(t)

	_, err := f.manuales.Create(ctx, dto.ManualRequest{ProductoID: p.ID})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	m, err := f.manuales.Create(ctx, dto.ManualRequest{ProductoID: p.ID, Titulo: "Manual de usuario", URLDocumento: "https://docs.pecuadex.mx/collar.pdf"})
	require.NoError(t, err)

	all, err := f.manuales.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, f.manuales.Delete(ctx, m.ID))
	assert.ErrorIs(t, f.manuales.Delete(ctx, m.ID), domain.ErrNotFound)
}

// ─── Comentarios ──────────────────────────────────────────────────────────────

func TestComentario_RequiereCompra(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.producto(t)
	u := f.usuario(t, "u-1", "Rancho El Sauz")
	req := dto.ComentarioRequest{ProductoID: p.ID, Descripcion: "Funciona muy bien en campo abierto", Calificacion: 4}

	_, err := f.comentarios.Create(ctx, u.ID, req)
	assert.ErrorIs(t, err, domain.ErrForbidden, "sin compra no hay reseña")

	v := f.venta(t, u.ID, p.ID, time.Now())
	c, err := f.comentarios.Create(ctx, u.ID, req)
	require.NoError(t, err)
	require.NotNil(t, c.VentaID)
	assert.Equal(t, v.ID, *c.VentaID)
	assert.Equal(t, "Collar GPS", c.NombreProducto)

	_, err = f.comentarios.Create(ctx, u.ID, req)
	assert.ErrorIs(t, err, domain.ErrDuplicate, "una reseña por venta y producto")

	otra := f.venta(t, u.ID, p.ID, time.Now())
	c2, err := f.comentarios.Create(ctx, u.ID, req)
	require.NoError(t, err)
	assert.Equal(t, otra.ID, *c2.VentaID)
}

func TestComentario_VentaAjena(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.producto(t)
	dueno := f.usuario(t, "u-1", "Rancho El Sauz")
	otro := f.usuario(t, "u-2", "Granja La Luz")
	v := f.venta(t, dueno.ID, p.ID, time.Now())

	_, err := f.comentarios.Create(ctx, otro.ID, dto.ComentarioRequest{ProductoID: p.ID, VentaID: &v.ID, Descripcion: "Intento reseñar ajeno", Calificacion: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestComentario_ValidaCalificacion(t *testing.T) {
	f := newFixture(t)
	_, err := f.comentarios.Create(context.Background(), "u-1", dto.ComentarioRequest{ProductoID: 1, Descripcion: "muy corto", Calificacion: 6})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "descripcion")
	assert.Contains(t, ve.Fields, "calificacion")
}

func TestComentario_SoloAutorModifica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.producto(t)
	u := f.usuario(t, "u-1", "Rancho El Sauz")
	f.usuario(t, "u-2", "Granja La Luz")
	f.venta(t, u.ID, p.ID, time.Now())
	c, err := f.comentarios.Create(ctx, u.ID, dto.ComentarioRequest{ProductoID: p.ID, Descripcion: "Funciona muy bien en campo abierto", Calificacion: 4})
	require.NoError(t, err)

	upd := dto.ComentarioRequest{Descripcion: "Después de un mes sigue perfecto", Calificacion: 5}
	_, err = f.comentarios.Update(ctx, "u-2", c.ID, upd)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := f.comentarios.Update(ctx, u.ID, c.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Calificacion)

	mine, err := f.comentarios.Mine(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assert.ErrorIs(t, f.comentarios.Delete(ctx, "u-2", false, c.ID), domain.ErrForbidden)
	require.NoError(t, f.comentarios.Delete(ctx, "admin", true, c.ID))

	all, err := f.comentarios.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

// ─── Portal del cliente ───────────────────────────────────────────────────────

func TestCliente_ComprasBuscaPorFecha(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.producto(t)
	u := f.usuario(t, "u-1", "Rancho El Sauz")
	f.usuario(t, "u-2", "Granja La Luz")
	f.venta(t, u.ID, p.ID, time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local))
	f.venta(t, u.ID, p.ID, time.Date(2026, 4, 2, 10, 0, 0, 0, time.Local))
	f.venta(t, "u-2", p.ID, time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local))

	page, err := f.clientes.Compras(ctx, u.ID, listquery.Query{})
	require.NoError(t, err)
	require.Equal(t, 2, page.TotalItems)
	require.Len(t, page.Items[0].Productos, 1)
	assert.Equal(t, "Collar GPS", page.Items[0].Productos[0].Nombre)

	page, err = f.clientes.Compras(ctx, u.ID, listquery.Query{Search: "15/03/2026"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)
}

func TestCliente_ManualesDeProductosComprados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	collar := f.producto(t)
	req := collarReq()
	req.Nombre = "Gateway LoRa"
	gw, err := f.productos.Create(ctx, req)
	require.NoError(t, err)
	u := f.usuario(t, "u-1", "Rancho El Sauz")
	f.venta(t, u.ID, collar.ID, time.Now())

	_, err = f.manuales.Create(ctx, dto.ManualRequest{ProductoID: collar.ID, Titulo: "Manual collar", URLDocumento: "https://docs.pecuadex.mx/collar.pdf"})
	require.NoError(t, err)
	_, err = f.manuales.Create(ctx, dto.ManualRequest{ProductoID: gw.ID, Titulo: "Manual gateway", URLDocumento: "https://docs.pecuadex.mx/gw.pdf"})
	require.NoError(t, err)

	got, err := f.clientes.Manuales(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Collar GPS", got[0].NombreProducto)
	require.Len(t, got[0].Manuales, 1)
	assert.Equal(t, "Manual collar", got[0].Manuales[0].Titulo)
}
