package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
	"github.com/pecuadex/pecuadex-api/internal/domain/quotation"
	"github.com/pecuadex/pecuadex-api/internal/infrastructure/memory"
)

func cotizacionReq() dto.CotizacionRequest {
	return dto.CotizacionRequest{
		NombreCliente:             "Juan Pérez",
		EmailCliente:              "Juan@Rancho.mx",
		Telefono:                  "+52 (33) 1234-5678",
		CantidadDispositivos:      12,
		CantidadAnimales:          300,
		TipoGanado:                "Bovino",
		Hectareas:                 150,
		FuncionalidadesRequeridas: []string{quotation.FuncAnalytics, quotation.FuncAnalytics},
	}
}

func newCotizacionUseCase(mailer *fakeMailer) (*CotizacionUseCase, memory.Repos) {
	repos := memory.NewStore().Repos()
	return NewCotizacionUseCase(repos.Cotizac, mailer, fakeRenderer{}, "ventas@pecuadex.mx", nil), repos
}

func TestCotizacion_SolicitarGuardaPendienteYAvisa(t *testing.T) {
	mailer := &fakeMailer{}
	uc, repos := newCotizacionUseCase(mailer)
	ctx := context.Background()

	res, err := uc.Solicitar(ctx, cotizacionReq())
	require.NoError(t, err)
	assert.True(t, res.Success)
	// 12 × 2500 × 0.90 + 12 × 800
	assert.Equal(t, "36600", res.PrecioEstimado.String())

	c, err := repos.Cotizac.GetByID(ctx, res.CotizacionID)
	require.NoError(t, err)
	assert.Equal(t, entity.CotizacionPendiente, c.Estado)
	assert.Equal(t, "juan@rancho.mx", c.EmailCliente)
	assert.Equal(t, []string{quotation.FuncAnalytics}, c.FuncionalidadesRequeridas)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"ventas@pecuadex.mx"}, mailer.sent[0].To)
	require.Len(t, mailer.sent[0].Attachments, 1)
	assert.Equal(t, "application/pdf", mailer.sent[0].Attachments[0].ContentType)
}

func TestCotizacion_FalloDeCorreoNoInvalida(t *testing.T) {
	uc, _ := newCotizacionUseCase(&fakeMailer{err: errors.New("smtp caído")})
	res, err := uc.Solicitar(context.Background(), cotizacionReq())
	require.NoError(t, err)
	assert.NotZero(t, res.CotizacionID)
}

func TestCotizacion_Validacion(t *testing.T) {
	uc, _ := newCotizacionUseCase(&fakeMailer{})
	req := cotizacionReq()
	req.EmailCliente = "sin-arroba"
	req.Telefono = "tel: abc"
	req.Hectareas = 0
	req.FuncionalidadesRequeridas = []string{"teletransporte"}

	_, err := uc.Solicitar(context.Background(), req)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "emailCliente")
	assert.Contains(t, ve.Fields, "telefono")
	assert.Contains(t, ve.Fields, "hectareas")
	assert.Contains(t, ve.Fields, "funcionalidadesRequeridas")
}

func TestCotizacion_Estimar(t *testing.T) {
	uc, _ := newCotizacionUseCase(&fakeMailer{})
	res, err := uc.Estimar(dto.EstimarPrecioRequest{CantidadDispositivos: 10})
	require.NoError(t, err)
	assert.Equal(t, "25000", res.PrecioEstimado.String())

	_, err = uc.Estimar(dto.EstimarPrecioRequest{CantidadDispositivos: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCotizacion_CambiarEstadoYListar(t *testing.T) {
	uc, _ := newCotizacionUseCase(&fakeMailer{})
	ctx := context.Background()
	a, err := uc.Solicitar(ctx, cotizacionReq())
	require.NoError(t, err)
	req := cotizacionReq()
	req.NombreCliente = "Ganadera del Norte"
	_, err = uc.Solicitar(ctx, req)
	require.NoError(t, err)

	_, err = uc.CambiarEstado(ctx, a.CotizacionID, "Archivada")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CambiarEstado(ctx, 999, entity.CotizacionAprobada)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.CambiarEstado(ctx, a.CotizacionID, entity.CotizacionContactado)
	require.NoError(t, err)
	assert.Equal(t, entity.CotizacionContactado, got.Estado)

	page, err := uc.List(ctx, listquery.Query{Search: "contactado"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)

	page, err = uc.List(ctx, listquery.Query{SortField: "nombreCliente"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Ganadera del Norte", page.Items[0].NombreCliente)

	pdf, err := uc.PDF(ctx, a.CotizacionID)
	require.NoError(t, err)
	assert.Contains(t, string(pdf), "%PDF")
}
