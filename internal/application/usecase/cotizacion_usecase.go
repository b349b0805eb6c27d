package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/ports"
	"github.com/pecuadex/pecuadex-api/internal/application/validation"
	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
	"github.com/pecuadex/pecuadex-api/internal/domain/quotation"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
	"github.com/pecuadex/pecuadex-api/pkg/logger"
)

const mensajeCotizacion = "Cotización recibida. Nuestro equipo de ventas se pondrá en contacto contigo."

// CotizacionUseCase solicitudes de cotización de la página pública.
type CotizacionUseCase struct {
	repo       repository.CotizacionRepository
	mailer     ports.Mailer
	renderer   ports.CotizacionRenderer
	salesEmail string
	log        *logger.Logger
	now        func() time.Time
}

// NewCotizacionUseCase construye el caso de uso. renderer puede ser nil; entonces el aviso a ventas va sin PDF.
func NewCotizacionUseCase(repo repository.CotizacionRepository, mailer ports.Mailer, renderer ports.CotizacionRenderer, salesEmail string, log *logger.Logger) *CotizacionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CotizacionUseCase{
		repo:       repo,
		mailer:     mailer,
		renderer:   renderer,
		salesEmail: salesEmail,
		log:        log.Component("cotizaciones"),
		now:        time.Now,
	}
}

func validateFuncionalidades(v *validation.Checker, funcs []string) {
	for _, f := range funcs {
		if !quotation.FuncionalidadConocida(f) {
			v.Fail("funcionalidadesRequeridas", fmt.Sprintf("funcionalidad desconocida: %s", f))
			return
		}
	}
}

// Estimar calcula el precio sin guardar nada.
func (uc *CotizacionUseCase) Estimar(in dto.EstimarPrecioRequest) (*dto.EstimarPrecioResponse, error) {
	v := validation.New().MinInt("cantidadDispositivos", in.CantidadDispositivos, 1)
	validateFuncionalidades(v, in.FuncionalidadesRequeridas)
	if err := v.Err(); err != nil {
		return nil, err
	}
	return &dto.EstimarPrecioResponse{
		PrecioEstimado: quotation.Estimar(in.CantidadDispositivos, in.FuncionalidadesRequeridas),
	}, nil
}

// Solicitar guarda la cotización como Pendiente con su precio estimado y avisa a ventas.
// Un fallo al enviar el correo no invalida la solicitud.
func (uc *CotizacionUseCase) Solicitar(ctx context.Context, in dto.CotizacionRequest) (*dto.SolicitarCotizacionResponse, error) {
	v := validation.New().
		MinLen("nombreCliente", in.NombreCliente, 3).
		Email("emailCliente", in.EmailCliente).
		Phone("telefono", in.Telefono).
		MinInt("cantidadDispositivos", in.CantidadDispositivos, 1).
		MinInt("cantidadAnimales", in.CantidadAnimales, 1).
		Required("tipoGanado", in.TipoGanado).
		MinInt("hectareas", in.Hectareas, 1)
	validateFuncionalidades(v, in.FuncionalidadesRequeridas)
	if err := v.Err(); err != nil {
		return nil, err
	}

	funcs := dedupe(in.FuncionalidadesRequeridas)
	c := &entity.Cotizacion{
		NombreCliente:             strings.TrimSpace(in.NombreCliente),
		EmailCliente:              strings.ToLower(strings.TrimSpace(in.EmailCliente)),
		Telefono:                  strings.TrimSpace(in.Telefono),
		Empresa:                   strings.TrimSpace(in.Empresa),
		CantidadDispositivos:      in.CantidadDispositivos,
		CantidadAnimales:          in.CantidadAnimales,
		TipoGanado:                strings.TrimSpace(in.TipoGanado),
		Hectareas:                 in.Hectareas,
		FuncionalidadesRequeridas: funcs,
		Comentarios:               strings.TrimSpace(in.Comentarios),
		PrecioEstimado:            quotation.Estimar(in.CantidadDispositivos, funcs),
		Estado:                    entity.CotizacionPendiente,
		Fecha:                     uc.now(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	uc.notificarVentas(ctx, c)

	return &dto.SolicitarCotizacionResponse{
		Success:        true,
		CotizacionID:   c.ID,
		PrecioEstimado: c.PrecioEstimado,
		Message:        mensajeCotizacion,
	}, nil
}

func (uc *CotizacionUseCase) notificarVentas(ctx context.Context, c *entity.Cotizacion) {
	if uc.mailer == nil || uc.salesEmail == "" {
		return
	}
	m := ports.Mail{
		To:      []string{uc.salesEmail},
		Subject: fmt.Sprintf("Nueva cotización #%d - %s", c.ID, c.NombreCliente),
		Text: fmt.Sprintf(
			"Cliente: %s\nEmail: %s\nTeléfono: %s\nEmpresa: %s\nDispositivos: %d\nAnimales: %d (%s)\nHectáreas: %d\nFuncionalidades: %s\nPrecio estimado: $%s\n\n%s",
			c.NombreCliente, c.EmailCliente, c.Telefono, c.Empresa,
			c.CantidadDispositivos, c.CantidadAnimales, c.TipoGanado, c.Hectareas,
			strings.Join(c.FuncionalidadesRequeridas, ", "), c.PrecioEstimado.StringFixed(2), c.Comentarios,
		),
	}
	if uc.renderer != nil {
		pdf, err := uc.renderer.Render(c)
		if err != nil {
			uc.log.Warn().Err(err).Int64("cotizacion_id", c.ID).Msg("no se pudo generar el PDF de la cotización")
		} else {
			m.Attachments = []ports.Attachment{{
				FileName:    fmt.Sprintf("cotizacion-%d.pdf", c.ID),
				ContentType: "application/pdf",
				Content:     pdf,
			}}
		}
	}
	if err := uc.mailer.Send(ctx, m); err != nil {
		uc.log.Error().Err(err).Int64("cotizacion_id", c.ID).Msg("no se pudo notificar a ventas")
	}
}

// CotizacionSpec búsqueda por cliente, correo, empresa, ganado y estado.
var CotizacionSpec = listquery.Spec[dto.CotizacionResponse]{
	Noun: "cotizaciones",
	Search: func(c dto.CotizacionResponse) []string {
		return []string{c.NombreCliente, c.EmailCliente, c.Empresa, c.TipoGanado, c.Estado, c.Telefono}
	},
	Sort: map[string]listquery.KeyFunc[dto.CotizacionResponse]{
		"id":                   func(c dto.CotizacionResponse) any { return c.ID },
		"fecha":                func(c dto.CotizacionResponse) any { return c.Fecha },
		"nombreCliente":        func(c dto.CotizacionResponse) any { return c.NombreCliente },
		"precioEstimado":       func(c dto.CotizacionResponse) any { return c.PrecioEstimado },
		"cantidadDispositivos": func(c dto.CotizacionResponse) any { return c.CantidadDispositivos },
		"estado":               func(c dto.CotizacionResponse) any { return c.Estado },
	},
	Date: func(c dto.CotizacionResponse) time.Time { return c.Fecha },
}

// List cotizaciones con búsqueda, orden y paginación.
func (uc *CotizacionUseCase) List(ctx context.Context, q listquery.Query) (listquery.Page[dto.CotizacionResponse], error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return listquery.Page[dto.CotizacionResponse]{}, err
	}
	items := make([]dto.CotizacionResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.FromCotizacion(c))
	}
	return listquery.Apply(items, q, CotizacionSpec), nil
}

// CambiarEstado mueve la cotización a otro estado del flujo de ventas.
func (uc *CotizacionUseCase) CambiarEstado(ctx context.Context, id int64, estado string) (*dto.CotizacionResponse, error) {
	estado = strings.TrimSpace(estado)
	if !entity.EstadoCotizacionValido(estado) {
		return nil, validation.New().Fail("estado", "estado de cotización inválido").Err()
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.UpdateEstado(ctx, id, estado); err != nil {
		return nil, err
	}
	c.Estado = estado
	out := dto.FromCotizacion(c)
	return &out, nil
}

// PDF genera el documento de la cotización.
func (uc *CotizacionUseCase) PDF(ctx context.Context, id int64) ([]byte, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if uc.renderer == nil {
		return nil, fmt.Errorf("generador de PDF no configurado")
	}
	return uc.renderer.Render(c)
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
