package repository

import (
	"context"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
)

// CotizacionRepository solicitudes de cotización.
type CotizacionRepository interface {
	Create(ctx context.Context, c *entity.Cotizacion) error
	GetByID(ctx context.Context, id int64) (*entity.Cotizacion, error)
	UpdateEstado(ctx context.Context, id int64, estado string) error
	List(ctx context.Context) ([]*entity.Cotizacion, error)
}
