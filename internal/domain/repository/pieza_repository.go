package repository

import (
	"context"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
)

// PiezaRepository persistencia de piezas. Las lecturas incluyen existencias y costo promedio
// tomados del último movimiento del kardex.
type PiezaRepository interface {
	Create(ctx context.Context, p *entity.Pieza) error
	GetByID(ctx context.Context, id int64) (*entity.Pieza, error)
	Update(ctx context.Context, p *entity.Pieza) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entity.Pieza, error)
}
