package repository

import (
	"context"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
)

// MovimientoPiezaRepository kardex de piezas.
// LastForUpdate bloquea la pieza (SELECT ... FOR UPDATE) y devuelve su último movimiento o nil;
// solo tiene sentido dentro de una transacción. SetReferencia completa la referencia de movimientos
// creados antes que su documento (p.ej. la compra que los agrupa).
type MovimientoPiezaRepository interface {
	Create(ctx context.Context, m *entity.MovimientoPieza) error
	LastForUpdate(ctx context.Context, piezaID int64) (*entity.MovimientoPieza, error)
	SetReferencia(ctx context.Context, ids []int64, referencia string) error
	List(ctx context.Context) ([]*entity.MovimientoPieza, error)
	ListByPieza(ctx context.Context, piezaID int64) ([]*entity.MovimientoPieza, error)
}
