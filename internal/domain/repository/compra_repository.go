package repository

import (
	"context"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
)

// CompraRepository persiste compras con sus detalles.
type CompraRepository interface {
	Create(ctx context.Context, c *entity.Compra) error
	GetByID(ctx context.Context, id int64) (*entity.Compra, error)
	List(ctx context.Context) ([]*entity.Compra, error)
}

// VentaRepository persiste ventas con sus detalles.
type VentaRepository interface {
	Create(ctx context.Context, v *entity.Venta) error
	GetByID(ctx context.Context, id int64) (*entity.Venta, error)
	List(ctx context.Context) ([]*entity.Venta, error)
	ListByUsuario(ctx context.Context, usuarioID string) ([]*entity.Venta, error)
}
