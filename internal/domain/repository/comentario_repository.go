package repository

import (
	"context"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
)

// ComentarioRepository reseñas de productos.
type ComentarioRepository interface {
	Create(ctx context.Context, c *entity.Comentario) error
	GetByID(ctx context.Context, id int64) (*entity.Comentario, error)
	Update(ctx context.Context, c *entity.Comentario) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entity.Comentario, error)
	ListByProducto(ctx context.Context, productoID int64) ([]*entity.Comentario, error)
	ListByUsuario(ctx context.Context, usuarioID string) ([]*entity.Comentario, error)
}

// ManualRepository manuales por producto.
type ManualRepository interface {
	Create(ctx context.Context, m *entity.Manual) error
	GetByID(ctx context.Context, id int64) (*entity.Manual, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entity.Manual, error)
	ListByProducto(ctx context.Context, productoID int64) ([]*entity.Manual, error)
}
