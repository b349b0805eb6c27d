package repository

import (
	"context"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
)

// ProductoRepository define el puerto de persistencia para Producto (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductoRepository interface {
	Create(ctx context.Context, p *entity.Producto) error
	GetByID(ctx context.Context, id int64) (*entity.Producto, error)
	Update(ctx context.Context, p *entity.Producto) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entity.Producto, error)
}

// ComponenteProductoRepository lista de materiales producto → piezas.
type ComponenteProductoRepository interface {
	Create(ctx context.Context, c *entity.ComponenteProducto) error
	Delete(ctx context.Context, productoID, piezaID int64) error
	List(ctx context.Context) ([]*entity.ComponenteProducto, error)
	ListByProducto(ctx context.Context, productoID int64) ([]*entity.ComponenteProducto, error)
}
