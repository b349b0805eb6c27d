package repository

import (
	"context"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
)

// ProveedorRepository persistencia de proveedores.
type ProveedorRepository interface {
	Create(ctx context.Context, p *entity.Proveedor) error
	GetByID(ctx context.Context, id int64) (*entity.Proveedor, error)
	Update(ctx context.Context, p *entity.Proveedor) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entity.Proveedor, error)
}
