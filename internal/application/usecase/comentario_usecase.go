package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/validation"
	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

// ComentarioUseCase reseñas de productos comprados.
type ComentarioUseCase struct {
	repo         repository.ComentarioRepository
	ventaRepo    repository.VentaRepository
	productoRepo repository.ProductoRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

// NewComentarioUseCase construye el caso de uso.
func NewComentarioUseCase(repo repository.ComentarioRepository, ventaRepo repository.VentaRepository, productoRepo repository.ProductoRepository, userRepo repository.UserRepository) *ComentarioUseCase {
	return &ComentarioUseCase{repo: repo, ventaRepo: ventaRepo, productoRepo: productoRepo, userRepo: userRepo, now: time.Now}
}

func validateComentario(in dto.ComentarioRequest) error {
	return validation.New().
		ID("productoId", in.ProductoID).
		MinLen("descripcion", in.Descripcion, 10).
		Range("calificacion", in.Calificacion, 1, 5).
		Err()
}

// Create registra la reseña del usuario. Solo se puede reseñar un producto comprado y una vez por venta.
func (uc *ComentarioUseCase) Create(ctx context.Context, userID string, in dto.ComentarioRequest) (*dto.ComentarioResponse, error) {
	if err := validateComentario(in); err != nil {
		return nil, err
	}
	producto, err := uc.productoRepo.GetByID(ctx, in.ProductoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	ventaID, err := uc.resolveVenta(ctx, userID, in.ProductoID, in.VentaID)
	if err != nil {
		return nil, err
	}
	c := &entity.Comentario{
		ProductoID:   in.ProductoID,
		VentaID:      &ventaID,
		UsuarioID:    userID,
		Descripcion:  strings.TrimSpace(in.Descripcion),
		Calificacion: in.Calificacion,
		Fecha:        uc.now(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := toComentarioResponse(c, u, producto)
	return &out, nil
}

// resolveVenta elige la venta a la que se liga la reseña.
// Sin ventaID toma la primera venta del usuario con el producto que aún no tenga reseña.
func (uc *ComentarioUseCase) resolveVenta(ctx context.Context, userID string, productoID int64, ventaID *int64) (int64, error) {
	ventas, err := uc.ventaRepo.ListByUsuario(ctx, userID)
	if err != nil {
		return 0, err
	}
	propios, err := uc.repo.ListByUsuario(ctx, userID)
	if err != nil {
		return 0, err
	}
	conResena := make(map[int64]bool, len(propios))
	for _, c := range propios {
		if c.ProductoID == productoID && c.VentaID != nil {
			conResena[*c.VentaID] = true
		}
	}

	compradas := 0
	for _, v := range ventas {
		if !ventaIncluye(v, productoID) {
			continue
		}
		if ventaID != nil && v.ID != *ventaID {
			continue
		}
		compradas++
		if !conResena[v.ID] {
			return v.ID, nil
		}
	}
	if compradas == 0 {
		return 0, domain.ErrForbidden
	}
	return 0, domain.ErrDuplicate
}

func ventaIncluye(v *entity.Venta, productoID int64) bool {
	for _, d := range v.Detalles {
		if d.ProductoID == productoID {
			return true
		}
	}
	return false
}

// Update modifica descripción y calificación. Solo el autor puede hacerlo.
func (uc *ComentarioUseCase) Update(ctx context.Context, userID string, id int64, in dto.ComentarioRequest) (*dto.ComentarioResponse, error) {
	if err := validation.New().
		MinLen("descripcion", in.Descripcion, 10).
		Range("calificacion", in.Calificacion, 1, 5).
		Err(); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.UsuarioID != userID {
		return nil, domain.ErrForbidden
	}
	c.Descripcion = strings.TrimSpace(in.Descripcion)
	c.Calificacion = in.Calificacion
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return uc.enrich(ctx, c)
}

// Delete elimina la reseña; el autor o un administrador.
func (uc *ComentarioUseCase) Delete(ctx context.Context, userID string, isAdmin bool, id int64) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if c.UsuarioID != userID && !isAdmin {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}

// List todas las reseñas (testimonios).
func (uc *ComentarioUseCase) List(ctx context.Context) ([]dto.ComentarioResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return uc.enrichAll(ctx, list)
}

// ListByProducto reseñas de un producto.
func (uc *ComentarioUseCase) ListByProducto(ctx context.Context, productoID int64) ([]dto.ComentarioResponse, error) {
	list, err := uc.repo.ListByProducto(ctx, productoID)
	if err != nil {
		return nil, err
	}
	return uc.enrichAll(ctx, list)
}

// Mine reseñas del usuario autenticado.
func (uc *ComentarioUseCase) Mine(ctx context.Context, userID string) ([]dto.ComentarioResponse, error) {
	list, err := uc.repo.ListByUsuario(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.enrichAll(ctx, list)
}

func (uc *ComentarioUseCase) enrich(ctx context.Context, c *entity.Comentario) (*dto.ComentarioResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, c.UsuarioID)
	if err != nil {
		return nil, err
	}
	p, err := uc.productoRepo.GetByID(ctx, c.ProductoID)
	if err != nil {
		return nil, err
	}
	out := toComentarioResponse(c, u, p)
	return &out, nil
}

func (uc *ComentarioUseCase) enrichAll(ctx context.Context, list []*entity.Comentario) ([]dto.ComentarioResponse, error) {
	users := map[string]*entity.User{}
	prods := map[int64]*entity.Producto{}
	out := make([]dto.ComentarioResponse, 0, len(list))
	for _, c := range list {
		u, ok := users[c.UsuarioID]
		if !ok {
			var err error
			if u, err = uc.userRepo.GetByID(ctx, c.UsuarioID); err != nil {
				return nil, err
			}
			users[c.UsuarioID] = u
		}
		p, ok := prods[c.ProductoID]
		if !ok {
			var err error
			if p, err = uc.productoRepo.GetByID(ctx, c.ProductoID); err != nil {
				return nil, err
			}
			prods[c.ProductoID] = p
		}
		out = append(out, toComentarioResponse(c, u, p))
	}
	return out, nil
}

func toComentarioResponse(c *entity.Comentario, u *entity.User, p *entity.Producto) dto.ComentarioResponse {
	out := dto.ComentarioResponse{
		ID:           c.ID,
		ProductoID:   c.ProductoID,
		VentaID:      c.VentaID,
		UsuarioID:    c.UsuarioID,
		Descripcion:  c.Descripcion,
		Calificacion: c.Calificacion,
		Fecha:        c.Fecha,
	}
	if u != nil {
		out.NombreCliente = u.FullName
	}
	if p != nil {
		out.NombreProducto = p.Nombre
	}
	return out
}
