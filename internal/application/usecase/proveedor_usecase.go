package usecase

import (
	"context"
	"strings"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/validation"
	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

// ProveedorUseCase CRUD de proveedores.
type ProveedorUseCase struct {
	repo repository.ProveedorRepository
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(repo repository.ProveedorRepository) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo}
}

func validateProveedor(in dto.ProveedorRequest) error {
	return validation.New().
		MinLen("nombreEmpresa", in.NombreEmpresa, 3).
		MaxLen("nombreEmpresa", in.NombreEmpresa, 100).
		MaxLen("contacto", in.Contacto, 100).
		MaxLen("telefono", in.Telefono, 20).
		OptionalEmail("email", in.Email).
		MaxLen("email", in.Email, 100).
		Err()
}

func applyProveedor(p *entity.Proveedor, in dto.ProveedorRequest) {
	p.NombreEmpresa = strings.TrimSpace(in.NombreEmpresa)
	p.Contacto = strings.TrimSpace(in.Contacto)
	p.Telefono = strings.TrimSpace(in.Telefono)
	p.Email = strings.TrimSpace(in.Email)
}

// Create crea un proveedor.
func (uc *ProveedorUseCase) Create(ctx context.Context, in dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	if err := validateProveedor(in); err != nil {
		return nil, err
	}
	p := &entity.Proveedor{}
	applyProveedor(p, in)
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return dto.FromProveedor(p), nil
}

// Update modifica el proveedor. Si el cuerpo trae id debe coincidir con el de la ruta.
func (uc *ProveedorUseCase) Update(ctx context.Context, id int64, in dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	if in.ID != 0 && in.ID != id {
		return nil, validation.New().Fail("id", "no coincide con el de la ruta").Err()
	}
	if err := validateProveedor(in); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	applyProveedor(p, in)
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return dto.FromProveedor(p), nil
}

// Delete elimina un proveedor. Con compras registradas devuelve ErrConflict.
func (uc *ProveedorUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// ProveedorSpec búsqueda por empresa, contacto, teléfono y email.
var ProveedorSpec = listquery.Spec[dto.ProveedorResponse]{
	Noun: "proveedores",
	Search: func(p dto.ProveedorResponse) []string {
		return []string{p.NombreEmpresa, p.Contacto, p.Telefono, p.Email}
	},
	Sort: map[string]listquery.KeyFunc[dto.ProveedorResponse]{
		"id":            func(p dto.ProveedorResponse) any { return p.ID },
		"nombreEmpresa": func(p dto.ProveedorResponse) any { return p.NombreEmpresa },
		"contacto":      func(p dto.ProveedorResponse) any { return p.Contacto },
		"telefono":      func(p dto.ProveedorResponse) any { return p.Telefono },
		"email":         func(p dto.ProveedorResponse) any { return p.Email },
	},
}

// List proveedores.
func (uc *ProveedorUseCase) List(ctx context.Context, q listquery.Query) (listquery.Page[dto.ProveedorResponse], error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return listquery.Page[dto.ProveedorResponse]{}, err
	}
	items := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.FromProveedor(p))
	}
	return listquery.Apply(items, q, ProveedorSpec), nil
}
