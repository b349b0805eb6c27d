package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/validation"
	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

// PiezaUseCase CRUD de piezas. Existencias y costo promedio se manejan vía movimientos.
type PiezaUseCase struct {
	repo repository.PiezaRepository
	now  func() time.Time
}

// NewPiezaUseCase construye el caso de uso.
func NewPiezaUseCase(repo repository.PiezaRepository) *PiezaUseCase {
	return &PiezaUseCase{repo: repo, now: time.Now}
}

func validatePieza(in *dto.PiezaRequest) error {
	if strings.TrimSpace(in.UnidadMedida) == "" {
		in.UnidadMedida = entity.UnidadMedidaDefault
	}
	return validation.New().
		MinLen("nombre", in.Nombre, 3).
		MinLen("descripcion", in.Descripcion, 10).
		MaxLen("unidadMedida", in.UnidadMedida, 50).
		Err()
}

// Create crea una pieza sin existencias.
func (uc *PiezaUseCase) Create(ctx context.Context, in dto.PiezaRequest) (*dto.PiezaResponse, error) {
	if err := validatePieza(&in); err != nil {
		return nil, err
	}
	p := &entity.Pieza{
		Nombre:        strings.TrimSpace(in.Nombre),
		UnidadMedida:  strings.TrimSpace(in.UnidadMedida),
		Descripcion:   strings.TrimSpace(in.Descripcion),
		FechaRegistro: uc.now(),
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return dto.FromPieza(p), nil
}

// Update modifica nombre, unidad y descripción.
func (uc *PiezaUseCase) Update(ctx context.Context, id int64, in dto.PiezaRequest) (*dto.PiezaResponse, error) {
	if err := validatePieza(&in); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Nombre = strings.TrimSpace(in.Nombre)
	p.UnidadMedida = strings.TrimSpace(in.UnidadMedida)
	p.Descripcion = strings.TrimSpace(in.Descripcion)
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return dto.FromPieza(p), nil
}

// Delete elimina una pieza. Con movimientos o componentes devuelve ErrConflict.
func (uc *PiezaUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// PiezaSpec búsqueda por nombre, descripción y unidad.
var PiezaSpec = listquery.Spec[dto.PiezaResponse]{
	Noun: "piezas",
	Search: func(p dto.PiezaResponse) []string {
		return []string{p.Nombre, p.Descripcion, p.UnidadMedida}
	},
	Sort: map[string]listquery.KeyFunc[dto.PiezaResponse]{
		"id":            func(p dto.PiezaResponse) any { return p.ID },
		"nombre":        func(p dto.PiezaResponse) any { return p.Nombre },
		"unidadMedida":  func(p dto.PiezaResponse) any { return p.UnidadMedida },
		"descripcion":   func(p dto.PiezaResponse) any { return p.Descripcion },
		"fechaRegistro": func(p dto.PiezaResponse) any { return p.FechaRegistro },
		"existencias":   func(p dto.PiezaResponse) any { return p.Existencias },
		"costoPromedio": func(p dto.PiezaResponse) any { return p.CostoPromedio },
	},
	Date: func(p dto.PiezaResponse) time.Time { return p.FechaRegistro },
}

// List piezas con existencias.
func (uc *PiezaUseCase) List(ctx context.Context, q listquery.Query) (listquery.Page[dto.PiezaResponse], error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return listquery.Page[dto.PiezaResponse]{}, err
	}
	items := make([]dto.PiezaResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.FromPieza(p))
	}
	return listquery.Apply(items, q, PiezaSpec), nil
}
