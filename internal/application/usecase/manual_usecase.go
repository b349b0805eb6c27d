package usecase

import (
	"context"
	"strings"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/ports"
	"github.com/pecuadex/pecuadex-api/internal/application/validation"
	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
	"github.com/pecuadex/pecuadex-api/pkg/logger"
)

// ManualUseCase manuales de producto registrados por enlace.
type ManualUseCase struct {
	repo         repository.ManualRepository
	productoRepo repository.ProductoRepository
	docs         ports.DocumentStore
	log          *logger.Logger
}

// NewManualUseCase construye el caso de uso.
func NewManualUseCase(repo repository.ManualRepository, productoRepo repository.ProductoRepository, docs ports.DocumentStore, log *logger.Logger) *ManualUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ManualUseCase{repo: repo, productoRepo: productoRepo, docs: docs, log: log.Component("manuales")}
}

// Create registra un manual que apunta a un documento externo.
func (uc *ManualUseCase) Create(ctx context.Context, in dto.ManualRequest) (*dto.ManualResponse, error) {
	if err := validation.New().
		ID("productoId", in.ProductoID).
		Required("titulo", in.Titulo).
		Required("urlDocumento", in.URLDocumento).
		Err(); err != nil {
		return nil, err
	}
	p, err := uc.productoRepo.GetByID(ctx, in.ProductoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	m := &entity.Manual{ProductoID: in.ProductoID, Titulo: strings.TrimSpace(in.Titulo), URLDocumento: strings.TrimSpace(in.URLDocumento)}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	out := dto.FromManual(m)
	return &out, nil
}

// Delete elimina el manual y, si fue subido, su archivo.
func (uc *ManualUseCase) Delete(ctx context.Context, id int64) error {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	if m.StorageKey != "" {
		if err := uc.docs.Delete(ctx, m.StorageKey); err != nil {
			uc.log.Warn().Err(err).Str("key", m.StorageKey).Msg("no se pudo borrar el archivo del manual")
		}
	}
	return nil
}

// List todos los manuales.
func (uc *ManualUseCase) List(ctx context.Context) ([]dto.ManualResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toManuales(list), nil
}

// ListByProducto manuales de un producto.
func (uc *ManualUseCase) ListByProducto(ctx context.Context, productoID int64) ([]dto.ManualResponse, error) {
	list, err := uc.repo.ListByProducto(ctx, productoID)
	if err != nil {
		return nil, err
	}
	return toManuales(list), nil
}

func toManuales(list []*entity.Manual) []dto.ManualResponse {
	out := make([]dto.ManualResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.FromManual(m))
	}
	return out
}
