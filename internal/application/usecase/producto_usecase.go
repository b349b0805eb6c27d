package usecase

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/ports"
	"github.com/pecuadex/pecuadex-api/internal/application/validation"
	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/listquery"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
	"github.com/pecuadex/pecuadex-api/pkg/logger"
)

// MaxManualSize tamaño máximo de un manual subido.
const MaxManualSize = 20 << 20

var precioMinimo = decimal.RequireFromString("0.01")

// ProductoUseCase CRUD de productos y alta/baja del manual que los acompaña.
type ProductoUseCase struct {
	repo           repository.ProductoRepository
	componenteRepo repository.ComponenteProductoRepository
	piezaRepo      repository.PiezaRepository
	comentarioRepo repository.ComentarioRepository
	manualRepo     repository.ManualRepository
	userRepo       repository.UserRepository
	docs           ports.DocumentStore
	log            *logger.Logger
	now            func() time.Time
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(
	repo repository.ProductoRepository,
	componenteRepo repository.ComponenteProductoRepository,
	piezaRepo repository.PiezaRepository,
	comentarioRepo repository.ComentarioRepository,
	manualRepo repository.ManualRepository,
	userRepo repository.UserRepository,
	docs ports.DocumentStore,
	log *logger.Logger,
) *ProductoUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductoUseCase{
		repo:           repo,
		componenteRepo: componenteRepo,
		piezaRepo:      piezaRepo,
		comentarioRepo: comentarioRepo,
		manualRepo:     manualRepo,
		userRepo:       userRepo,
		docs:           docs,
		log:            log.Component("productos"),
		now:            time.Now,
	}
}

func validateProducto(in dto.ProductoRequest) *validation.Checker {
	return validation.New().
		MinLen("nombre", in.Nombre, 3).
		MinLen("descripcion", in.Descripcion, 10).
		MinDecimal("precioSugerido", in.PrecioSugerido, precioMinimo).
		Required("imagen", in.Imagen)
}

func validateUpload(v *validation.Checker, up *dto.ManualUpload) {
	if up == nil {
		return
	}
	v.Required("tituloManual", up.Titulo)
	if !strings.EqualFold(filepath.Ext(up.FileName), ".pdf") && up.ContentType != "application/pdf" {
		v.Fail("archivoManual", "el manual debe ser un PDF")
	}
	if up.Size > MaxManualSize {
		v.Fail("archivoManual", "el archivo excede el tamaño permitido")
	}
}

// Create crea un producto.
func (uc *ProductoUseCase) Create(ctx context.Context, in dto.ProductoRequest) (*dto.ProductoResponse, error) {
	return uc.CreateConManual(ctx, in, nil)
}

// CreateConManual crea el producto y, si viene archivo, guarda el PDF y registra el manual.
func (uc *ProductoUseCase) CreateConManual(ctx context.Context, in dto.ProductoRequest, up *dto.ManualUpload) (*dto.ProductoResponse, error) {
	v := validateProducto(in)
	validateUpload(v, up)
	if err := v.Err(); err != nil {
		return nil, err
	}
	p := &entity.Producto{
		Nombre:         strings.TrimSpace(in.Nombre),
		Descripcion:    strings.TrimSpace(in.Descripcion),
		PrecioSugerido: in.PrecioSugerido,
		Imagen:         strings.TrimSpace(in.Imagen),
		FechaRegistro:  uc.now(),
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	out := dto.FromProducto(p)
	if up != nil {
		m, err := uc.storeManual(ctx, p.ID, up)
		if err != nil {
			return nil, err
		}
		out.Manuales = []dto.ManualResponse{dto.FromManual(m)}
	}
	return out, nil
}

// Update modifica un producto existente.
func (uc *ProductoUseCase) Update(ctx context.Context, id int64, in dto.ProductoRequest) (*dto.ProductoResponse, error) {
	return uc.UpdateConManual(ctx, id, in, nil)
}

// UpdateConManual modifica el producto; si viene archivo, reemplaza sus manuales.
func (uc *ProductoUseCase) UpdateConManual(ctx context.Context, id int64, in dto.ProductoRequest, up *dto.ManualUpload) (*dto.ProductoResponse, error) {
	v := validateProducto(in)
	validateUpload(v, up)
	if err := v.Err(); err != nil {
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
	p.Descripcion = strings.TrimSpace(in.Descripcion)
	p.PrecioSugerido = in.PrecioSugerido
	p.Imagen = strings.TrimSpace(in.Imagen)
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	out := dto.FromProducto(p)
	if up != nil {
		prev, err := uc.manualRepo.ListByProducto(ctx, id)
		if err != nil {
			return nil, err
		}
		// el nuevo se guarda antes de soltar los anteriores
		m, err := uc.storeManual(ctx, p.ID, up)
		if err != nil {
			return nil, err
		}
		for _, old := range prev {
			if err := uc.manualRepo.Delete(ctx, old.ID); err != nil {
				return nil, err
			}
			uc.removeFile(ctx, old)
		}
		out.Manuales = []dto.ManualResponse{dto.FromManual(m)}
	}
	return out, nil
}

// Delete elimina el producto junto con sus manuales y archivos.
// Si el producto tiene componentes o ventas devuelve ErrConflict.
func (uc *ProductoUseCase) Delete(ctx context.Context, id int64) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	comps, err := uc.componenteRepo.ListByProducto(ctx, id)
	if err != nil {
		return err
	}
	if len(comps) > 0 {
		return domain.ErrConflict
	}
	mans, err := uc.manualRepo.ListByProducto(ctx, id)
	if err != nil {
		return err
	}
	// el repositorio borra las filas de manuales con el producto; los archivos solo si eso funcionó
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, m := range mans {
		uc.removeFile(ctx, m)
	}
	return nil
}

// Get producto con componentes, comentarios y manuales.
func (uc *ProductoUseCase) Get(ctx context.Context, id int64) (*dto.ProductoResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromProducto(p)

	comps, err := uc.componenteRepo.ListByProducto(ctx, id)
	if err != nil {
		return nil, err
	}
	out.ComponentesProducto = make([]dto.ComponenteResponse, 0, len(comps))
	for _, c := range comps {
		pieza, err := uc.piezaRepo.GetByID(ctx, c.PiezaID)
		if err != nil {
			return nil, err
		}
		out.ComponentesProducto = append(out.ComponentesProducto, dto.ComponenteResponse{
			ProductoID:        c.ProductoID,
			PiezaID:           c.PiezaID,
			CantidadRequerida: c.CantidadRequerida,
			Pieza:             dto.FromPieza(pieza),
		})
	}

	coms, err := uc.comentarioRepo.ListByProducto(ctx, id)
	if err != nil {
		return nil, err
	}
	out.Comentarios = make([]dto.ComentarioResponse, 0, len(coms))
	for _, c := range coms {
		u, err := uc.userRepo.GetByID(ctx, c.UsuarioID)
		if err != nil {
			return nil, err
		}
		out.Comentarios = append(out.Comentarios, toComentarioResponse(c, u, p))
	}

	mans, err := uc.manualRepo.ListByProducto(ctx, id)
	if err != nil {
		return nil, err
	}
	out.Manuales = make([]dto.ManualResponse, 0, len(mans))
	for _, m := range mans {
		out.Manuales = append(out.Manuales, dto.FromManual(m))
	}
	return out, nil
}

// ProductoSpec búsqueda por nombre, descripción y precio.
var ProductoSpec = listquery.Spec[dto.ProductoResponse]{
	Noun: "productos",
	Search: func(p dto.ProductoResponse) []string {
		return []string{p.Nombre, p.Descripcion, p.PrecioSugerido.String()}
	},
	Sort: map[string]listquery.KeyFunc[dto.ProductoResponse]{
		"id":             func(p dto.ProductoResponse) any { return p.ID },
		"nombre":         func(p dto.ProductoResponse) any { return p.Nombre },
		"descripcion":    func(p dto.ProductoResponse) any { return p.Descripcion },
		"precioSugerido": func(p dto.ProductoResponse) any { return p.PrecioSugerido },
		"fechaRegistro":  func(p dto.ProductoResponse) any { return p.FechaRegistro },
	},
	Date: func(p dto.ProductoResponse) time.Time { return p.FechaRegistro },
}

// List productos con búsqueda, orden y paginación.
func (uc *ProductoUseCase) List(ctx context.Context, q listquery.Query) (listquery.Page[dto.ProductoResponse], error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return listquery.Page[dto.ProductoResponse]{}, err
	}
	items := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.FromProducto(p))
	}
	return listquery.Apply(items, q, ProductoSpec), nil
}

func (uc *ProductoUseCase) storeManual(ctx context.Context, productoID int64, up *dto.ManualUpload) (*entity.Manual, error) {
	key, url, err := uc.docs.Save(ctx, up.FileName, up.Content)
	if err != nil {
		return nil, err
	}
	m := &entity.Manual{
		ProductoID:   productoID,
		Titulo:       strings.TrimSpace(up.Titulo),
		URLDocumento: url,
		StorageKey:   key,
	}
	if err := uc.manualRepo.Create(ctx, m); err != nil {
		if derr := uc.docs.Delete(ctx, key); derr != nil {
			uc.log.Warn().Err(derr).Str("key", key).Msg("no se pudo borrar el archivo huérfano")
		}
		return nil, err
	}
	return m, nil
}

func (uc *ProductoUseCase) removeFile(ctx context.Context, m *entity.Manual) {
	if m.StorageKey == "" {
		return
	}
	if err := uc.docs.Delete(ctx, m.StorageKey); err != nil {
		uc.log.Warn().Err(err).Str("key", m.StorageKey).Msg("no se pudo borrar el archivo del manual")
	}
}
