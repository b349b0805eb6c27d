package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

var (
	_ repository.ComentarioRepository = (*ComentarioRepo)(nil)
	_ repository.CotizacionRepository = (*CotizacionRepo)(nil)
)

// ComentarioRepo reseñas sobre PostgreSQL. (venta_id, producto_id) es único.
type ComentarioRepo struct {
	q Querier
}

// NewComentarioRepository construye el adaptador.
func NewComentarioRepository(q Querier) *ComentarioRepo {
	return &ComentarioRepo{q: q}
}

const comentarioColumns = `id, producto_id, venta_id, usuario_id, descripcion, calificacion, fecha`

func scanComentario(row pgx.Row) (*entity.Comentario, error) {
	var c entity.Comentario
	if err := row.Scan(&c.ID, &c.ProductoID, &c.VentaID, &c.UsuarioID, &c.Descripcion, &c.Calificacion, &c.Fecha); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ComentarioRepo) Create(ctx context.Context, c *entity.Comentario) error {
	query := `
		INSERT INTO comentarios (producto_id, venta_id, usuario_id, descripcion, calificacion, fecha)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, c.ProductoID, c.VentaID, c.UsuarioID, c.Descripcion, c.Calificacion, c.Fecha).Scan(&c.ID)
	return mapWriteErr("insert comentario", err)
}

func (r *ComentarioRepo) GetByID(ctx context.Context, id int64) (*entity.Comentario, error) {
	c, err := scanComentario(r.q.QueryRow(ctx, `SELECT `+comentarioColumns+` FROM comentarios WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comentario: %w", err)
	}
	return c, nil
}

func (r *ComentarioRepo) Update(ctx context.Context, c *entity.Comentario) error {
	tag, err := r.q.Exec(ctx, `UPDATE comentarios SET descripcion = $2, calificacion = $3 WHERE id = $1`,
		c.ID, c.Descripcion, c.Calificacion)
	return affectedOne("update comentario", tag, err)
}

func (r *ComentarioRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM comentarios WHERE id = $1`, id)
	return affectedOne("delete comentario", tag, err)
}

func (r *ComentarioRepo) List(ctx context.Context) ([]*entity.Comentario, error) {
	return r.list(ctx, `SELECT `+comentarioColumns+` FROM comentarios ORDER BY id`)
}

func (r *ComentarioRepo) ListByProducto(ctx context.Context, productoID int64) ([]*entity.Comentario, error) {
	return r.list(ctx, `SELECT `+comentarioColumns+` FROM comentarios WHERE producto_id = $1 ORDER BY id`, productoID)
}

func (r *ComentarioRepo) ListByUsuario(ctx context.Context, usuarioID string) ([]*entity.Comentario, error) {
	return r.list(ctx, `SELECT `+comentarioColumns+` FROM comentarios WHERE usuario_id = $1 ORDER BY id`, usuarioID)
}

func (r *ComentarioRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Comentario, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comentarios: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Comentario, 0)
	for rows.Next() {
		c, err := scanComentario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comentario: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CotizacionRepo solicitudes de cotización sobre PostgreSQL.
type CotizacionRepo struct {
	q Querier
}

// NewCotizacionRepository construye el adaptador.
func NewCotizacionRepository(q Querier) *CotizacionRepo {
	return &CotizacionRepo{q: q}
}

const cotizacionColumns = `id, nombre_cliente, email_cliente, telefono, empresa, cantidad_dispositivos, cantidad_animales,
	tipo_ganado, hectareas, funcionalidades_requeridas, comentarios, precio_estimado, estado, fecha`

func scanCotizacion(row pgx.Row) (*entity.Cotizacion, error) {
	var c entity.Cotizacion
	var empresa, comentarios *string
	err := row.Scan(&c.ID, &c.NombreCliente, &c.EmailCliente, &c.Telefono, &empresa, &c.CantidadDispositivos,
		&c.CantidadAnimales, &c.TipoGanado, &c.Hectareas, &c.FuncionalidadesRequeridas, &comentarios,
		&c.PrecioEstimado, &c.Estado, &c.Fecha)
	if err != nil {
		return nil, err
	}
	c.Empresa, c.Comentarios = deref(empresa), deref(comentarios)
	return &c, nil
}

func (r *CotizacionRepo) Create(ctx context.Context, c *entity.Cotizacion) error {
	funcs := c.FuncionalidadesRequeridas
	if funcs == nil {
		funcs = []string{}
	}
	query := `
		INSERT INTO cotizaciones (nombre_cliente, email_cliente, telefono, empresa, cantidad_dispositivos,
			cantidad_animales, tipo_ganado, hectareas, funcionalidades_requeridas, comentarios, precio_estimado, estado, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.NombreCliente, c.EmailCliente, c.Telefono, nullString(c.Empresa), c.CantidadDispositivos,
		c.CantidadAnimales, c.TipoGanado, c.Hectareas, funcs, nullString(c.Comentarios),
		c.PrecioEstimado, c.Estado, c.Fecha,
	).Scan(&c.ID)
	return mapWriteErr("insert cotizacion", err)
}

func (r *CotizacionRepo) GetByID(ctx context.Context, id int64) (*entity.Cotizacion, error) {
	c, err := scanCotizacion(r.q.QueryRow(ctx, `SELECT `+cotizacionColumns+` FROM cotizaciones WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cotizacion: %w", err)
	}
	return c, nil
}

func (r *CotizacionRepo) UpdateEstado(ctx context.Context, id int64, estado string) error {
	tag, err := r.q.Exec(ctx, `UPDATE cotizaciones SET estado = $2 WHERE id = $1`, id, estado)
	return affectedOne("update estado cotizacion", tag, err)
}

func (r *CotizacionRepo) List(ctx context.Context) ([]*entity.Cotizacion, error) {
	rows, err := r.q.Query(ctx, `SELECT `+cotizacionColumns+` FROM cotizaciones ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list cotizaciones: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Cotizacion, 0)
	for rows.Next() {
		c, err := scanCotizacion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cotizacion: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
