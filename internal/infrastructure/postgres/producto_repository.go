package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

var (
	_ repository.ProductoRepository           = (*ProductoRepo)(nil)
	_ repository.ComponenteProductoRepository = (*ComponenteRepo)(nil)
)

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL.
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

const productoColumns = `id, nombre, descripcion, precio_sugerido, imagen, fecha_registro`

func scanProducto(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	if err := row.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.PrecioSugerido, &p.Imagen, &p.FechaRegistro); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste el producto y asigna su ID.
func (r *ProductoRepo) Create(ctx context.Context, p *entity.Producto) error {
	query := `
		INSERT INTO productos (nombre, descripcion, precio_sugerido, imagen, fecha_registro)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, p.Nombre, p.Descripcion, p.PrecioSugerido, p.Imagen, p.FechaRegistro).Scan(&p.ID)
	return mapWriteErr("insert producto", err)
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductoRepo) GetByID(ctx context.Context, id int64) (*entity.Producto, error) {
	p, err := scanProducto(r.q.QueryRow(ctx, `SELECT `+productoColumns+` FROM productos WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// Update actualiza los datos editables.
func (r *ProductoRepo) Update(ctx context.Context, p *entity.Producto) error {
	query := `
		UPDATE productos SET nombre = $2, descripcion = $3, precio_sugerido = $4, imagen = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Nombre, p.Descripcion, p.PrecioSugerido, p.Imagen)
	return affectedOne("update producto", tag, err)
}

// Delete elimina el producto con sus manuales y comentarios (ON DELETE CASCADE).
// Con componentes o ventas asociados devuelve ErrConflict y no borra nada.
func (r *ProductoRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	return affectedOne("delete producto", tag, err)
}

// List todos los productos por ID.
func (r *ProductoRepo) List(ctx context.Context) ([]*entity.Producto, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productoColumns+` FROM productos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Producto, 0)
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ComponenteRepo lista de materiales sobre PostgreSQL.
type ComponenteRepo struct {
	q Querier
}

// NewComponenteRepository construye el adaptador.
func NewComponenteRepository(q Querier) *ComponenteRepo {
	return &ComponenteRepo{q: q}
}

// Create agrega la pieza al producto; el par repetido devuelve ErrDuplicate.
func (r *ComponenteRepo) Create(ctx context.Context, c *entity.ComponenteProducto) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO componentes_producto (producto_id, pieza_id, cantidad_requerida) VALUES ($1, $2, $3)`,
		c.ProductoID, c.PiezaID, c.CantidadRequerida)
	return mapWriteErr("insert componente", err)
}

func (r *ComponenteRepo) Delete(ctx context.Context, productoID, piezaID int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM componentes_producto WHERE producto_id = $1 AND pieza_id = $2`, productoID, piezaID)
	return affectedOne("delete componente", tag, err)
}

func (r *ComponenteRepo) List(ctx context.Context) ([]*entity.ComponenteProducto, error) {
	return r.list(ctx, `SELECT producto_id, pieza_id, cantidad_requerida FROM componentes_producto ORDER BY producto_id, pieza_id`)
}

func (r *ComponenteRepo) ListByProducto(ctx context.Context, productoID int64) ([]*entity.ComponenteProducto, error) {
	return r.list(ctx, `SELECT producto_id, pieza_id, cantidad_requerida FROM componentes_producto WHERE producto_id = $1 ORDER BY pieza_id`, productoID)
}

func (r *ComponenteRepo) list(ctx context.Context, query string, args ...any) ([]*entity.ComponenteProducto, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list componentes: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.ComponenteProducto, 0)
	for rows.Next() {
		var c entity.ComponenteProducto
		if err := rows.Scan(&c.ProductoID, &c.PiezaID, &c.CantidadRequerida); err != nil {
			return nil, fmt.Errorf("scan componente: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
