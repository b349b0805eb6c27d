package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

var (
	_ repository.PiezaRepository     = (*PiezaRepo)(nil)
	_ repository.ProveedorRepository = (*ProveedorRepo)(nil)
	_ repository.ManualRepository    = (*ManualRepo)(nil)
)

// PiezaRepo piezas con existencias y costo promedio del último movimiento.
type PiezaRepo struct {
	q Querier
}

// NewPiezaRepository construye el adaptador.
func NewPiezaRepository(q Querier) *PiezaRepo {
	return &PiezaRepo{q: q}
}

const piezaSelect = `
	SELECT p.id, p.nombre, p.unidad_medida, p.descripcion, p.fecha_registro,
	       COALESCE(lm.existencias, 0), COALESCE(lm.costo_promedio, 0)
	FROM piezas p
	LEFT JOIN LATERAL (
		SELECT m.existencias, m.costo_promedio
		FROM movimientos_pieza m
		WHERE m.pieza_id = p.id
		ORDER BY m.id DESC
		LIMIT 1
	) lm ON TRUE`

func scanPieza(row pgx.Row) (*entity.Pieza, error) {
	var p entity.Pieza
	err := row.Scan(&p.ID, &p.Nombre, &p.UnidadMedida, &p.Descripcion, &p.FechaRegistro, &p.Existencias, &p.CostoPromedio)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PiezaRepo) Create(ctx context.Context, p *entity.Pieza) error {
	query := `
		INSERT INTO piezas (nombre, unidad_medida, descripcion, fecha_registro)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, p.Nombre, p.UnidadMedida, p.Descripcion, p.FechaRegistro).Scan(&p.ID)
	return mapWriteErr("insert pieza", err)
}

func (r *PiezaRepo) GetByID(ctx context.Context, id int64) (*entity.Pieza, error) {
	p, err := scanPieza(r.q.QueryRow(ctx, piezaSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pieza: %w", err)
	}
	return p, nil
}

// Update solo modifica datos descriptivos; el saldo es del kardex.
func (r *PiezaRepo) Update(ctx context.Context, p *entity.Pieza) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE piezas SET nombre = $2, unidad_medida = $3, descripcion = $4 WHERE id = $1`,
		p.ID, p.Nombre, p.UnidadMedida, p.Descripcion)
	return affectedOne("update pieza", tag, err)
}

func (r *PiezaRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM piezas WHERE id = $1`, id)
	return affectedOne("delete pieza", tag, err)
}

func (r *PiezaRepo) List(ctx context.Context) ([]*entity.Pieza, error) {
	rows, err := r.q.Query(ctx, piezaSelect+` ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("list piezas: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Pieza, 0)
	for rows.Next() {
		p, err := scanPieza(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pieza: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ProveedorRepo proveedores sobre PostgreSQL.
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador.
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

func scanProveedor(row pgx.Row) (*entity.Proveedor, error) {
	var p entity.Proveedor
	var contacto, telefono, email *string
	if err := row.Scan(&p.ID, &p.NombreEmpresa, &contacto, &telefono, &email); err != nil {
		return nil, err
	}
	p.Contacto, p.Telefono, p.Email = deref(contacto), deref(telefono), deref(email)
	return &p, nil
}

func (r *ProveedorRepo) Create(ctx context.Context, p *entity.Proveedor) error {
	query := `
		INSERT INTO proveedores (nombre_empresa, contacto, telefono, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, p.NombreEmpresa, nullString(p.Contacto), nullString(p.Telefono), nullString(p.Email)).Scan(&p.ID)
	return mapWriteErr("insert proveedor", err)
}

func (r *ProveedorRepo) GetByID(ctx context.Context, id int64) (*entity.Proveedor, error) {
	p, err := scanProveedor(r.q.QueryRow(ctx,
		`SELECT id, nombre_empresa, contacto, telefono, email FROM proveedores WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return p, nil
}

func (r *ProveedorRepo) Update(ctx context.Context, p *entity.Proveedor) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE proveedores SET nombre_empresa = $2, contacto = $3, telefono = $4, email = $5 WHERE id = $1`,
		p.ID, p.NombreEmpresa, nullString(p.Contacto), nullString(p.Telefono), nullString(p.Email))
	return affectedOne("update proveedor", tag, err)
}

func (r *ProveedorRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM proveedores WHERE id = $1`, id)
	return affectedOne("delete proveedor", tag, err)
}

func (r *ProveedorRepo) List(ctx context.Context) ([]*entity.Proveedor, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre_empresa, contacto, telefono, email FROM proveedores ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Proveedor, 0)
	for rows.Next() {
		p, err := scanProveedor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ManualRepo manuales de producto sobre PostgreSQL.
type ManualRepo struct {
	q Querier
}

// NewManualRepository construye el adaptador.
func NewManualRepository(q Querier) *ManualRepo {
	return &ManualRepo{q: q}
}

const manualColumns = `id, producto_id, titulo, url_documento, storage_key`

func scanManual(row pgx.Row) (*entity.Manual, error) {
	var m entity.Manual
	var key *string
	if err := row.Scan(&m.ID, &m.ProductoID, &m.Titulo, &m.URLDocumento, &key); err != nil {
		return nil, err
	}
	m.StorageKey = deref(key)
	return &m, nil
}

func (r *ManualRepo) Create(ctx context.Context, m *entity.Manual) error {
	query := `
		INSERT INTO manuales (producto_id, titulo, url_documento, storage_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, m.ProductoID, m.Titulo, m.URLDocumento, nullString(m.StorageKey)).Scan(&m.ID)
	return mapWriteErr("insert manual", err)
}

func (r *ManualRepo) GetByID(ctx context.Context, id int64) (*entity.Manual, error) {
	m, err := scanManual(r.q.QueryRow(ctx, `SELECT `+manualColumns+` FROM manuales WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manual: %w", err)
	}
	return m, nil
}

func (r *ManualRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM manuales WHERE id = $1`, id)
	return affectedOne("delete manual", tag, err)
}

func (r *ManualRepo) List(ctx context.Context) ([]*entity.Manual, error) {
	return r.list(ctx, `SELECT `+manualColumns+` FROM manuales ORDER BY id`)
}

func (r *ManualRepo) ListByProducto(ctx context.Context, productoID int64) ([]*entity.Manual, error) {
	return r.list(ctx, `SELECT `+manualColumns+` FROM manuales WHERE producto_id = $1 ORDER BY id`, productoID)
}

func (r *ManualRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Manual, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list manuales: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Manual, 0)
	for rows.Next() {
		m, err := scanManual(rows)
		if err != nil {
			return nil, fmt.Errorf("scan manual: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
