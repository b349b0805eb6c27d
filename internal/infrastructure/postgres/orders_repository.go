package postgres

import (
	"context"
	"fmt"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

var (
	_ repository.CompraRepository = (*CompraRepo)(nil)
	_ repository.VentaRepository  = (*VentaRepo)(nil)
)

// CompraRepo compras con sus detalles. Create debe correr dentro de una tx.
type CompraRepo struct {
	q Querier
}

// NewCompraRepository construye el adaptador.
func NewCompraRepository(q Querier) *CompraRepo {
	return &CompraRepo{q: q}
}

func (r *CompraRepo) Create(ctx context.Context, c *entity.Compra) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO compras (proveedor_id, fecha) VALUES ($1, $2) RETURNING id`,
		c.ProveedorID, c.Fecha).Scan(&c.ID)
	if err != nil {
		return mapWriteErr("insert compra", err)
	}
	query := `
		INSERT INTO detalles_compra (compra_id, movimientos_pieza_id, pieza_id, presentacion, cantidad, precio_total)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	for i := range c.Detalles {
		d := &c.Detalles[i]
		d.CompraID = c.ID
		if err := r.q.QueryRow(ctx, query, c.ID, d.MovimientosPiezaID, d.PiezaID, d.Presentacion, d.Cantidad, d.PrecioTotal).Scan(&d.ID); err != nil {
			return mapWriteErr("insert detalle compra", err)
		}
	}
	return nil
}

func (r *CompraRepo) GetByID(ctx context.Context, id int64) (*entity.Compra, error) {
	list, err := r.list(ctx, `WHERE c.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *CompraRepo) List(ctx context.Context) ([]*entity.Compra, error) {
	return r.list(ctx, ``)
}

// list carga cabeceras y detalles en dos consultas.
func (r *CompraRepo) list(ctx context.Context, where string, args ...any) ([]*entity.Compra, error) {
	rows, err := r.q.Query(ctx, `SELECT c.id, c.proveedor_id, c.fecha FROM compras c `+where+` ORDER BY c.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list compras: %w", err)
	}
	out := make([]*entity.Compra, 0)
	byID := map[int64]*entity.Compra{}
	for rows.Next() {
		var c entity.Compra
		if err := rows.Scan(&c.ID, &c.ProveedorID, &c.Fecha); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan compra: %w", err)
		}
		out = append(out, &c)
		byID[c.ID] = &c
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	drows, err := r.q.Query(ctx, `
		SELECT d.id, d.compra_id, d.movimientos_pieza_id, d.pieza_id, d.presentacion, d.cantidad, d.precio_total
		FROM detalles_compra d JOIN compras c ON c.id = d.compra_id `+where+` ORDER BY d.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list detalles compra: %w", err)
	}
	defer drows.Close()
	for drows.Next() {
		var d entity.DetalleCompra
		if err := drows.Scan(&d.ID, &d.CompraID, &d.MovimientosPiezaID, &d.PiezaID, &d.Presentacion, &d.Cantidad, &d.PrecioTotal); err != nil {
			return nil, fmt.Errorf("scan detalle compra: %w", err)
		}
		if c := byID[d.CompraID]; c != nil {
			c.Detalles = append(c.Detalles, d)
		}
	}
	return out, drows.Err()
}

// VentaRepo ventas con sus detalles. Create debe correr dentro de una tx.
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador.
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

func (r *VentaRepo) Create(ctx context.Context, v *entity.Venta) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO ventas (usuario_id, fecha, total, estado) VALUES ($1, $2, $3, $4) RETURNING id`,
		v.UsuarioID, v.Fecha, v.Total, v.Estado).Scan(&v.ID)
	if err != nil {
		return mapWriteErr("insert venta", err)
	}
	query := `
		INSERT INTO detalles_venta (venta_id, producto_id, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	for i := range v.Detalles {
		d := &v.Detalles[i]
		d.VentaID = v.ID
		if err := r.q.QueryRow(ctx, query, v.ID, d.ProductoID, d.Cantidad, d.PrecioUnitario, d.Subtotal).Scan(&d.ID); err != nil {
			return mapWriteErr("insert detalle venta", err)
		}
	}
	return nil
}

func (r *VentaRepo) GetByID(ctx context.Context, id int64) (*entity.Venta, error) {
	list, err := r.list(ctx, `WHERE v.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *VentaRepo) List(ctx context.Context) ([]*entity.Venta, error) {
	return r.list(ctx, ``)
}

func (r *VentaRepo) ListByUsuario(ctx context.Context, usuarioID string) ([]*entity.Venta, error) {
	return r.list(ctx, `WHERE v.usuario_id = $1`, usuarioID)
}

func (r *VentaRepo) list(ctx context.Context, where string, args ...any) ([]*entity.Venta, error) {
	rows, err := r.q.Query(ctx, `SELECT v.id, v.usuario_id, v.fecha, v.total, v.estado FROM ventas v `+where+` ORDER BY v.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	out := make([]*entity.Venta, 0)
	byID := map[int64]*entity.Venta{}
	for rows.Next() {
		var v entity.Venta
		if err := rows.Scan(&v.ID, &v.UsuarioID, &v.Fecha, &v.Total, &v.Estado); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		out = append(out, &v)
		byID[v.ID] = &v
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	drows, err := r.q.Query(ctx, `
		SELECT d.id, d.venta_id, d.producto_id, d.cantidad, d.precio_unitario, d.subtotal
		FROM detalles_venta d JOIN ventas v ON v.id = d.venta_id `+where+` ORDER BY d.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list detalles venta: %w", err)
	}
	defer drows.Close()
	for drows.Next() {
		var d entity.DetalleVenta
		if err := drows.Scan(&d.ID, &d.VentaID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitario, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle venta: %w", err)
		}
		if v := byID[d.VentaID]; v != nil {
			v.Detalles = append(v.Detalles, d)
		}
	}
	return out, drows.Err()
}
