package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

var _ repository.MovimientoPiezaRepository = (*MovimientoPiezaRepo)(nil)

// MovimientoPiezaRepo kardex sobre PostgreSQL (usable con pool o tx).
type MovimientoPiezaRepo struct {
	q Querier
}

// NewMovimientoPiezaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoPiezaRepository(q Querier) *MovimientoPiezaRepo {
	return &MovimientoPiezaRepo{q: q}
}

const movimientoColumns = `id, pieza_id, fecha, tipo_movimiento, cantidad, costo_unitario, costo_promedio,
	valor_debe, valor_haber, saldo_valor, existencias, referencia`

func scanMovimiento(row pgx.Row) (*entity.MovimientoPieza, error) {
	var m entity.MovimientoPieza
	var ref *string
	err := row.Scan(&m.ID, &m.PiezaID, &m.Fecha, &m.TipoMovimiento, &m.Cantidad, &m.CostoUnitario, &m.CostoPromedio,
		&m.ValorDebe, &m.ValorHaber, &m.SaldoValor, &m.Existencias, &ref)
	if err != nil {
		return nil, err
	}
	m.Referencia = deref(ref)
	return &m, nil
}

// Create persiste un movimiento con su saldo resultante.
func (r *MovimientoPiezaRepo) Create(ctx context.Context, m *entity.MovimientoPieza) error {
	query := `
		INSERT INTO movimientos_pieza (pieza_id, fecha, tipo_movimiento, cantidad, costo_unitario, costo_promedio,
			valor_debe, valor_haber, saldo_valor, existencias, referencia)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.PiezaID, m.Fecha, m.TipoMovimiento, m.Cantidad, m.CostoUnitario, m.CostoPromedio,
		m.ValorDebe, m.ValorHaber, m.SaldoValor, m.Existencias, nullString(m.Referencia),
	).Scan(&m.ID)
	return mapWriteErr("insert movimiento", err)
}

// LastForUpdate bloquea la fila de la pieza (SELECT FOR UPDATE) y devuelve su último movimiento.
// Los movimientos concurrentes de la misma pieza esperan al commit.
func (r *MovimientoPiezaRepo) LastForUpdate(ctx context.Context, piezaID int64) (*entity.MovimientoPieza, error) {
	var id int64
	if err := r.q.QueryRow(ctx, `SELECT id FROM piezas WHERE id = $1 FOR UPDATE`, piezaID).Scan(&id); err != nil {
		if noRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock pieza: %w", err)
	}
	m, err := scanMovimiento(r.q.QueryRow(ctx,
		`SELECT `+movimientoColumns+` FROM movimientos_pieza WHERE pieza_id = $1 ORDER BY id DESC LIMIT 1`, piezaID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("last movimiento: %w", err)
	}
	return m, nil
}

// SetReferencia actualiza la referencia de los movimientos indicados.
func (r *MovimientoPiezaRepo) SetReferencia(ctx context.Context, ids []int64, referencia string) error {
	if len(ids) == 0 {
		return nil
	}
	tag, err := r.q.Exec(ctx, `UPDATE movimientos_pieza SET referencia = $1 WHERE id = ANY($2)`, nullString(referencia), ids)
	if err != nil {
		return mapWriteErr("update referencia movimiento", err)
	}
	if tag.RowsAffected() != int64(len(ids)) {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MovimientoPiezaRepo) List(ctx context.Context) ([]*entity.MovimientoPieza, error) {
	return r.list(ctx, `SELECT `+movimientoColumns+` FROM movimientos_pieza ORDER BY id`)
}

func (r *MovimientoPiezaRepo) ListByPieza(ctx context.Context, piezaID int64) ([]*entity.MovimientoPieza, error) {
	return r.list(ctx, `SELECT `+movimientoColumns+` FROM movimientos_pieza WHERE pieza_id = $1 ORDER BY id`, piezaID)
}

func (r *MovimientoPiezaRepo) list(ctx context.Context, query string, args ...any) ([]*entity.MovimientoPieza, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.MovimientoPieza, 0)
	for rows.Next() {
		m, err := scanMovimiento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
