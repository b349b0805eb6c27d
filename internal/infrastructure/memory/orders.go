package memory

import (
	"context"
	"sort"

	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
)

func sortComponentes(cs []*entity.ComponenteProducto) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].ProductoID != cs[j].ProductoID {
			return cs[i].ProductoID < cs[j].ProductoID
		}
		return cs[i].PiezaID < cs[j].PiezaID
	})
}

// lastMovimiento último movimiento de la pieza; el llamador debe tener el lock.
func (s *Store) lastMovimiento(piezaID int64) *entity.MovimientoPieza {
	var last *entity.MovimientoPieza
	for _, m := range s.st.movimientos {
		if m.PiezaID != piezaID {
			continue
		}
		if last == nil || m.ID > last.ID {
			m := m
			last = &m
		}
	}
	return last
}

type movimientoRepo struct {
	s  *Store
	tx *txLog
}

func (r *movimientoRepo) Create(_ context.Context, m *entity.MovimientoPieza) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.piezas[m.PiezaID]; !ok {
		return domain.ErrConflict
	}
	m.ID = r.s.nextID()
	r.s.st.movimientos[m.ID] = *m
	id := m.ID
	r.tx.record(func(st *state) { delete(st.movimientos, id) })
	return nil
}

// LastForUpdate en memoria la serialización la da TxRunner.
func (r *movimientoRepo) LastForUpdate(_ context.Context, piezaID int64) (*entity.MovimientoPieza, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if _, ok := r.s.st.piezas[piezaID]; !ok {
		return nil, domain.ErrNotFound
	}
	return r.s.lastMovimiento(piezaID), nil
}

func (r *movimientoRepo) SetReferencia(_ context.Context, ids []int64, referencia string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		if _, ok := r.s.st.movimientos[id]; !ok {
			return domain.ErrNotFound
		}
	}
	for _, id := range ids {
		m := r.s.st.movimientos[id]
		prev := m.Referencia
		m.Referencia = referencia
		r.s.st.movimientos[id] = m
		r.tx.record(func(st *state) {
			if m, ok := st.movimientos[id]; ok {
				m.Referencia = prev
				st.movimientos[id] = m
			}
		})
	}
	return nil
}

func (r *movimientoRepo) List(_ context.Context) ([]*entity.MovimientoPieza, error) {
	return r.list(func(*entity.MovimientoPieza) bool { return true }), nil
}

func (r *movimientoRepo) ListByPieza(_ context.Context, piezaID int64) ([]*entity.MovimientoPieza, error) {
	return r.list(func(m *entity.MovimientoPieza) bool { return m.PiezaID == piezaID }), nil
}

func (r *movimientoRepo) list(keep func(*entity.MovimientoPieza) bool) []*entity.MovimientoPieza {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.MovimientoPieza, 0)
	for _, id := range sortedKeys(r.s.st.movimientos) {
		m := r.s.st.movimientos[id]
		if keep(&m) {
			out = append(out, &m)
		}
	}
	return out
}

type compraRepo struct {
	s  *Store
	tx *txLog
}

func copyCompra(c entity.Compra) *entity.Compra {
	c.Detalles = append([]entity.DetalleCompra(nil), c.Detalles...)
	return &c
}

func (r *compraRepo) Create(_ context.Context, c *entity.Compra) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.proveedores[c.ProveedorID]; !ok {
		return domain.ErrConflict
	}
	c.ID = r.s.nextID()
	for i := range c.Detalles {
		c.Detalles[i].ID = r.s.nextID()
		c.Detalles[i].CompraID = c.ID
	}
	r.s.st.compras[c.ID] = *copyCompra(*c)
	id := c.ID
	r.tx.record(func(st *state) { delete(st.compras, id) })
	return nil
}

func (r *compraRepo) GetByID(_ context.Context, id int64) (*entity.Compra, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.st.compras[id]
	if !ok {
		return nil, nil
	}
	return copyCompra(c), nil
}

func (r *compraRepo) List(_ context.Context) ([]*entity.Compra, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Compra, 0, len(r.s.st.compras))
	for _, id := range sortedKeys(r.s.st.compras) {
		out = append(out, copyCompra(r.s.st.compras[id]))
	}
	return out, nil
}

type ventaRepo struct {
	s  *Store
	tx *txLog
}

func copyVenta(v entity.Venta) *entity.Venta {
	v.Detalles = append([]entity.DetalleVenta(nil), v.Detalles...)
	return &v
}

func (r *ventaRepo) Create(_ context.Context, v *entity.Venta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.users[v.UsuarioID]; !ok {
		return domain.ErrConflict
	}
	v.ID = r.s.nextID()
	for i := range v.Detalles {
		if _, ok := r.s.st.productos[v.Detalles[i].ProductoID]; !ok {
			return domain.ErrConflict
		}
		v.Detalles[i].ID = r.s.nextID()
		v.Detalles[i].VentaID = v.ID
	}
	r.s.st.ventas[v.ID] = *copyVenta(*v)
	id := v.ID
	r.tx.record(func(st *state) { delete(st.ventas, id) })
	return nil
}

func (r *ventaRepo) GetByID(_ context.Context, id int64) (*entity.Venta, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.st.ventas[id]
	if !ok {
		return nil, nil
	}
	return copyVenta(v), nil
}

func (r *ventaRepo) List(_ context.Context) ([]*entity.Venta, error) {
	return r.list(func(*entity.Venta) bool { return true }), nil
}

func (r *ventaRepo) ListByUsuario(_ context.Context, usuarioID string) ([]*entity.Venta, error) {
	return r.list(func(v *entity.Venta) bool { return v.UsuarioID == usuarioID }), nil
}

func (r *ventaRepo) list(keep func(*entity.Venta) bool) []*entity.Venta {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Venta, 0)
	for _, id := range sortedKeys(r.s.st.ventas) {
		v := r.s.st.ventas[id]
		if keep(&v) {
			out = append(out, copyVenta(v))
		}
	}
	return out
}
