package memory

import (
	"context"

	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
)

type productoRepo struct{ s *Store }

func (r *productoRepo) Create(_ context.Context, p *entity.Producto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.nextID()
	r.s.st.productos[p.ID] = *p
	return nil
}

func (r *productoRepo) GetByID(_ context.Context, id int64) (*entity.Producto, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.st.productos[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productoRepo) Update(_ context.Context, p *entity.Producto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.productos[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.productos[p.ID] = *p
	return nil
}

func (r *productoRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.productos[id]; !ok {
		return domain.ErrNotFound
	}
	for k := range r.s.st.componentes {
		if k[0] == id {
			return domain.ErrConflict
		}
	}
	for _, v := range r.s.st.ventas {
		for _, d := range v.Detalles {
			if d.ProductoID == id {
				return domain.ErrConflict
			}
		}
	}
	// manuales y comentarios caen con el producto
	for mid, m := range r.s.st.manuales {
		if m.ProductoID == id {
			delete(r.s.st.manuales, mid)
		}
	}
	for cid, c := range r.s.st.comentarios {
		if c.ProductoID == id {
			delete(r.s.st.comentarios, cid)
		}
	}
	delete(r.s.st.productos, id)
	return nil
}

func (r *productoRepo) List(_ context.Context) ([]*entity.Producto, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Producto, 0, len(r.s.st.productos))
	for _, id := range sortedKeys(r.s.st.productos) {
		p := r.s.st.productos[id]
		out = append(out, &p)
	}
	return out, nil
}

type componenteRepo struct{ s *Store }

func (r *componenteRepo) Create(_ context.Context, c *entity.ComponenteProducto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{c.ProductoID, c.PiezaID}
	if _, ok := r.s.st.componentes[key]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.st.productos[c.ProductoID]; !ok {
		return domain.ErrConflict
	}
	if _, ok := r.s.st.piezas[c.PiezaID]; !ok {
		return domain.ErrConflict
	}
	r.s.st.componentes[key] = *c
	return nil
}

func (r *componenteRepo) Delete(_ context.Context, productoID, piezaID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{productoID, piezaID}
	if _, ok := r.s.st.componentes[key]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.st.componentes, key)
	return nil
}

func (r *componenteRepo) List(ctx context.Context) ([]*entity.ComponenteProducto, error) {
	return r.list(func(*entity.ComponenteProducto) bool { return true }), nil
}

func (r *componenteRepo) ListByProducto(_ context.Context, productoID int64) ([]*entity.ComponenteProducto, error) {
	return r.list(func(c *entity.ComponenteProducto) bool { return c.ProductoID == productoID }), nil
}

func (r *componenteRepo) list(keep func(*entity.ComponenteProducto) bool) []*entity.ComponenteProducto {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.ComponenteProducto, 0)
	for _, c := range r.s.st.componentes {
		c := c
		if keep(&c) {
			out = append(out, &c)
		}
	}
	sortComponentes(out)
	return out
}

type piezaRepo struct{ s *Store }

// conSaldo completa existencias y costo promedio con el último movimiento de la pieza.
func (r *piezaRepo) conSaldo(p entity.Pieza) *entity.Pieza {
	if last := r.s.lastMovimiento(p.ID); last != nil {
		p.Existencias = last.Existencias
		p.CostoPromedio = last.CostoPromedio
	}
	return &p
}

func (r *piezaRepo) Create(_ context.Context, p *entity.Pieza) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.nextID()
	r.s.st.piezas[p.ID] = *p
	return nil
}

func (r *piezaRepo) GetByID(_ context.Context, id int64) (*entity.Pieza, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.st.piezas[id]
	if !ok {
		return nil, nil
	}
	return r.conSaldo(p), nil
}

func (r *piezaRepo) Update(_ context.Context, p *entity.Pieza) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.piezas[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.piezas[p.ID] = *p
	return nil
}

func (r *piezaRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.piezas[id]; !ok {
		return domain.ErrNotFound
	}
	for k := range r.s.st.componentes {
		if k[1] == id {
			return domain.ErrConflict
		}
	}
	if r.s.lastMovimiento(id) != nil {
		return domain.ErrConflict
	}
	delete(r.s.st.piezas, id)
	return nil
}

func (r *piezaRepo) List(_ context.Context) ([]*entity.Pieza, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Pieza, 0, len(r.s.st.piezas))
	for _, id := range sortedKeys(r.s.st.piezas) {
		out = append(out, r.conSaldo(r.s.st.piezas[id]))
	}
	return out, nil
}

type proveedorRepo struct{ s *Store }

func (r *proveedorRepo) Create(_ context.Context, p *entity.Proveedor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.nextID()
	r.s.st.proveedores[p.ID] = *p
	return nil
}

func (r *proveedorRepo) GetByID(_ context.Context, id int64) (*entity.Proveedor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.st.proveedores[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *proveedorRepo) Update(_ context.Context, p *entity.Proveedor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.proveedores[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.proveedores[p.ID] = *p
	return nil
}

func (r *proveedorRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.proveedores[id]; !ok {
		return domain.ErrNotFound
	}
	for _, c := range r.s.st.compras {
		if c.ProveedorID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.st.proveedores, id)
	return nil
}

func (r *proveedorRepo) List(_ context.Context) ([]*entity.Proveedor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Proveedor, 0, len(r.s.st.proveedores))
	for _, id := range sortedKeys(r.s.st.proveedores) {
		p := r.s.st.proveedores[id]
		out = append(out, &p)
	}
	return out, nil
}

type manualRepo struct{ s *Store }

func (r *manualRepo) Create(_ context.Context, m *entity.Manual) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.productos[m.ProductoID]; !ok {
		return domain.ErrConflict
	}
	m.ID = r.s.nextID()
	r.s.st.manuales[m.ID] = *m
	return nil
}

func (r *manualRepo) GetByID(_ context.Context, id int64) (*entity.Manual, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.st.manuales[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *manualRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.manuales[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.st.manuales, id)
	return nil
}

func (r *manualRepo) List(_ context.Context) ([]*entity.Manual, error) {
	return r.list(func(*entity.Manual) bool { return true }), nil
}

func (r *manualRepo) ListByProducto(_ context.Context, productoID int64) ([]*entity.Manual, error) {
	return r.list(func(m *entity.Manual) bool { return m.ProductoID == productoID }), nil
}

func (r *manualRepo) list(keep func(*entity.Manual) bool) []*entity.Manual {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Manual, 0)
	for _, id := range sortedKeys(r.s.st.manuales) {
		m := r.s.st.manuales[id]
		if keep(&m) {
			out = append(out, &m)
		}
	}
	return out
}
