// Package memory implementa los repositorios en memoria (DB_DRIVER=memory y pruebas).
// Las entidades se guardan por valor para que los llamadores no compartan punteros con el almacén.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

type state struct {
	seq         int64
	productos   map[int64]entity.Producto
	piezas      map[int64]entity.Pieza
	proveedores map[int64]entity.Proveedor
	componentes map[[2]int64]entity.ComponenteProducto
	movimientos map[int64]entity.MovimientoPieza
	compras     map[int64]entity.Compra
	ventas      map[int64]entity.Venta
	comentarios map[int64]entity.Comentario
	manuales    map[int64]entity.Manual
	cotizac     map[int64]entity.Cotizacion
	users       map[string]entity.User
	roles       map[string]entity.Role
}

func newState() state {
	return state{
		productos:   map[int64]entity.Producto{},
		piezas:      map[int64]entity.Pieza{},
		proveedores: map[int64]entity.Proveedor{},
		componentes: map[[2]int64]entity.ComponenteProducto{},
		movimientos: map[int64]entity.MovimientoPieza{},
		compras:     map[int64]entity.Compra{},
		ventas:      map[int64]entity.Venta{},
		comentarios: map[int64]entity.Comentario{},
		manuales:    map[int64]entity.Manual{},
		cotizac:     map[int64]entity.Cotizacion{},
		users:       map[string]entity.User{},
		roles:       map[string]entity.Role{},
	}
}

// Store almacén compartido por todos los repositorios en memoria.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	st   state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) nextID() int64 {
	s.st.seq++
	return s.st.seq
}

// Repos alias de repository.Repos; repositorios del almacén en memoria.
type Repos = repository.Repos

// Repos construye todos los repositorios del almacén.
func (s *Store) Repos() Repos {
	return Repos{
		Productos:   &productoRepo{s},
		Componentes: &componenteRepo{s},
		Piezas:      &piezaRepo{s},
		Proveedores: &proveedorRepo{s},
		Movimientos: &movimientoRepo{s: s},
		Compras:     &compraRepo{s: s},
		Ventas:      &ventaRepo{s: s},
		Comentarios: &comentarioRepo{s},
		Manuales:    &manualRepo{s},
		Cotizac:     &cotizacionRepo{s},
		Users:       &userRepo{s},
		Roles:       &roleRepo{s},
	}
}

// txLog escrituras de una transacción en curso, en orden, para deshacerlas en rollback.
// Las funciones se aplican con mu tomado. Un *txLog nil no registra nada.
type txLog struct {
	undo []func(st *state)
}

func (l *txLog) record(f func(st *state)) {
	if l != nil {
		l.undo = append(l.undo, f)
	}
}

func (l *txLog) rollback(st *state) {
	for i := len(l.undo) - 1; i >= 0; i-- {
		l.undo[i](st)
	}
}

// TxRunner serializa las transacciones; si fn devuelve error deshace solo sus propias escrituras.
// Los ids consumidos no se devuelven a la secuencia.
type TxRunner struct {
	s *Store
}

// NewTxRunner crea el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con los repositorios de movimientos, compras y ventas.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovimientoPiezaRepository,
	compraRepo repository.CompraRepository,
	ventaRepo repository.VentaRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &txLog{}
	if err := fn(&movimientoRepo{s: r.s, tx: tx}, &compraRepo{s: r.s, tx: tx}, &ventaRepo{s: r.s, tx: tx}); err != nil {
		r.s.mu.Lock()
		tx.rollback(&r.s.st)
		r.s.mu.Unlock()
		return err
	}
	return nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
