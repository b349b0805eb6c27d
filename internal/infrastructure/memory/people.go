package memory

import (
	"context"
	"sort"

	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

type comentarioRepo struct{ s *Store }

func (r *comentarioRepo) Create(_ context.Context, c *entity.Comentario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.VentaID != nil {
		for _, o := range r.s.st.comentarios {
			if o.VentaID != nil && *o.VentaID == *c.VentaID && o.ProductoID == c.ProductoID {
				return domain.ErrDuplicate
			}
		}
	}
	c.ID = r.s.nextID()
	r.s.st.comentarios[c.ID] = *c
	return nil
}

func (r *comentarioRepo) GetByID(_ context.Context, id int64) (*entity.Comentario, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.st.comentarios[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *comentarioRepo) Update(_ context.Context, c *entity.Comentario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.comentarios[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.comentarios[c.ID] = *c
	return nil
}

func (r *comentarioRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.comentarios[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.st.comentarios, id)
	return nil
}

func (r *comentarioRepo) List(_ context.Context) ([]*entity.Comentario, error) {
	return r.list(func(*entity.Comentario) bool { return true }), nil
}

func (r *comentarioRepo) ListByProducto(_ context.Context, productoID int64) ([]*entity.Comentario, error) {
	return r.list(func(c *entity.Comentario) bool { return c.ProductoID == productoID }), nil
}

func (r *comentarioRepo) ListByUsuario(_ context.Context, usuarioID string) ([]*entity.Comentario, error) {
	return r.list(func(c *entity.Comentario) bool { return c.UsuarioID == usuarioID }), nil
}

func (r *comentarioRepo) list(keep func(*entity.Comentario) bool) []*entity.Comentario {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Comentario, 0)
	for _, id := range sortedKeys(r.s.st.comentarios) {
		c := r.s.st.comentarios[id]
		if keep(&c) {
			out = append(out, &c)
		}
	}
	return out
}

type cotizacionRepo struct{ s *Store }

func copyCotizacion(c entity.Cotizacion) *entity.Cotizacion {
	c.FuncionalidadesRequeridas = append([]string(nil), c.FuncionalidadesRequeridas...)
	return &c
}

func (r *cotizacionRepo) Create(_ context.Context, c *entity.Cotizacion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.nextID()
	r.s.st.cotizac[c.ID] = *copyCotizacion(*c)
	return nil
}

func (r *cotizacionRepo) GetByID(_ context.Context, id int64) (*entity.Cotizacion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.st.cotizac[id]
	if !ok {
		return nil, nil
	}
	return copyCotizacion(c), nil
}

func (r *cotizacionRepo) UpdateEstado(_ context.Context, id int64, estado string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.st.cotizac[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Estado = estado
	r.s.st.cotizac[id] = c
	return nil
}

func (r *cotizacionRepo) List(_ context.Context) ([]*entity.Cotizacion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Cotizacion, 0, len(r.s.st.cotizac))
	for _, id := range sortedKeys(r.s.st.cotizac) {
		out = append(out, copyCotizacion(r.s.st.cotizac[id]))
	}
	return out, nil
}

type userRepo struct{ s *Store }

func copyUser(u entity.User) *entity.User {
	u.Roles = append([]string(nil), u.Roles...)
	if u.LockoutEnd != nil {
		t := *u.LockoutEnd
		u.LockoutEnd = &t
	}
	return &u
}

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.st.users {
		if o.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	r.s.st.users[u.ID] = *copyUser(*u)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.st.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

// Update no modifica los roles; se asignan con RoleRepository.Assign.
func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.users[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	upd := copyUser(*u)
	upd.Roles = cur.Roles
	r.s.st.users[u.ID] = *upd
	return nil
}

func (r *userRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.s.st.users))
	for _, u := range r.s.st.users {
		out = append(out, copyUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

type roleRepo struct{ s *Store }

func (r *roleRepo) Create(_ context.Context, role *entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.st.roles {
		if o.Name == role.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.st.roles[role.ID] = *role
	return nil
}

func (r *roleRepo) GetByID(_ context.Context, id string) (*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	role, ok := r.s.st.roles[id]
	if !ok {
		return nil, nil
	}
	return &role, nil
}

func (r *roleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, role := range r.s.st.roles {
		if role.Name == name {
			return &role, nil
		}
	}
	return nil, nil
}

func (r *roleRepo) ListWithCounts(_ context.Context) ([]repository.RoleCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]repository.RoleCount, 0, len(r.s.st.roles))
	for _, role := range r.s.st.roles {
		n := 0
		for _, u := range r.s.st.users {
			if u.HasRole(role.Name) {
				n++
			}
		}
		out = append(out, repository.RoleCount{Role: role, TotalUsers: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Role.Name < out[j].Role.Name })
	return out, nil
}

func (r *roleRepo) Assign(_ context.Context, userID, roleID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	role, ok := r.s.st.roles[roleID]
	if !ok {
		return domain.ErrNotFound
	}
	if u.HasRole(role.Name) {
		return domain.ErrDuplicate
	}
	u.Roles = append(append([]string(nil), u.Roles...), role.Name)
	r.s.st.users[userID] = u
	return nil
}
