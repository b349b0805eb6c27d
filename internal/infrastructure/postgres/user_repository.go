package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.RoleRepository = (*RoleRepo)(nil)
)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL. Los roles salen de user_roles.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userSelect = `
	SELECT u.id, u.email, u.full_name, u.password_hash, u.phone_number, u.phone_number_confirmed,
	       u.access_failed_count, u.lockout_end, u.created_at, u.updated_at,
	       COALESCE(array_agg(r.name ORDER BY r.name) FILTER (WHERE r.name IS NOT NULL), '{}')
	FROM users u
	LEFT JOIN user_roles ur ON ur.user_id = u.id
	LEFT JOIN roles r ON r.id = ur.role_id`

const userGroupBy = ` GROUP BY u.id`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var phone *string
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &phone, &u.PhoneNumberConfirmed,
		&u.AccessFailedCount, &u.LockoutEnd, &u.CreatedAt, &u.UpdatedAt, &u.Roles)
	if err != nil {
		return nil, err
	}
	u.PhoneNumber = deref(phone)
	return &u, nil
}

// Create persiste el usuario y le asigna los roles indicados por nombre.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, full_name, password_hash, phone_number, phone_number_confirmed,
			access_failed_count, lockout_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.FullName, user.PasswordHash, nullString(user.PhoneNumber), user.PhoneNumberConfirmed,
		user.AccessFailedCount, user.LockoutEnd, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("insert user", err)
	}
	if len(user.Roles) == 0 {
		return nil
	}
	_, err = r.q.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id) SELECT $1, id FROM roles WHERE name = ANY($2) ON CONFLICT DO NOTHING`,
		user.ID, user.Roles)
	return mapWriteErr("insert user roles", err)
}

// GetByID devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `WHERE u.id = $1`, id)
}

// GetByEmail busca por email exacto (se guarda en minúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `WHERE u.email = $1`, email)
}

func (r *UserRepo) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, userSelect+` `+where+userGroupBy, arg))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Update actualiza datos y contadores de acceso. Los roles se gestionan con RoleRepo.Assign.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET email = $2, full_name = $3, password_hash = $4, phone_number = $5,
			phone_number_confirmed = $6, access_failed_count = $7, lockout_end = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.FullName, user.PasswordHash, nullString(user.PhoneNumber),
		user.PhoneNumberConfirmed, user.AccessFailedCount, user.LockoutEnd, user.UpdatedAt,
	)
	return affectedOne("update user", tag, err)
}

// List usuarios ordenados por email.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, userSelect+userGroupBy+` ORDER BY u.email`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// RoleRepo catálogo de roles sobre PostgreSQL.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	_, err := r.q.Exec(ctx, `INSERT INTO roles (id, name) VALUES ($1, $2)`, role.ID, role.Name)
	return mapWriteErr("insert role", err)
}

func (r *RoleRepo) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	return r.findOne(ctx, `SELECT id, name FROM roles WHERE id = $1`, id)
}

func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.findOne(ctx, `SELECT id, name FROM roles WHERE name = $1`, name)
}

func (r *RoleRepo) findOne(ctx context.Context, query string, arg any) (*entity.Role, error) {
	var role entity.Role
	if err := r.q.QueryRow(ctx, query, arg).Scan(&role.ID, &role.Name); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

// ListWithCounts roles con el número de usuarios asignados, por nombre.
func (r *RoleRepo) ListWithCounts(ctx context.Context) ([]repository.RoleCount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT r.id, r.name, COUNT(ur.user_id)
		FROM roles r LEFT JOIN user_roles ur ON ur.role_id = r.id
		GROUP BY r.id, r.name
		ORDER BY r.name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	out := make([]repository.RoleCount, 0)
	for rows.Next() {
		var rc repository.RoleCount
		if err := rows.Scan(&rc.Role.ID, &rc.Role.Name, &rc.TotalUsers); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

// Assign agrega el rol al usuario. Si ya lo tiene devuelve ErrDuplicate; si alguno no existe, ErrNotFound.
func (r *RoleRepo) Assign(ctx context.Context, userID, roleID string) error {
	_, err := r.q.Exec(ctx, `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, userID, roleID)
	if err != nil && isForeignKeyViolation(err) {
		return domain.ErrNotFound
	}
	return mapWriteErr("assign role", err)
}

// Repos alias de repository.Repos; repositorios sobre PostgreSQL.
type Repos = repository.Repos

// NewRepos construye todos los repositorios sobre q.
func NewRepos(q Querier) Repos {
	return Repos{
		Productos:   NewProductoRepository(q),
		Componentes: NewComponenteRepository(q),
		Piezas:      NewPiezaRepository(q),
		Proveedores: NewProveedorRepository(q),
		Movimientos: NewMovimientoPiezaRepository(q),
		Compras:     NewCompraRepository(q),
		Ventas:      NewVentaRepository(q),
		Comentarios: NewComentarioRepository(q),
		Manuales:    NewManualRepository(q),
		Cotizac:     NewCotizacionRepository(q),
		Users:       NewUserRepository(q),
		Roles:       NewRoleRepository(q),
	}
}
