package repository

import (
	"context"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas devuelven el usuario con sus roles; (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context) ([]*entity.User, error)
}

// RoleCount rol con el número de usuarios asignados.
type RoleCount struct {
	Role       entity.Role
	TotalUsers int
}

// RoleRepository catálogo de roles y asignación a usuarios.
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	ListWithCounts(ctx context.Context) ([]RoleCount, error)
	Assign(ctx context.Context, userID, roleID string) error
}
