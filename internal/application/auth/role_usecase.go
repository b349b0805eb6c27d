package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/validation"
	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
)

// RoleUseCase administración de roles.
type RoleUseCase struct {
	roleRepo repository.RoleRepository
	userRepo repository.UserRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(roleRepo repository.RoleRepository, userRepo repository.UserRepository) *RoleUseCase {
	return &RoleUseCase{roleRepo: roleRepo, userRepo: userRepo}
}

// List roles con su número de usuarios.
func (uc *RoleUseCase) List(ctx context.Context) ([]dto.RoleResponse, error) {
	rows, err := uc.roleRepo.ListWithCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.RoleResponse{ID: r.Role.ID, Name: r.Role.Name, TotalUsers: r.TotalUsers})
	}
	return out, nil
}

// Create da de alta un rol; nombre repetido -> ErrDuplicate.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	name := strings.TrimSpace(in.RoleName)
	if err := validation.New().MinLen("roleName", name, 3).MaxLen("roleName", name, 50).Err(); err != nil {
		return nil, err
	}
	existing, err := uc.roleRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	role := &entity.Role{ID: uuid.New().String(), Name: name}
	if err := uc.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return &dto.RoleResponse{ID: role.ID, Name: role.Name}, nil
}

// Assign agrega el rol al usuario.
func (uc *RoleUseCase) Assign(ctx context.Context, in dto.AssignRoleRequest) error {
	if err := validation.New().Required("userId", in.UserID).Required("roleId", in.RoleID).Err(); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	role, err := uc.roleRepo.GetByID(ctx, in.RoleID)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrNotFound
	}
	return uc.roleRepo.Assign(ctx, user.ID, role.ID)
}

// EnsureRoles crea los roles base si faltan (seed y modo memoria).
func (uc *RoleUseCase) EnsureRoles(ctx context.Context, names ...string) error {
	for _, n := range names {
		r, err := uc.roleRepo.GetByName(ctx, n)
		if err != nil {
			return err
		}
		if r != nil {
			continue
		}
		if err := uc.roleRepo.Create(ctx, &entity.Role{ID: uuid.New().String(), Name: n}); err != nil {
			return err
		}
	}
	return nil
}
