package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/ports"
	"github.com/pecuadex/pecuadex-api/internal/application/validation"
	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
	"github.com/pecuadex/pecuadex-api/pkg/jwt"
	"github.com/pecuadex/pecuadex-api/pkg/logger"
)

const (
	// MaxFailedAccess intentos fallidos antes de bloquear la cuenta.
	MaxFailedAccess = 5
	// LockoutDuration tiempo de bloqueo tras MaxFailedAccess fallos.
	LockoutDuration = 15 * time.Minute
	// ResetTokenTTL vigencia del token de restablecimiento.
	ResetTokenTTL = 15 * time.Minute

	minPasswordLen = 6
	refreshPrefix  = "refresh:"
	resetPrefix    = "reset:"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
	RefreshTTL time.Duration
}

// AuthUseCase casos de uso de cuenta: registro, login con bloqueo, refresh y restablecimiento de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   ports.TokenStore
	mailer   ports.Mailer
	jwtCfg   JWTConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokens ports.TokenStore, mailer ports.Mailer, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if jwtCfg.RefreshTTL <= 0 {
		jwtCfg.RefreshTTL = 7 * 24 * time.Hour
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
		jwtCfg:   jwtCfg,
		log:      log.Component("auth"),
		now:      time.Now,
	}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Register crea una cuenta con rol User (o Client si se solicita). Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	v := validation.New().
		Required("fullName", in.FullName).
		Email("email", in.Email).
		MinLen("password", in.Password, minPasswordLen)
	roles := make([]string, 0, len(in.Roles))
	for _, r := range in.Roles {
		if r != entity.RoleUser && r != entity.RoleClient {
			v.Fail("roles", "solo se permiten los roles User o Client")
			continue
		}
		roles = append(roles, r)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		roles = []string{entity.RoleUser}
	}

	user, err := uc.createUser(ctx, in.Email, in.FullName, in.Password, roles)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Strs("roles", roles).Msg("cuenta registrada")
	return &dto.AuthResponse{IsSuccess: true, Message: "Cuenta creada correctamente"}, nil
}

// EnsureAdmin crea la cuenta administradora si el email no existe. created=false si ya estaba registrada.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password, fullName string) (created bool, err error) {
	if strings.TrimSpace(fullName) == "" {
		fullName = "Administrador"
	}
	v := validation.New().
		Email("email", email).
		MinLen("password", password, minPasswordLen)
	if err := v.Err(); err != nil {
		return false, err
	}
	user, err := uc.createUser(ctx, email, fullName, password, []string{entity.RoleAdmin})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("cuenta administradora creada")
	return true, nil
}

func (uc *AuthUseCase) createUser(ctx context.Context, email, fullName, password string, roles []string) (*entity.User, error) {
	email = normalizeEmail(email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: string(hash),
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// Login verifica credenciales. Tras MaxFailedAccess fallos consecutivos la cuenta queda bloqueada LockoutDuration.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := validation.New().Email("email", in.Email).Required("password", in.Password).Err(); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	now := uc.now()
	if user.IsLockedOut(now) {
		return nil, domain.ErrLockedOut
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		user.AccessFailedCount++
		locked := false
		if user.AccessFailedCount >= MaxFailedAccess {
			end := now.Add(LockoutDuration)
			user.LockoutEnd = &end
			user.AccessFailedCount = 0
			locked = true
		}
		user.UpdatedAt = now
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		if locked {
			uc.log.Warn().Str("user_id", user.ID).Msg("cuenta bloqueada por intentos fallidos")
			return nil, domain.ErrLockedOut
		}
		return nil, domain.ErrUnauthorized
	}
	if user.AccessFailedCount != 0 || user.LockoutEnd != nil {
		user.AccessFailedCount = 0
		user.LockoutEnd = nil
		user.UpdatedAt = now
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	return uc.issue(ctx, user, "Inicio de sesión exitoso")
}

// RefreshToken emite un par nuevo. El access token puede estar vencido pero su firma debe ser válida;
// el refresh token es de un solo uso.
func (uc *AuthUseCase) RefreshToken(ctx context.Context, in dto.RefreshTokenRequest) (*dto.AuthResponse, error) {
	if in.Token == "" || in.RefreshToken == "" {
		return nil, domain.ErrInvalidToken
	}
	claims, err := jwt.ParseExpired(uc.jwtCfg.Secret, in.Token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if in.Email != "" && normalizeEmail(in.Email) != normalizeEmail(claims.Email) {
		return nil, domain.ErrInvalidToken
	}
	userID, err := uc.tokens.Take(ctx, refreshPrefix+in.RefreshToken)
	if err != nil {
		if errors.Is(err, ports.ErrTokenNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	if userID != claims.Subject {
		return nil, domain.ErrInvalidToken
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsLockedOut(uc.now()) {
		return nil, domain.ErrInvalidToken
	}
	return uc.issue(ctx, user, "Token renovado")
}

// ForgotPassword envía un token de restablecimiento si el usuario existe. Siempre responde éxito.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) (*dto.AuthResponse, error) {
	if err := validation.New().Email("email", in.Email).Err(); err != nil {
		return nil, err
	}
	resp := &dto.AuthResponse{IsSuccess: true, Message: "Si el correo está registrado recibirás instrucciones para restablecer tu contraseña"}

	email := normalizeEmail(in.Email)
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return resp, nil
	}
	token := uuid.New().String()
	if err := uc.tokens.Put(ctx, resetPrefix+token, user.ID, ResetTokenTTL); err != nil {
		return nil, err
	}
	mail := ports.Mail{
		To:      []string{user.Email},
		Subject: "Restablecer contraseña - Pecuadex",
		Text: fmt.Sprintf("Hola %s,\n\nUsa este código para restablecer tu contraseña: %s\n\nEl código vence en %d minutos.",
			user.FullName, token, int(ResetTokenTTL.Minutes())),
	}
	if err := uc.mailer.Send(ctx, mail); err != nil {
		// la respuesta no debe revelar si la cuenta existe
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("no se pudo enviar el correo de restablecimiento")
	}
	return resp, nil
}

// ResetPassword cambia la contraseña si el token es válido para ese email. También desbloquea la cuenta.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) (*dto.AuthResponse, error) {
	if err := validation.New().
		Email("email", in.Email).
		Required("token", in.Token).
		MinLen("newPassword", in.NewPassword, minPasswordLen).
		Err(); err != nil {
		return nil, err
	}
	userID, err := uc.tokens.Take(ctx, resetPrefix+in.Token)
	if err != nil {
		if errors.Is(err, ports.ErrTokenNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Email != normalizeEmail(in.Email) {
		return nil, domain.ErrInvalidToken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.AccessFailedCount = 0
	user.LockoutEnd = nil
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.AuthResponse{IsSuccess: true, Message: "Contraseña actualizada"}, nil
}

// Detail datos de la cuenta autenticada.
func (uc *AuthUseCase) Detail(ctx context.Context, userID string) (*dto.UserDetail, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	d := ToUserDetail(user)
	return &d, nil
}

// ListUsers todas las cuentas (panel de administración).
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]dto.UserDetail, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserDetail, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDetail(u))
	}
	return out, nil
}

func (uc *AuthUseCase) issue(ctx context.Context, user *entity.User, msg string) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Subject{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Roles:    user.Roles,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh := uuid.New().String()
	if err := uc.tokens.Put(ctx, refreshPrefix+refresh, user.ID, uc.jwtCfg.RefreshTTL); err != nil {
		return nil, err
	}
	return &dto.AuthResponse{IsSuccess: true, Message: msg, Token: token, RefreshToken: refresh}, nil
}

// ToUserDetail convierte la entidad a DTO sin datos sensibles.
func ToUserDetail(u *entity.User) dto.UserDetail {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return dto.UserDetail{
		ID:                   u.ID,
		FullName:             u.FullName,
		Email:                u.Email,
		Roles:                roles,
		PhoneNumber:          u.PhoneNumber,
		PhoneNumberConfirmed: u.PhoneNumberConfirmed,
		AccessFailedCount:    u.AccessFailedCount,
	}
}
