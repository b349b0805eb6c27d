package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/application/ports"
	"github.com/pecuadex/pecuadex-api/internal/domain"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/infrastructure/memory"
	"github.com/pecuadex/pecuadex-api/internal/infrastructure/tokenstore"
	"github.com/pecuadex/pecuadex-api/pkg/jwt"
)

const testSecret = "secreto-de-pruebas"

type fakeMailer struct {
	mu   sync.Mutex
	sent []ports.Mail
}

func (m *fakeMailer) Send(_ context.Context, mail ports.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, mail)
	return nil
}

type fixture struct {
	uc     *AuthUseCase
	repos  memory.Repos
	mailer *fakeMailer
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewStore().Repos()
	f := &fixture{repos: repos, mailer: &fakeMailer{}, now: time.Now()}
	f.uc = NewAuthUseCase(repos.Users, tokenstore.NewMemory(), f.mailer, JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}, nil)
	f.uc.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) register(t *testing.T, email, password string) {
	t.Helper()
	resp, err := f.uc.Register(context.Background(), dto.RegisterRequest{Email: email, FullName: "Juan Ganadero", Password: password})
	require.NoError(t, err)
	require.True(t, resp.IsSuccess)
}

// ─── Register ─────────────────────────────────────────────────────────────────

func TestRegister_RolPorDefectoUser(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Juan@Rancho.mx", "secreto1")

	u, err := f.repos.Users.GetByEmail(context.Background(), "juan@rancho.mx")
	require.NoError(t, err)
	require.NotNil(t, u, "el email se guarda normalizado")
	assert.Equal(t, []string{entity.RoleUser}, u.Roles)
	assert.NotEqual(t, "secreto1", u.PasswordHash)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	f := newFixture(t)
	f.register(t, "juan@rancho.mx", "secreto1")
	_, err := f.uc.Register(context.Background(), dto.RegisterRequest{Email: "juan@rancho.mx", FullName: "Otro", Password: "secreto2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_NoPermiteAdmin(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Register(context.Background(), dto.RegisterRequest{
		Email: "x@rancho.mx", FullName: "X", Password: "secreto1", Roles: []string{entity.RoleAdmin},
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "roles")
}

func TestRegister_PasswordCorta(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Register(context.Background(), dto.RegisterRequest{Email: "x@rancho.mx", FullName: "X", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Login y bloqueo ──────────────────────────────────────────────────────────

func TestLogin_TokenConRoles(t *testing.T) {
	f := newFixture(t)
	f.register(t, "juan@rancho.mx", "secreto1")

	resp, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "juan@rancho.mx", Password: "secreto1"})
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "juan@rancho.mx", claims.Email)
	assert.Equal(t, []string{entity.RoleUser}, claims.Roles)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@rancho.mx", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_BloqueoTrasCincoFallos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "juan@rancho.mx", "secreto1")

	for i := 1; i < MaxFailedAccess; i++ {
		_, err := f.uc.Login(ctx, dto.LoginRequest{Email: "juan@rancho.mx", Password: "mala"})
		require.ErrorIs(t, err, domain.ErrUnauthorized, "intento %d", i)
	}
	_, err := f.uc.Login(ctx, dto.LoginRequest{Email: "juan@rancho.mx", Password: "mala"})
	require.ErrorIs(t, err, domain.ErrLockedOut)

	// bloqueada aunque la contraseña sea correcta
	_, err = f.uc.Login(ctx, dto.LoginRequest{Email: "juan@rancho.mx", Password: "secreto1"})
	require.ErrorIs(t, err, domain.ErrLockedOut)

	f.now = f.now.Add(LockoutDuration + time.Second)
	resp, err := f.uc.Login(ctx, dto.LoginRequest{Email: "juan@rancho.mx", Password: "secreto1"})
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess)

	u, _ := f.repos.Users.GetByEmail(ctx, "juan@rancho.mx")
	assert.Zero(t, u.AccessFailedCount)
	assert.Nil(t, u.LockoutEnd)
}

// ─── Refresh ──────────────────────────────────────────────────────────────────

func TestRefreshToken_UnSoloUso(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "juan@rancho.mx", "secreto1")
	login, err := f.uc.Login(ctx, dto.LoginRequest{Email: "juan@rancho.mx", Password: "secreto1"})
	require.NoError(t, err)

	req := dto.RefreshTokenRequest{Email: "juan@rancho.mx", Token: login.Token, RefreshToken: login.RefreshToken}
	resp, err := f.uc.RefreshToken(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, resp.RefreshToken)

	_, err = f.uc.RefreshToken(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestRefreshToken_FirmaInvalida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "juan@rancho.mx", "secreto1")
	login, err := f.uc.Login(ctx, dto.LoginRequest{Email: "juan@rancho.mx", Password: "secreto1"})
	require.NoError(t, err)

	otro, err := jwt.Generate("otro-secreto", jwt.Subject{UserID: "x", Email: "juan@rancho.mx"}, "test", 60)
	require.NoError(t, err)
	_, err = f.uc.RefreshToken(ctx, dto.RefreshTokenRequest{Token: otro, RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

// ─── Forgot / Reset ───────────────────────────────────────────────────────────

func TestForgotPassword_NoRevelaCuentas(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "nadie@rancho.mx"})
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess)
	assert.Empty(t, f.mailer.sent)
}

func TestResetPassword_Flujo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "juan@rancho.mx", "secreto1")

	_, err := f.uc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "juan@rancho.mx"})
	require.NoError(t, err)
	require.Len(t, f.mailer.sent, 1)
	body := f.mailer.sent[0].Text
	token := strings.TrimSpace(body[strings.Index(body, "contraseña: ")+len("contraseña: ") : strings.Index(body, "\n\nEl código")])

	_, err = f.uc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "otro@rancho.mx", Token: token, NewPassword: "nueva123"})
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "el token consumido con otro email ya no sirve")

	_, err = f.uc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "juan@rancho.mx"})
	require.NoError(t, err)
	body = f.mailer.sent[1].Text
	token = strings.TrimSpace(body[strings.Index(body, "contraseña: ")+len("contraseña: ") : strings.Index(body, "\n\nEl código")])

	resp, err := f.uc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "juan@rancho.mx", Token: token, NewPassword: "nueva123"})
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess)

	_, err = f.uc.Login(ctx, dto.LoginRequest{Email: "juan@rancho.mx", Password: "nueva123"})
	assert.NoError(t, err)
}

// ─── Cuenta administradora ────────────────────────────────────────────────────

func TestEnsureAdmin_Idempotente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.uc.EnsureAdmin(ctx, "Admin@Pecuadex.mx", "admin123", "")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.uc.EnsureAdmin(ctx, "admin@pecuadex.mx", "otra-clave", "Otro")
	require.NoError(t, err)
	assert.False(t, created, "un segundo arranque no duplica la cuenta")

	resp, err := f.uc.Login(ctx, dto.LoginRequest{Email: "admin@pecuadex.mx", Password: "admin123"})
	require.NoError(t, err)
	claims, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleAdmin}, claims.Roles)
	assert.Equal(t, "Administrador", claims.FullName)
}

func TestEnsureAdmin_Validacion(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.EnsureAdmin(context.Background(), "no-es-email", "123", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Roles ────────────────────────────────────────────────────────────────────

func TestRoleUseCase_CreateAssignList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	roles := NewRoleUseCase(f.repos.Roles, f.repos.Users)
	require.NoError(t, roles.EnsureRoles(ctx, entity.RoleAdmin, entity.RoleUser, entity.RoleClient))
	f.register(t, "juan@rancho.mx", "secreto1")

	_, err := roles.Create(ctx, dto.CreateRoleRequest{RoleName: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	admin, _ := f.repos.Roles.GetByName(ctx, entity.RoleAdmin)
	u, _ := f.repos.Users.GetByEmail(ctx, "juan@rancho.mx")
	require.NoError(t, roles.Assign(ctx, dto.AssignRoleRequest{UserID: u.ID, RoleID: admin.ID}))

	list, err := roles.List(ctx)
	require.NoError(t, err)
	counts := map[string]int{}
	for _, r := range list {
		counts[r.Name] = r.TotalUsers
	}
	assert.Equal(t, 1, counts[entity.RoleAdmin])
	assert.Equal(t, 1, counts[entity.RoleUser])
	assert.Equal(t, 0, counts[entity.RoleClient])

	detail, err := f.uc.Detail(ctx, u.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{entity.RoleUser, entity.RoleAdmin}, detail.Roles)
}
