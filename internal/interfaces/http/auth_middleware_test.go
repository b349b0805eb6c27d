package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	apphttp "github.com/pecuadex/pecuadex-api/internal/interfaces/http"
	pkgjwt "github.com/pecuadex/pecuadex-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "pecuadex-test"
	testExpMin    = 60
)

// buildTestApp app mínima con AuthMiddleware + RequireRole y un handler que responde 200.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"userId": apphttp.GetUserID(c),
				"roles":  apphttp.GetRoles(c),
				"admin":  apphttp.IsAdmin(c),
			})
		},
	)
	app.Get("/optional", apphttp.OptionalAuth(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userId": apphttp.GetUserID(c)})
	})
	return app
}

func bearerFor(t *testing.T, roles ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Subject{
		UserID:   testUserID,
		Email:    "usuario@rancho.mx",
		FullName: "Usuario Prueba",
		Roles:    roles,
	}, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doGet(t *testing.T, app *fiber.App, path, authHeader string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), "cuerpo: %s", raw)
	}
	return resp, body
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp, body := doGet(t, app, "/protected", bearerFor(t, entity.RoleAdmin))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, testUserID, body["userId"])
	assert.Equal(t, true, body["admin"])
	assert.Equal(t, []any{entity.RoleAdmin}, body["roles"])
}

func TestRequireRole_ClientRoles(t *testing.T) {
	app := buildTestApp(entity.RoleUser, entity.RoleClient)

	for _, role := range []string{entity.RoleUser, entity.RoleClient} {
		resp, body := doGet(t, app, "/protected", bearerFor(t, role))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, role)
		assert.Equal(t, false, body["admin"], role)
	}
}

func TestRequireRole_WrongRoleForbidden(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp, body := doGet(t, app, "/protected", bearerFor(t, entity.RoleUser))

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRequireRole_TokenWithoutRoles(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp, body := doGet(t, app, "/protected", bearerFor(t))

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", body["code"])
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp, body := doGet(t, app, "/protected", "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp, body := doGet(t, app, "/protected", "Token abc")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	tok, err := pkgjwt.Generate("otro-secreto", pkgjwt.Subject{UserID: testUserID, Roles: []string{entity.RoleAdmin}}, testIssuer, testExpMin)
	require.NoError(t, err)

	resp, body := doGet(t, app, "/protected", "Bearer "+tok)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestOptionalAuth(t *testing.T) {
	app := buildTestApp()

	_, body := doGet(t, app, "/optional", "")
	assert.Equal(t, "", body["userId"], "sin token sigue como invitado")

	_, body = doGet(t, app, "/optional", "Bearer basura")
	assert.Equal(t, "", body["userId"], "un token inválido no bloquea")

	_, body = doGet(t, app, "/optional", bearerFor(t, entity.RoleUser))
	assert.Equal(t, testUserID, body["userId"])
}
