package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/pkg/jwt"
)

// LocalClaims clave de Fiber Locals con los claims del token.
const LocalClaims = "claims"

func bearerToken(c *fiber.Ctx) (string, string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", "MISSING_TOKEN"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN"
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", "MISSING_TOKEN"
	}
	return tok, ""
}

// AuthMiddleware valida el Bearer Token JWT y deja los claims en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok, code := bearerToken(c)
		if code != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: "formato: Bearer <token>"})
		}
		claims, err := jwt.Parse(jwtSecret, tok)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// OptionalAuth carga los claims si llega un token válido; sin token o con token inválido sigue como invitado.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok, code := bearerToken(c); code == "" {
			if claims, err := jwt.Parse(jwtSecret, tok); err == nil {
				c.Locals(LocalClaims, claims)
			}
		}
		return c.Next()
	}
}

// RequireRole autoriza si el token trae alguno de los roles. Debe ir después de AuthMiddleware.
//   - 401 MISSING_ROLE si el token no trae roles.
//   - 403 FORBIDDEN si ninguno coincide.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := getClaims(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
		}
		if len(claims.Roles) == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene roles"})
		}
		if !claims.HasRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
		}
		return c.Next()
	}
}

// RequireAdmin atajo para las rutas del panel de administración.
func RequireAdmin() fiber.Handler { return RequireRole(entity.RoleAdmin) }

// RequireClient rutas del portal del cliente.
func RequireClient() fiber.Handler { return RequireRole(entity.RoleUser, entity.RoleClient) }

func getClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}

// GetUserID id del usuario autenticado o "" si es invitado.
func GetUserID(c *fiber.Ctx) string {
	if claims := getClaims(c); claims != nil {
		return claims.Subject
	}
	return ""
}

// GetRoles roles del token.
func GetRoles(c *fiber.Ctx) []string {
	if claims := getClaims(c); claims != nil {
		return claims.Roles
	}
	return nil
}

// IsAdmin indica si el token trae el rol Admin.
func IsAdmin(c *fiber.Ctx) bool {
	claims := getClaims(c)
	return claims != nil && claims.HasRole(entity.RoleAdmin)
}
