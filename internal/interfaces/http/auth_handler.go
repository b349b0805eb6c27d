package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pecuadex/pecuadex-api/internal/application/auth"
	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/domain"
)

// AuthHandler maneja registro, login, renovación y restablecimiento de contraseña.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// authFail responde con la forma {isSuccess:false, message} que el formulario de cuenta muestra tal cual.
func authFail(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return writeError(c, err)
	}
	status, _, msg := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		c.Locals(localError, err)
	}
	return c.Status(status).JSON(dto.AuthResponse{IsSuccess: false, Message: msg})
}

// Register godoc
// @Summary      Registrar cuenta
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, fullName, password, roles"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.AuthResponse
// @Router       /api/account/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return authFail(c, err)
	}
	return c.JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.AuthResponse
// @Failure      423   {object}  dto.AuthResponse
// @Router       /api/account/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return authFail(c, err)
	}
	return c.JSON(out)
}

// RefreshToken godoc
// @Summary      Renovar token
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshTokenRequest  true  "token, refreshToken, email"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.AuthResponse
// @Router       /api/account/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var in dto.RefreshTokenRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RefreshToken(c.Context(), in)
	if err != nil {
		return authFail(c, err)
	}
	return c.JSON(out)
}

// ForgotPassword godoc
// @Summary      Solicitar restablecimiento de contraseña
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email"
// @Success      200   {object}  dto.AuthResponse
// @Router       /api/account/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ForgotPassword(c.Context(), in)
	if err != nil {
		return authFail(c, err)
	}
	return c.JSON(out)
}

// ResetPassword godoc
// @Summary      Restablecer contraseña
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "email, token, newPassword"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.AuthResponse
// @Router       /api/account/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ResetPassword(c.Context(), in)
	if err != nil {
		return authFail(c, err)
	}
	return c.JSON(out)
}

// Detail godoc
// @Summary      Datos de la cuenta autenticada
// @Tags         account
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserDetail
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/account/detail [get]
func (h *AuthHandler) Detail(c *fiber.Ctx) error {
	out, err := h.uc.Detail(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListUsers godoc
// @Summary      Listar cuentas
// @Tags         account
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserDetail
// @Router       /api/account [get]
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
