package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pecuadex/pecuadex-api/internal/application/dto"
	"github.com/pecuadex/pecuadex-api/internal/domain"
)

// localError guarda el error interno para que RequestLogger lo registre.
const localError = "request_error"

// errorStatus traduce un error de dominio a status, código y mensaje públicos.
func errorStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", "datos inválidos"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"
	case errors.Is(err, domain.ErrInvalidToken):
		return fiber.StatusUnauthorized, "INVALID_TOKEN", domain.ErrInvalidToken.Error()
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", "no tiene permiso para esta operación"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "DUPLICATE", domain.ErrEmailAlreadyExists.Error()
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE", "el registro ya existe"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK", err.Error()
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT", "el registro está en uso por otros datos"
	case errors.Is(err, domain.ErrLockedOut):
		return fiber.StatusLocked, "LOCKED", domain.ErrLockedOut.Error()
	}
	return fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor"
}

// writeError responde con dto.ErrorResponse. Los 500 no exponen el detalle; queda en el log de la petición.
func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := errorStatus(err)
	resp := dto.ErrorResponse{Code: code, Message: msg}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	if status == fiber.StatusInternalServerError {
		c.Locals(localError, err)
	}
	return c.Status(status).JSON(resp)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func validationMsg(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}

// ErrorHandler atiende los errores que llegan a Fiber sin respuesta (rutas inexistentes, límites, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusRequestEntityTooLarge:
			code = "PAYLOAD_TOO_LARGE"
		case fiber.StatusTooManyRequests:
			code = "TOO_MANY_REQUESTS"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return writeError(c, err)
}

func errorBody(code string, err error) dto.ErrorResponse {
	msg := err.Error()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		msg = fe.Message
	}
	return dto.ErrorResponse{Code: code, Message: msg}
}
