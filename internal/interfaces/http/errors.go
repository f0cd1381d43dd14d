package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/naisata/servicios-api/internal/application/dto"
	"github.com/naisata/servicios-api/internal/domain"
	"github.com/naisata/servicios-api/pkg/logger"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// Orden relevante: el primer sentinel que coincida con errors.Is decide la respuesta.
var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrDomainNotAllowed, fiber.StatusForbidden, "DOMAIN_NOT_ALLOWED"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrPasswordSetupRequired, fiber.StatusForbidden, "PASSWORD_SETUP_REQUIRED"},
	{domain.ErrSignatureSetupRequired, fiber.StatusForbidden, "SIGNATURE_SETUP_REQUIRED"},
	{domain.ErrAlreadyConfigured, fiber.StatusConflict, "ALREADY_CONFIGURED"},
	{domain.ErrAlreadySigned, fiber.StatusConflict, "ALREADY_SIGNED"},
	{domain.ErrNotYetSigned, fiber.StatusConflict, "NOT_YET_SIGNED"},
	{domain.ErrQuotaExceeded, fiber.StatusForbidden, "QUOTA_EXCEEDED"},
	{domain.ErrOutsideGeofence, fiber.StatusForbidden, "OUTSIDE_GEOFENCE"},
}

// respondError traduce errores de dominio a su respuesta HTTP. Los demás se devuelven
// a Fiber para que ErrorHandler los registre y responda INTERNAL.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return err
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler último recurso de Fiber: errores propios de Fiber conservan su estado;
// cualquier otro se registra y se responde sin detalles internos.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: codeForStatus(fe.Code), Message: fe.Message})
		}
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	default:
		return "ERROR"
	}
}
