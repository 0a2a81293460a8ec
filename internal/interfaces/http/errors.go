package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-bot/internal/application/dto"
	"github.com/jhoicas/marketplace-bot/internal/domain"
)

// writeError traduce un error de dominio a status HTTP + dto.ErrorResponse.
// Lo que no es de dominio sale como 500 sin filtrar el detalle.
func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", "error interno"
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, msg = fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case errors.Is(err, domain.ErrNotRegistered):
		status, code, msg = fiber.StatusUnauthorized, "NOT_REGISTERED", err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status, code, msg = fiber.StatusForbidden, "FORBIDDEN", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrProductUnavailable):
		status, code, msg = fiber.StatusConflict, "PRODUCT_UNAVAILABLE", err.Error()
	case errors.Is(err, domain.ErrDuplicatePendingApplication):
		status, code, msg = fiber.StatusConflict, "DUPLICATE_PENDING", err.Error()
	case errors.Is(err, domain.ErrApplicationAlreadyProcessed):
		status, code, msg = fiber.StatusConflict, "ALREADY_PROCESSED", err.Error()
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		status, code, msg = fiber.StatusConflict, "CONFLICT", err.Error()
	}
	if status == fiber.StatusInternalServerError {
		if log := requestLogger(c); log != nil {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no manejado")
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
