package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-bot/internal/application/access"
	"github.com/jhoicas/marketplace-bot/internal/application/dto"
	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
)

// RequireRole devuelve un middleware que consulta el rol actual del usuario en la base
// y deja pasar solo si está en roles (comparación exacta, sin jerarquía).
// Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 → sin identidad en el contexto o usuario no registrado.
//   - 403 → rol fuera del conjunto.
//   - 503 → fallo al consultar la base.
func RequireRole(authz *access.Authorizer, roles ...entity.Role) fiber.Handler {
	allowed := access.Roles(roles...)
	return func(c *fiber.Ctx) error {
		telegramID := GetTelegramID(c)
		if telegramID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no encontrada en el token"})
		}
		user, err := authz.CurrentUser(c.UserContext(), telegramID)
		if err != nil {
			if errors.Is(err, domain.ErrNotRegistered) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NOT_REGISTERED", Message: err.Error()})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "ROLE_CHECK_FAILED", Message: "no se pudo verificar el rol, intente más tarde"})
		}
		if !allowed.Allows(user.Role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
		}
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

// GetRole devuelve el rol verificado por RequireRole ("" si no pasó por él).
func GetRole(c *fiber.Ctx) entity.Role {
	r, _ := c.Locals(LocalRole).(entity.Role)
	return r
}
