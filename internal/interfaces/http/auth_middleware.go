package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-bot/internal/application/dto"
	"github.com/jhoicas/marketplace-bot/pkg/jwt"
)

// Locals keys para la identidad en Fiber.
const (
	LocalUserID     = "user_id"
	LocalTelegramID = "telegram_id"
	LocalRole       = "role"
)

// AuthMiddleware valida el Bearer Token JWT y deja UserID y TelegramID en c.Locals.
// El token solo identifica: el rol se consulta en cada petición (RequireRole).
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, telegramID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalTelegramID, telegramID)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetTelegramID devuelve el ID de Telegram del contexto; 0 si no pasó por AuthMiddleware.
func GetTelegramID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalTelegramID).(int64)
	return id
}
