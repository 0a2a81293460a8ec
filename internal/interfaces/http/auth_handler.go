package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-bot/internal/application/auth"
	"github.com/jhoicas/marketplace-bot/internal/application/dto"
	"github.com/jhoicas/marketplace-bot/internal/application/usecase"
)

// AuthHandler login de la WebApp y perfil del usuario autenticado.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	users *usecase.UserUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, users *usecase.UserUseCase) *AuthHandler {
	return &AuthHandler{uc: uc, users: users}
}

// Login godoc
// @Summary      Iniciar sesión desde la WebApp de Telegram
// @Description  Valida el initData firmado por Telegram, registra al usuario si no existe y devuelve un JWT.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TelegramLoginRequest  true  "initData crudo"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/telegram [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.TelegramLoginRequest
	if err := parseBody(c, &in); err != nil {
		return rejected(err)
	}
	out, err := h.uc.LoginWithTelegram(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.users.Profile(c.UserContext(), GetTelegramID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
