package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-bot/internal/application/dto"
	"github.com/jhoicas/marketplace-bot/internal/application/usecase"
)

// FavoriteHandler favoritos del usuario autenticado.
type FavoriteHandler struct {
	uc *usecase.FavoriteUseCase
}

// NewFavoriteHandler construye el handler.
func NewFavoriteHandler(uc *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

// List godoc
// @Summary      Listar favoritos
// @Tags         favorites
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FavoritesResponse
// @Router       /api/favorites [get]
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetTelegramID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Marcar favorito
// @Description  Marcar dos veces el mismo producto responde already_exists.
// @Tags         favorites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FavoriteRequest  true  "product_id"
// @Success      200   {object}  dto.StatusResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/favorites [post]
func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	var in dto.FavoriteRequest
	if err := parseBody(c, &in); err != nil {
		return rejected(err)
	}
	out, err := h.uc.Add(c.UserContext(), GetTelegramID(c), in.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Quitar favorito
// @Tags         favorites
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {object}  dto.StatusResponse
// @Router       /api/favorites/{productId} [delete]
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.UserContext(), GetTelegramID(c), c.Params("productId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: usecase.StatusSuccess})
}
