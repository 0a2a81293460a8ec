package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-bot/internal/application/dto"
	"github.com/jhoicas/marketplace-bot/internal/application/usecase"
)

// CartHandler carrito del usuario autenticado.
type CartHandler struct {
	uc *usecase.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *usecase.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Get godoc
// @Summary      Ver carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetTelegramID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar producto al carrito
// @Description  Si el producto ya está en el carrito suma la cantidad.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToCartRequest  true  "product_id y cantidad (1 por defecto)"
// @Success      200   {object}  dto.StatusResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := parseBody(c, &in); err != nil {
		return rejected(err)
	}
	if err := h.uc.Add(c.UserContext(), GetTelegramID(c), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: usecase.StatusSuccess})
}

// Remove godoc
// @Summary      Quitar producto del carrito
// @Description  Sin quantity quita la línea completa; con quantity descuenta y borra al llegar a 0.
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        quantity   query  int     false  "Unidades a quitar"
// @Success      200        {object}  dto.StatusResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/cart/{productId} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	var quantity *int
	if raw := c.Query("quantity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return badRequest(c, "VALIDATION", "quantity debe ser un entero positivo")
		}
		quantity = &n
	}
	if err := h.uc.Remove(c.UserContext(), GetTelegramID(c), c.Params("productId"), quantity); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: usecase.StatusSuccess})
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatusResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.UserContext(), GetTelegramID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: usecase.StatusSuccess})
}
