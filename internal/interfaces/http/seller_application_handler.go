package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-bot/internal/application/seller"
)

// SellerApplicationHandler revisión de solicitudes de vendedor (solo admin).
type SellerApplicationHandler struct {
	uc *seller.ApprovalUseCase
}

// NewSellerApplicationHandler construye el handler.
func NewSellerApplicationHandler(uc *seller.ApprovalUseCase) *SellerApplicationHandler {
	return &SellerApplicationHandler{uc: uc}
}

// ListPending godoc
// @Summary      Solicitudes de vendedor pendientes
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SellerApplicationListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/seller-applications [get]
func (h *SellerApplicationHandler) ListPending(c *fiber.Ctx) error {
	list, err := h.uc.ListPending(c.UserContext(), GetTelegramID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(seller.ToApplicationListResponse(list))
}

// Approve godoc
// @Summary      Aprobar solicitud
// @Description  Marca la solicitud como aprobada y promueve al dueño a seller en una transacción.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.SellerApplicationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/seller-applications/{id}/approve [post]
func (h *SellerApplicationHandler) Approve(c *fiber.Ctx) error {
	app, err := h.uc.Approve(c.UserContext(), GetTelegramID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(seller.ToApplicationResponse(app))
}

// Reject godoc
// @Summary      Rechazar solicitud
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.SellerApplicationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/seller-applications/{id}/reject [post]
func (h *SellerApplicationHandler) Reject(c *fiber.Ctx) error {
	app, err := h.uc.Reject(c.UserContext(), GetTelegramID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(seller.ToApplicationResponse(app))
}
