package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/marketplace-bot/internal/application/access"
	"github.com/jhoicas/marketplace-bot/internal/application/dto"
	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
	"github.com/jhoicas/marketplace-bot/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CartUseCase carrito del usuario registrado (cualquier rol).
type CartUseCase struct {
	cart     repository.CartRepository
	products repository.ProductRepository
	authz    *access.Authorizer
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(cart repository.CartRepository, products repository.ProductRepository, authz *access.Authorizer) *CartUseCase {
	return &CartUseCase{cart: cart, products: products, authz: authz}
}

// Get devuelve las líneas del carrito y el total.
func (uc *CartUseCase) Get(ctx context.Context, telegramID int64) (*dto.CartResponse, error) {
	user, err := uc.authz.CurrentUser(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.cart.ListLines(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.CartResponse{Items: make([]dto.CartLineResponse, 0, len(lines)), Total: cartTotal(lines)}
	for _, l := range lines {
		out.Items = append(out.Items, dto.CartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Total:     l.Total(),
		})
	}
	return out, nil
}

// Add suma quantity (1 si es 0) al producto; repetir la llamada incrementa, no duplica.
func (uc *CartUseCase) Add(ctx context.Context, telegramID int64, in dto.AddToCartRequest) error {
	user, err := uc.authz.CurrentUser(ctx, telegramID)
	if err != nil {
		return err
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return domain.ErrInvalidInput
	}
	if _, err := uc.availableProduct(ctx, in.ProductID); err != nil {
		return err
	}
	return uc.cart.Add(ctx, user.ID, in.ProductID, qty)
}

// Remove quita quantity unidades; nil quita la línea completa. Quitar la última unidad borra la fila.
func (uc *CartUseCase) Remove(ctx context.Context, telegramID int64, productID string, quantity *int) error {
	user, err := uc.authz.CurrentUser(ctx, telegramID)
	if err != nil {
		return err
	}
	if _, err := uuid.Parse(productID); err != nil {
		return domain.ErrNotFound
	}
	if quantity == nil {
		return uc.cart.Remove(ctx, user.ID, productID)
	}
	if *quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.cart.Decrement(ctx, user.ID, productID, *quantity)
}

// Clear vacía el carrito.
func (uc *CartUseCase) Clear(ctx context.Context, telegramID int64) error {
	user, err := uc.authz.CurrentUser(ctx, telegramID)
	if err != nil {
		return err
	}
	return uc.cart.Clear(ctx, user.ID)
}

func (uc *CartUseCase) availableProduct(ctx context.Context, productID string) (*entity.Product, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.IsAvailable {
		return nil, domain.ErrProductUnavailable
	}
	return product, nil
}

// cartTotal suma los totales de línea.
func cartTotal(lines []entity.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}
