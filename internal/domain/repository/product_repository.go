package repository

import (
	"context"

	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListBySeller(ctx context.Context, sellerApplicationID string, limit, offset int) ([]*entity.Product, error)
	// ListAvailable catálogo público, más nuevos primero.
	ListAvailable(ctx context.Context, limit, offset int) ([]*entity.CatalogItem, error)
}
