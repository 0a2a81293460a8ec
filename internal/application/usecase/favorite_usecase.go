package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/marketplace-bot/internal/application/access"
	"github.com/jhoicas/marketplace-bot/internal/application/dto"
	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/repository"
)

// Resultados de FavoriteUseCase.Add.
const (
	StatusSuccess       = "success"
	StatusAlreadyExists = "already_exists"
)

// FavoriteUseCase favoritos del usuario registrado.
type FavoriteUseCase struct {
	favorites repository.FavoriteRepository
	products  repository.ProductRepository
	authz     *access.Authorizer
}

// NewFavoriteUseCase construye el caso de uso.
func NewFavoriteUseCase(favorites repository.FavoriteRepository, products repository.ProductRepository, authz *access.Authorizer) *FavoriteUseCase {
	return &FavoriteUseCase{favorites: favorites, products: products, authz: authz}
}

// List devuelve los favoritos con el nombre del vendedor.
func (uc *FavoriteUseCase) List(ctx context.Context, telegramID int64) (*dto.FavoritesResponse, error) {
	user, err := uc.authz.CurrentUser(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	list, err := uc.favorites.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.FavoritesResponse{Items: toCatalogResponses(list)}, nil
}

// Add marca el producto como favorito; si ya lo era es un no-op (already_exists).
func (uc *FavoriteUseCase) Add(ctx context.Context, telegramID int64, productID string) (*dto.StatusResponse, error) {
	user, err := uc.authz.CurrentUser(ctx, telegramID)
	if err != nil {
		return nil, err
	}
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
	created, err := uc.favorites.Add(ctx, user.ID, productID)
	if err != nil {
		return nil, err
	}
	if !created {
		return &dto.StatusResponse{Status: StatusAlreadyExists}, nil
	}
	return &dto.StatusResponse{Status: StatusSuccess}, nil
}

// Remove desmarca el favorito; no falla si no existía.
func (uc *FavoriteUseCase) Remove(ctx context.Context, telegramID int64, productID string) error {
	user, err := uc.authz.CurrentUser(ctx, telegramID)
	if err != nil {
		return err
	}
	if _, err := uuid.Parse(productID); err != nil {
		return domain.ErrNotFound
	}
	return uc.favorites.Remove(ctx, user.ID, productID)
}
