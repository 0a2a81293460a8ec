package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/marketplace-bot/internal/application/access"
	"github.com/jhoicas/marketplace-bot/internal/application/dto"
	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
	"github.com/jhoicas/marketplace-bot/internal/domain/repository"
)

var sellerRoles = access.Roles(entity.RoleSeller)

// ProductUseCase catálogo público y gestión de productos del vendedor.
type ProductUseCase struct {
	repo  repository.ProductRepository
	apps  repository.SellerApplicationRepository
	authz *access.Authorizer
	now   func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, apps repository.SellerApplicationRepository, authz *access.Authorizer) *ProductUseCase {
	return &ProductUseCase{repo: repo, apps: apps, authz: authz, now: time.Now}
}

// Catalog lista los productos disponibles, más nuevos primero.
func (uc *ProductUseCase) Catalog(ctx context.Context, limit, offset int) (*dto.CatalogResponse, error) {
	list, err := uc.repo.ListAvailable(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.CatalogResponse{
		Items: toCatalogResponses(list),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Create publica un producto a nombre de la solicitud aprobada del vendedor.
func (uc *ProductUseCase) Create(ctx context.Context, sellerTelegramID int64, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	app, err := uc.sellerApplication(ctx, sellerTelegramID)
	if err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	now := uc.now()
	product := &entity.Product{
		ID:                  uuid.New().String(),
		SellerApplicationID: app.ID,
		Name:                in.Name,
		Description:         in.Description,
		Price:               in.Price,
		ImageURL:            in.ImageURL,
		IsAvailable:         available,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update modifica un producto propio. ErrNotFound si no existe, ErrForbidden si es de otro vendedor.
func (uc *ProductUseCase) Update(ctx context.Context, sellerTelegramID int64, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	app, err := uc.sellerApplication(ctx, sellerTelegramID)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.SellerApplicationID != app.ID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.IsAvailable != nil {
		product.IsAvailable = *in.IsAvailable
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ListMine lista los productos del vendedor con paginación.
func (uc *ProductUseCase) ListMine(ctx context.Context, sellerTelegramID int64, limit, offset int) (*dto.ProductListResponse, error) {
	app, err := uc.sellerApplication(ctx, sellerTelegramID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListBySeller(ctx, app.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// sellerApplication exige rol seller y devuelve su solicitud aprobada.
func (uc *ProductUseCase) sellerApplication(ctx context.Context, telegramID int64) (*entity.SellerApplication, error) {
	user, err := uc.authz.Require(ctx, telegramID, sellerRoles)
	if err != nil {
		return nil, err
	}
	app, err := uc.apps.GetApprovedByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		// seller sin solicitud aprobada rompe el invariante rol/estado; no se deja publicar.
		return nil, domain.ErrForbidden
	}
	return app, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		IsAvailable: p.IsAvailable,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toCatalogResponses(list []*entity.CatalogItem) []dto.CatalogItemResponse {
	items := make([]dto.CatalogItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, dto.CatalogItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			ImageURL:    it.ImageURL,
			SellerName:  it.SellerName,
		})
	}
	return items
}
