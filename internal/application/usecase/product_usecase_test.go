package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketplace-bot/internal/application/access"
	"github.com/jhoicas/marketplace-bot/internal/application/dto"
	"github.com/jhoicas/marketplace-bot/internal/application/usecase"
	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
)

type productFixture struct {
	users    *mockUserRepo
	products *mockProductRepo
	apps     *mockAppRepo
	uc       *usecase.ProductUseCase
}

func newProductFixture() *productFixture {
	f := &productFixture{users: new(mockUserRepo), products: new(mockProductRepo), apps: new(mockAppRepo)}
	f.uc = usecase.NewProductUseCase(f.products, f.apps, access.NewAuthorizer(f.users))
	return f
}

func (f *productFixture) seller(telegramID int64, userID, appID string) {
	f.users.On("GetByTelegramID", mock.Anything, telegramID).Return(&entity.User{ID: userID, TelegramID: telegramID, Role: entity.RoleSeller}, nil)
	f.apps.On("GetApprovedByUser", mock.Anything, userID).Return(&entity.SellerApplication{ID: appID, UserID: userID, Status: entity.ApplicationApproved}, nil)
}

func TestProductCreate(t *testing.T) {
	f := newProductFixture()
	f.seller(1, "u1", "app1")
	f.products.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Product) bool {
		return p.SellerApplicationID == "app1" && p.IsAvailable
	})).Return(nil)

	out, err := f.uc.Create(context.Background(), 1, dto.CreateProductRequest{Name: "Чай", Price: decimal.RequireFromString("150.50")})
	require.NoError(t, err)
	assert.Equal(t, "Чай", out.Name)
	assert.True(t, out.Price.Equal(decimal.RequireFromString("150.50")))
	f.products.AssertExpectations(t)
}

func TestProductCreate_NegativePrice(t *testing.T) {
	f := newProductFixture()
	f.seller(1, "u1", "app1")

	_, err := f.uc.Create(context.Background(), 1, dto.CreateProductRequest{Name: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_BuyerForbidden(t *testing.T) {
	f := newProductFixture()
	f.users.On("GetByTelegramID", mock.Anything, int64(2)).Return(&entity.User{ID: "u2", Role: entity.RoleBuyer}, nil)

	_, err := f.uc.Create(context.Background(), 2, dto.CreateProductRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductCreate_SellerWithoutApprovedApplication(t *testing.T) {
	f := newProductFixture()
	f.users.On("GetByTelegramID", mock.Anything, int64(3)).Return(&entity.User{ID: "u3", Role: entity.RoleSeller}, nil)
	f.apps.On("GetApprovedByUser", mock.Anything, "u3").Return(nil, nil)

	_, err := f.uc.Create(context.Background(), 3, dto.CreateProductRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProductUpdate_OtherSeller(t *testing.T) {
	f := newProductFixture()
	f.seller(1, "u1", "app1")
	id := uuid.NewString()
	f.products.On("GetByID", mock.Anything, id).Return(&entity.Product{ID: id, SellerApplicationID: "app-other"}, nil)

	name := "nuevo"
	_, err := f.uc.Update(context.Background(), 1, id, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductUpdate_PartialFields(t *testing.T) {
	f := newProductFixture()
	f.seller(1, "u1", "app1")
	id := uuid.NewString()
	f.products.On("GetByID", mock.Anything, id).Return(&entity.Product{ID: id, SellerApplicationID: "app1", Name: "old", Description: "desc", IsAvailable: true}, nil)
	f.products.On("Update", mock.Anything, mock.Anything).Return(nil)

	off := false
	out, err := f.uc.Update(context.Background(), 1, id, dto.UpdateProductRequest{IsAvailable: &off})
	require.NoError(t, err)
	assert.Equal(t, "old", out.Name)
	assert.Equal(t, "desc", out.Description)
	assert.False(t, out.IsAvailable)
}

func TestProductUpdate_NotFound(t *testing.T) {
	f := newProductFixture()
	f.seller(1, "u1", "app1")

	_, err := f.uc.Update(context.Background(), 1, "no-es-uuid", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	id := uuid.NewString()
	f.products.On("GetByID", mock.Anything, id).Return(nil, nil)
	_, err = f.uc.Update(context.Background(), 1, id, dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductCatalog(t *testing.T) {
	f := newProductFixture()
	f.products.On("ListAvailable", mock.Anything, 20, 40).Return([]*entity.CatalogItem{
		{Product: entity.Product{ID: "p1", Name: "Мёд", Price: decimal.NewFromInt(300)}, SellerName: "Пасека"},
	}, nil)

	out, err := f.uc.Catalog(context.Background(), 20, 40)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Пасека", out.Items[0].SellerName)
	assert.Equal(t, 40, out.Page.Offset)
}

func TestProductListMine(t *testing.T) {
	f := newProductFixture()
	f.seller(1, "u1", "app1")
	f.products.On("ListBySeller", mock.Anything, "app1", 20, 0).Return([]*entity.Product{{ID: "p1"}, {ID: "p2"}}, nil)

	out, err := f.uc.ListMine(context.Background(), 1, 20, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
}
