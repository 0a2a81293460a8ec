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

type cartFixture struct {
	users    *mockUserRepo
	products *mockProductRepo
	cart     *mockCartRepo
	favs     *mockFavoriteRepo
	cartUC   *usecase.CartUseCase
	favUC    *usecase.FavoriteUseCase
}

func newCartFixture() *cartFixture {
	f := &cartFixture{users: new(mockUserRepo), products: new(mockProductRepo), cart: new(mockCartRepo), favs: new(mockFavoriteRepo)}
	authz := access.NewAuthorizer(f.users)
	f.cartUC = usecase.NewCartUseCase(f.cart, f.products, authz)
	f.favUC = usecase.NewFavoriteUseCase(f.favs, f.products, authz)
	f.users.On("GetByTelegramID", mock.Anything, int64(1)).Return(&entity.User{ID: "u1", TelegramID: 1, Role: entity.RoleBuyer}, nil)
	f.users.On("GetByTelegramID", mock.Anything, int64(99)).Return(nil, nil)
	return f
}

func TestCartGet_Total(t *testing.T) {
	f := newCartFixture()
	f.cart.On("ListLines", mock.Anything, "u1").Return([]entity.CartLine{
		{ProductID: "p1", Name: "Чай", Price: decimal.RequireFromString("99.90"), Quantity: 2},
		{ProductID: "p2", Name: "Мёд", Price: decimal.NewFromInt(300), Quantity: 1},
	}, nil)

	out, err := f.cartUC.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].Total.Equal(decimal.RequireFromString("199.80")))
	assert.True(t, out.Total.Equal(decimal.RequireFromString("499.80")))
}

func TestCartGet_NotRegistered(t *testing.T) {
	f := newCartFixture()
	_, err := f.cartUC.Get(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotRegistered)
}

func TestCartAdd_DefaultQuantity(t *testing.T) {
	f := newCartFixture()
	id := uuid.NewString()
	f.products.On("GetByID", mock.Anything, id).Return(&entity.Product{ID: id, IsAvailable: true}, nil)
	f.cart.On("Add", mock.Anything, "u1", id, 1).Return(nil)

	require.NoError(t, f.cartUC.Add(context.Background(), 1, dto.AddToCartRequest{ProductID: id}))
	f.cart.AssertExpectations(t)
}

func TestCartAdd_Unavailable(t *testing.T) {
	f := newCartFixture()
	id := uuid.NewString()
	f.products.On("GetByID", mock.Anything, id).Return(&entity.Product{ID: id, IsAvailable: false}, nil)

	err := f.cartUC.Add(context.Background(), 1, dto.AddToCartRequest{ProductID: id, Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrProductUnavailable)
	f.cart.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartAdd_UnknownProduct(t *testing.T) {
	f := newCartFixture()
	id := uuid.NewString()
	f.products.On("GetByID", mock.Anything, id).Return(nil, nil)

	assert.ErrorIs(t, f.cartUC.Add(context.Background(), 1, dto.AddToCartRequest{ProductID: id}), domain.ErrNotFound)
	assert.ErrorIs(t, f.cartUC.Add(context.Background(), 1, dto.AddToCartRequest{ProductID: "bad"}), domain.ErrNotFound)
}

func TestCartRemove(t *testing.T) {
	f := newCartFixture()
	id := uuid.NewString()
	f.cart.On("Remove", mock.Anything, "u1", id).Return(nil)
	f.cart.On("Decrement", mock.Anything, "u1", id, 2).Return(nil)

	require.NoError(t, f.cartUC.Remove(context.Background(), 1, id, nil))
	two := 2
	require.NoError(t, f.cartUC.Remove(context.Background(), 1, id, &two))
	zero := 0
	assert.ErrorIs(t, f.cartUC.Remove(context.Background(), 1, id, &zero), domain.ErrInvalidInput)
	f.cart.AssertExpectations(t)
}

func TestFavoriteAdd_Idempotent(t *testing.T) {
	f := newCartFixture()
	id := uuid.NewString()
	f.products.On("GetByID", mock.Anything, id).Return(&entity.Product{ID: id}, nil)
	f.favs.On("Add", mock.Anything, "u1", id).Return(true, nil).Once()
	f.favs.On("Add", mock.Anything, "u1", id).Return(false, nil).Once()

	first, err := f.favUC.Add(context.Background(), 1, id)
	require.NoError(t, err)
	assert.Equal(t, usecase.StatusSuccess, first.Status)

	second, err := f.favUC.Add(context.Background(), 1, id)
	require.NoError(t, err)
	assert.Equal(t, usecase.StatusAlreadyExists, second.Status)
}

func TestFavoriteAdd_UnknownProduct(t *testing.T) {
	f := newCartFixture()
	id := uuid.NewString()
	f.products.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, err := f.favUC.Add(context.Background(), 1, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFavoriteList(t *testing.T) {
	f := newCartFixture()
	f.favs.On("List", mock.Anything, "u1").Return([]*entity.CatalogItem{{Product: entity.Product{ID: "p1"}, SellerName: "Лавка"}}, nil)

	out, err := f.favUC.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Лавка", out.Items[0].SellerName)
}
