package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error) {
	args := m.Called(ctx, telegramID)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, userID string, role entity.Role) error {
	return m.Called(ctx, userID, role).Error(0)
}

func (m *mockUserRepo) PromoteRole(ctx context.Context, userID string, from, to entity.Role) (bool, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Bool(0), args.Error(1)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) ListBySeller(ctx context.Context, appID string, limit, offset int) ([]*entity.Product, error) {
	args := m.Called(ctx, appID, limit, offset)
	list, _ := args.Get(0).([]*entity.Product)
	return list, args.Error(1)
}

func (m *mockProductRepo) ListAvailable(ctx context.Context, limit, offset int) ([]*entity.CatalogItem, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]*entity.CatalogItem)
	return list, args.Error(1)
}

type mockAppRepo struct{ mock.Mock }

func (m *mockAppRepo) Create(ctx context.Context, a *entity.SellerApplication) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAppRepo) GetByID(ctx context.Context, id string) (*entity.SellerApplication, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*entity.SellerApplication)
	return a, args.Error(1)
}

func (m *mockAppRepo) GetForUpdate(ctx context.Context, id string) (*entity.SellerApplication, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*entity.SellerApplication)
	return a, args.Error(1)
}

func (m *mockAppRepo) GetPendingByUser(ctx context.Context, userID string) (*entity.SellerApplication, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).(*entity.SellerApplication)
	return a, args.Error(1)
}

func (m *mockAppRepo) GetApprovedByUser(ctx context.Context, userID string) (*entity.SellerApplication, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).(*entity.SellerApplication)
	return a, args.Error(1)
}

func (m *mockAppRepo) ListByStatus(ctx context.Context, status entity.ApplicationStatus) ([]*entity.SellerApplication, error) {
	args := m.Called(ctx, status)
	list, _ := args.Get(0).([]*entity.SellerApplication)
	return list, args.Error(1)
}

func (m *mockAppRepo) UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus, at *time.Time) error {
	return m.Called(ctx, id, status, at).Error(0)
}

type mockCartRepo struct{ mock.Mock }

func (m *mockCartRepo) Add(ctx context.Context, userID, productID string, qty int) error {
	return m.Called(ctx, userID, productID, qty).Error(0)
}

func (m *mockCartRepo) Decrement(ctx context.Context, userID, productID string, qty int) error {
	return m.Called(ctx, userID, productID, qty).Error(0)
}

func (m *mockCartRepo) Remove(ctx context.Context, userID, productID string) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *mockCartRepo) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockCartRepo) ListLines(ctx context.Context, userID string) ([]entity.CartLine, error) {
	args := m.Called(ctx, userID)
	lines, _ := args.Get(0).([]entity.CartLine)
	return lines, args.Error(1)
}

type mockFavoriteRepo struct{ mock.Mock }

func (m *mockFavoriteRepo) Add(ctx context.Context, userID, productID string) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavoriteRepo) Remove(ctx context.Context, userID, productID string) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *mockFavoriteRepo) List(ctx context.Context, userID string) ([]*entity.CatalogItem, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*entity.CatalogItem)
	return list, args.Error(1)
}
