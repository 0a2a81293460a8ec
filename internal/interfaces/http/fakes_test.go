package http_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
	"github.com/jhoicas/marketplace-bot/internal/domain/repository"
)

// memDB base en memoria con los mismos contratos que los repos PostgreSQL.
type memDB struct {
	mu        sync.Mutex
	users     map[string]*entity.User
	apps      []*entity.SellerApplication
	products  map[string]*entity.Product
	cart      map[[2]string]int
	favorites map[[2]string]time.Time
}

func newMemDB() *memDB {
	return &memDB{
		users:     map[string]*entity.User{},
		products:  map[string]*entity.Product{},
		cart:      map[[2]string]int{},
		favorites: map[[2]string]time.Time{},
	}
}

// ─── users ───────────────────────────────────────────────────────────────────

type memUsers struct{ db *memDB }

var _ repository.UserRepository = memUsers{}

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, x := range r.db.users {
		if x.TelegramID == u.TelegramID {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if u, ok := r.db.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r memUsers) GetByTelegramID(_ context.Context, tid int64) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.TelegramID == tid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memUsers) UpdateProfile(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	x, ok := r.db.users[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	x.Username, x.FirstName, x.LastName = u.Username, u.FirstName, u.LastName
	return nil
}

func (r memUsers) UpdateRole(_ context.Context, id string, role entity.Role) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	x, ok := r.db.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	x.Role = role
	return nil
}

func (r memUsers) PromoteRole(_ context.Context, id string, from, to entity.Role) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	x, ok := r.db.users[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if x.Role != from {
		return false, nil
	}
	x.Role = to
	return true, nil
}

// ─── seller applications ─────────────────────────────────────────────────────

type memApps struct{ db *memDB }

var _ repository.SellerApplicationRepository = memApps{}

func (r memApps) Create(_ context.Context, a *entity.SellerApplication) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, x := range r.db.apps {
		if x.UserID == a.UserID && x.Status == entity.ApplicationPending {
			return domain.ErrDuplicatePendingApplication
		}
	}
	cp := *a
	r.db.apps = append(r.db.apps, &cp)
	return nil
}

func (r memApps) first(pred func(*entity.SellerApplication) bool) *entity.SellerApplication {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, x := range r.db.apps {
		if pred(x) {
			cp := *x
			return &cp
		}
	}
	return nil
}

func (r memApps) GetByID(_ context.Context, id string) (*entity.SellerApplication, error) {
	return r.first(func(a *entity.SellerApplication) bool { return a.ID == id }), nil
}

func (r memApps) GetForUpdate(ctx context.Context, id string) (*entity.SellerApplication, error) {
	return r.GetByID(ctx, id)
}

func (r memApps) GetPendingByUser(_ context.Context, userID string) (*entity.SellerApplication, error) {
	return r.first(func(a *entity.SellerApplication) bool {
		return a.UserID == userID && a.Status == entity.ApplicationPending
	}), nil
}

func (r memApps) GetApprovedByUser(_ context.Context, userID string) (*entity.SellerApplication, error) {
	return r.first(func(a *entity.SellerApplication) bool {
		return a.UserID == userID && a.Status == entity.ApplicationApproved
	}), nil
}

func (r memApps) ListByStatus(_ context.Context, status entity.ApplicationStatus) ([]*entity.SellerApplication, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.SellerApplication
	for _, x := range r.db.apps {
		if x.Status == status {
			cp := *x
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memApps) UpdateStatus(_ context.Context, id string, status entity.ApplicationStatus, at *time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, x := range r.db.apps {
		if x.ID == id {
			x.Status, x.ApprovedAt = status, at
			return nil
		}
	}
	return domain.ErrNotFound
}

// memTx sin rollback: los tests HTTP no inyectan fallos a mitad de transacción.
type memTx struct{ db *memDB }

func (t memTx) RunApproval(_ context.Context, fn func(repository.SellerApplicationRepository, repository.UserRepository) error) error {
	return fn(memApps(t), memUsers(t))
}

// ─── products ────────────────────────────────────────────────────────────────

type memProducts struct{ db *memDB }

var _ repository.ProductRepository = memProducts{}

func (r memProducts) Create(_ context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *p
	r.db.products[p.ID] = &cp
	return nil
}

func (r memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if p, ok := r.db.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r memProducts) Update(_ context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.db.products[p.ID] = &cp
	return nil
}

func (r memProducts) sorted(pred func(*entity.Product) bool) []*entity.Product {
	var out []*entity.Product
	for _, p := range r.db.products {
		if pred(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list
}

func (r memProducts) ListBySeller(_ context.Context, sellerAppID string, limit, offset int) ([]*entity.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return page(r.sorted(func(p *entity.Product) bool { return p.SellerApplicationID == sellerAppID }), limit, offset), nil
}

func (r memProducts) catalogItem(p *entity.Product) *entity.CatalogItem {
	it := &entity.CatalogItem{Product: *p}
	for _, a := range r.db.apps {
		if a.ID == p.SellerApplicationID {
			it.SellerName = a.CompanyName
		}
	}
	return it
}

func (r memProducts) ListAvailable(_ context.Context, limit, offset int) ([]*entity.CatalogItem, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.CatalogItem
	for _, p := range page(r.sorted(func(p *entity.Product) bool { return p.IsAvailable }), limit, offset) {
		out = append(out, r.catalogItem(p))
	}
	return out, nil
}

// ─── cart / favorites ────────────────────────────────────────────────────────

type memCart struct{ db *memDB }

var _ repository.CartRepository = memCart{}

func (r memCart) Add(_ context.Context, userID, productID string, qty int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.cart[[2]string{userID, productID}] += qty
	return nil
}

func (r memCart) Decrement(_ context.Context, userID, productID string, qty int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	k := [2]string{userID, productID}
	if r.db.cart[k] <= qty {
		delete(r.db.cart, k)
		return nil
	}
	r.db.cart[k] -= qty
	return nil
}

func (r memCart) Remove(_ context.Context, userID, productID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.cart, [2]string{userID, productID})
	return nil
}

func (r memCart) Clear(_ context.Context, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for k := range r.db.cart {
		if k[0] == userID {
			delete(r.db.cart, k)
		}
	}
	return nil
}

func (r memCart) ListLines(_ context.Context, userID string) ([]entity.CartLine, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []entity.CartLine
	for k, qty := range r.db.cart {
		if k[0] != userID {
			continue
		}
		p := r.db.products[k[1]]
		out = append(out, entity.CartLine{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memFavorites struct{ db *memDB }

var _ repository.FavoriteRepository = memFavorites{}

func (r memFavorites) Add(_ context.Context, userID, productID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	k := [2]string{userID, productID}
	if _, ok := r.db.favorites[k]; ok {
		return false, nil
	}
	r.db.favorites[k] = time.Now()
	return true, nil
}

func (r memFavorites) Remove(_ context.Context, userID, productID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.favorites, [2]string{userID, productID})
	return nil
}

func (r memFavorites) List(_ context.Context, userID string) ([]*entity.CatalogItem, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.CatalogItem
	for k := range r.db.favorites {
		if k[0] == userID {
			out = append(out, memProducts(r).catalogItem(r.db.products[k[1]]))
		}
	}
	return out, nil
}
