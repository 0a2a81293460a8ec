package telegram_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
	"github.com/jhoicas/marketplace-bot/internal/domain/repository"
	"github.com/jhoicas/marketplace-bot/internal/interfaces/telegram"
)

// ─── messenger ───────────────────────────────────────────────────────────────

type outgoing struct {
	ChatID    int64
	MessageID int // != 0: edición
	Text      string
	Keyboard  telegram.Keyboard
}

type answer struct {
	ID   string
	Text string
}

type fakeMessenger struct {
	mu       sync.Mutex
	out      []outgoing
	answers  []answer
	failEdit bool
}

func (f *fakeMessenger) Send(_ context.Context, chatID int64, text string, kb telegram.Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.out = append(f.out, outgoing{ChatID: chatID, Text: text, Keyboard: kb})
	return nil
}

func (f *fakeMessenger) Edit(_ context.Context, chatID int64, messageID int, text string, kb telegram.Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failEdit {
		return errEdit
	}
	f.out = append(f.out, outgoing{ChatID: chatID, MessageID: messageID, Text: text, Keyboard: kb})
	return nil
}

func (f *fakeMessenger) AnswerCallback(_ context.Context, id, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, answer{ID: id, Text: text})
	return nil
}

func (f *fakeMessenger) last() outgoing {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.out) == 0 {
		return outgoing{}
	}
	return f.out[len(f.out)-1]
}

func (f *fakeMessenger) lastAnswer() answer {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.answers) == 0 {
		return answer{}
	}
	return f.answers[len(f.answers)-1]
}

func (f *fakeMessenger) to(chatID int64) []outgoing {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []outgoing
	for _, o := range f.out {
		if o.ChatID == chatID {
			out = append(out, o)
		}
	}
	return out
}

func (f *fakeMessenger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.out)
}

type messengerError string

func (e messengerError) Error() string { return string(e) }

const errEdit = messengerError("message is not modified")

// ─── base en memoria ─────────────────────────────────────────────────────────

type memDB struct {
	mu       sync.Mutex
	users    map[string]*entity.User
	apps     []*entity.SellerApplication
	products map[string]*entity.Product
	cart     map[[2]string]int
	favs     map[[2]string]bool
}

func newMemDB() *memDB {
	return &memDB{
		users:    map[string]*entity.User{},
		products: map[string]*entity.Product{},
		cart:     map[[2]string]int{},
		favs:     map[[2]string]bool{},
	}
}

func (db *memDB) userByTID(tid int64) *entity.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.TelegramID == tid {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (db *memDB) applications() []entity.SellerApplication {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]entity.SellerApplication, 0, len(db.apps))
	for _, a := range db.apps {
		out = append(out, *a)
	}
	return out
}

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
	return r.db.userByTID(tid), nil
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

func (r memApps) find(pred func(*entity.SellerApplication) bool) *entity.SellerApplication {
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
	return r.find(func(a *entity.SellerApplication) bool { return a.ID == id }), nil
}

func (r memApps) GetForUpdate(ctx context.Context, id string) (*entity.SellerApplication, error) {
	return r.GetByID(ctx, id)
}

func (r memApps) GetPendingByUser(_ context.Context, userID string) (*entity.SellerApplication, error) {
	return r.find(func(a *entity.SellerApplication) bool {
		return a.UserID == userID && a.Status == entity.ApplicationPending
	}), nil
}

func (r memApps) GetApprovedByUser(_ context.Context, userID string) (*entity.SellerApplication, error) {
	return r.find(func(a *entity.SellerApplication) bool {
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

// memTx serializa las aprobaciones; sin fallos inyectados no hace falta rollback.
type memTx struct {
	db *memDB
	mu *sync.Mutex
}

func (t memTx) RunApproval(_ context.Context, fn func(repository.SellerApplicationRepository, repository.UserRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(memApps{db: t.db}, memUsers{db: t.db})
}

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

func (r memProducts) Update(ctx context.Context, p *entity.Product) error {
	return r.Create(ctx, p)
}

func (r memProducts) ListBySeller(_ context.Context, appID string, _, _ int) ([]*entity.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.db.products {
		if p.SellerApplicationID == appID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memProducts) ListAvailable(_ context.Context, _, _ int) ([]*entity.CatalogItem, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.CatalogItem
	for _, p := range r.db.products {
		if p.IsAvailable {
			out = append(out, &entity.CatalogItem{Product: *p})
		}
	}
	return out, nil
}

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
	return out, nil
}

type memFavorites struct{ db *memDB }

var _ repository.FavoriteRepository = memFavorites{}

func (r memFavorites) Add(_ context.Context, userID, productID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	k := [2]string{userID, productID}
	if r.db.favs[k] {
		return false, nil
	}
	r.db.favs[k] = true
	return true, nil
}

func (r memFavorites) Remove(_ context.Context, userID, productID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.favs, [2]string{userID, productID})
	return nil
}

func (r memFavorites) List(_ context.Context, userID string) ([]*entity.CatalogItem, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.CatalogItem
	for k := range r.db.favs {
		if k[0] == userID {
			out = append(out, &entity.CatalogItem{Product: *r.db.products[k[1]]})
		}
	}
	return out, nil
}
