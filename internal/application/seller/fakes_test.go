package seller_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/conversation"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
	"github.com/jhoicas/marketplace-bot/internal/domain/repository"
)

// ─── Base en memoria compartida por los repositorios fake ────────────────────

type fakeDB struct {
	mu    sync.Mutex
	txMu  sync.Mutex // serializa transacciones (equivale al bloqueo de fila)
	users map[string]*entity.User
	apps  []*entity.SellerApplication

	failUpdateRole error
}

func newFakeDB() *fakeDB {
	return &fakeDB{users: make(map[string]*entity.User)}
}

func (db *fakeDB) addUser(id string, telegramID int64, role entity.Role) *entity.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	u := &entity.User{ID: id, TelegramID: telegramID, Role: role}
	db.users[id] = u
	return u
}

func (db *fakeDB) role(userID string) entity.Role {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.users[userID].Role
}

func (db *fakeDB) app(id string) entity.SellerApplication {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, a := range db.apps {
		if a.ID == id {
			return *a
		}
	}
	return entity.SellerApplication{}
}

func (db *fakeDB) snapshot() (map[string]entity.User, []entity.SellerApplication) {
	db.mu.Lock()
	defer db.mu.Unlock()
	users := make(map[string]entity.User, len(db.users))
	for id, u := range db.users {
		users[id] = *u
	}
	apps := make([]entity.SellerApplication, len(db.apps))
	for i, a := range db.apps {
		apps[i] = *a
	}
	return users, apps
}

func (db *fakeDB) restore(users map[string]entity.User, apps []entity.SellerApplication) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users = make(map[string]*entity.User, len(users))
	for id, u := range users {
		u := u
		db.users[id] = &u
	}
	db.apps = make([]*entity.SellerApplication, len(apps))
	for i := range apps {
		a := apps[i]
		db.apps[i] = &a
	}
}

// ─── UserRepository ──────────────────────────────────────────────────────────

type fakeUserRepo struct{ db *fakeDB }

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.TelegramID == user.TelegramID {
			return domain.ErrDuplicate
		}
	}
	cp := *user
	r.db.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if u, ok := r.db.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByTelegramID(_ context.Context, telegramID int64) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.TelegramID == telegramID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[user.ID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Username, u.FirstName, u.LastName = user.Username, user.FirstName, user.LastName
	return nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, userID string, role entity.Role) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failUpdateRole != nil {
		return r.db.failUpdateRole
	}
	u, ok := r.db.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) PromoteRole(_ context.Context, userID string, from, to entity.Role) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failUpdateRole != nil {
		return false, r.db.failUpdateRole
	}
	u, ok := r.db.users[userID]
	if !ok {
		return false, domain.ErrNotFound
	}
	if u.Role != from {
		return false, nil
	}
	u.Role = to
	return true, nil
}

// ─── SellerApplicationRepository ─────────────────────────────────────────────

type fakeAppRepo struct{ db *fakeDB }

var _ repository.SellerApplicationRepository = (*fakeAppRepo)(nil)

func (r *fakeAppRepo) Create(_ context.Context, app *entity.SellerApplication) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.apps {
		if a.UserID == app.UserID && a.Status == entity.ApplicationPending {
			return domain.ErrDuplicatePendingApplication
		}
	}
	cp := *app
	r.db.apps = append(r.db.apps, &cp)
	return nil
}

func (r *fakeAppRepo) find(pred func(*entity.SellerApplication) bool) *entity.SellerApplication {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.apps {
		if pred(a) {
			cp := *a
			return &cp
		}
	}
	return nil
}

func (r *fakeAppRepo) GetByID(_ context.Context, id string) (*entity.SellerApplication, error) {
	return r.find(func(a *entity.SellerApplication) bool { return a.ID == id }), nil
}

func (r *fakeAppRepo) GetForUpdate(ctx context.Context, id string) (*entity.SellerApplication, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeAppRepo) GetPendingByUser(_ context.Context, userID string) (*entity.SellerApplication, error) {
	return r.find(func(a *entity.SellerApplication) bool {
		return a.UserID == userID && a.Status == entity.ApplicationPending
	}), nil
}

func (r *fakeAppRepo) GetApprovedByUser(_ context.Context, userID string) (*entity.SellerApplication, error) {
	return r.find(func(a *entity.SellerApplication) bool {
		return a.UserID == userID && a.Status == entity.ApplicationApproved
	}), nil
}

func (r *fakeAppRepo) ListByStatus(_ context.Context, status entity.ApplicationStatus) ([]*entity.SellerApplication, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.SellerApplication
	for _, a := range r.db.apps {
		if a.Status == status {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAppRepo) UpdateStatus(_ context.Context, id string, status entity.ApplicationStatus, approvedAt *time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.apps {
		if a.ID == id {
			a.Status = status
			a.ApprovedAt = approvedAt
			return nil
		}
	}
	return domain.ErrNotFound
}

// ─── TxRunner con rollback ───────────────────────────────────────────────────

type fakeTxRunner struct{ db *fakeDB }

func (t *fakeTxRunner) RunApproval(_ context.Context, fn func(repository.SellerApplicationRepository, repository.UserRepository) error) error {
	t.db.txMu.Lock()
	defer t.db.txMu.Unlock()
	users, apps := t.db.snapshot()
	if err := fn(&fakeAppRepo{db: t.db}, &fakeUserRepo{db: t.db}); err != nil {
		t.db.restore(users, apps)
		return err
	}
	return nil
}

// ─── Almacén de sesiones que falla ───────────────────────────────────────────

var errStore = errors.New("store caído")

type failingStore struct{}

func (failingStore) Get(context.Context, int64) (conversation.Session, error) {
	return conversation.Session{}, errStore
}
func (failingStore) Save(context.Context, int64, conversation.Session) error { return errStore }
func (failingStore) Clear(context.Context, int64) error                      { return errStore }
