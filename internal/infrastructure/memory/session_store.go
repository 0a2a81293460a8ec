// Package memory almacén de sesiones del diálogo en memoria del proceso.
// Un reinicio pierde todas las sesiones (los usuarios vuelven a idle).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/marketplace-bot/internal/domain/conversation"
)

var _ conversation.Store = (*SessionStore)(nil)

// SessionStore implementación de conversation.Store sobre un map protegido por mutex.
// Con ttl > 0 las sesiones sin actividad durante ttl se descartan (al leer y en Sweep).
type SessionStore struct {
	mu    sync.Mutex
	items map[int64]conversation.Session
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionStore construye el almacén. ttl = 0 conserva las sesiones indefinidamente.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{items: make(map[int64]conversation.Session), ttl: ttl, now: time.Now}
}

// Get devuelve la sesión del usuario o una idle si no hay (o expiró).
func (s *SessionStore) Get(_ context.Context, telegramID int64) (conversation.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.items[telegramID]
	if !ok {
		return conversation.Session{State: conversation.StateIdle}, nil
	}
	if s.expired(sess) {
		delete(s.items, telegramID)
		return conversation.Session{State: conversation.StateIdle}, nil
	}
	return sess, nil
}

// Save guarda la sesión; una sesión idle equivale a Clear.
func (s *SessionStore) Save(_ context.Context, telegramID int64, sess conversation.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !sess.Active() {
		delete(s.items, telegramID)
		return nil
	}
	if sess.UpdatedAt.IsZero() {
		sess.UpdatedAt = s.now()
	}
	s.items[telegramID] = sess
	return nil
}

// Clear vuelve al usuario a idle.
func (s *SessionStore) Clear(_ context.Context, telegramID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, telegramID)
	return nil
}

// Len cantidad de sesiones en curso.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep elimina las sesiones expiradas y devuelve cuántas eliminó.
func (s *SessionStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.items {
		if s.expired(sess) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

// RunSweeper llama a Sweep cada interval hasta que ctx se cancele. No hace nada si ttl = 0.
func (s *SessionStore) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(n int)) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}

func (s *SessionStore) expired(sess conversation.Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.UpdatedAt) > s.ttl
}
