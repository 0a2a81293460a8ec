// Package redis almacén de sesiones del diálogo en Redis: sobrevive reinicios y se comparte entre réplicas.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/marketplace-bot/internal/domain/conversation"
	"github.com/jhoicas/marketplace-bot/pkg/config"
)

const keyPrefix = "marketplace:seller_registration:"

var _ conversation.Store = (*SessionStore)(nil)

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// SessionStore implementación de conversation.Store con una clave JSON por usuario.
// ttl > 0 se aplica como expiración de la clave y se renueva en cada Save.
type SessionStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewSessionStore construye el almacén.
func NewSessionStore(client redis.Cmdable, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Get devuelve la sesión o una idle si la clave no existe.
func (s *SessionStore) Get(ctx context.Context, telegramID int64) (conversation.Session, error) {
	raw, err := s.client.Get(ctx, key(telegramID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return conversation.Session{State: conversation.StateIdle}, nil
		}
		return conversation.Session{}, fmt.Errorf("get session: %w", err)
	}
	var sess conversation.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return conversation.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// Save guarda la sesión; una sesión idle borra la clave.
func (s *SessionStore) Save(ctx context.Context, telegramID int64, sess conversation.Session) error {
	if !sess.Active() {
		return s.Clear(ctx, telegramID)
	}
	if sess.UpdatedAt.IsZero() {
		sess.UpdatedAt = time.Now()
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, key(telegramID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Clear elimina la clave del usuario.
func (s *SessionStore) Clear(ctx context.Context, telegramID int64) error {
	if err := s.client.Del(ctx, key(telegramID)).Err(); err != nil {
		return fmt.Errorf("del session: %w", err)
	}
	return nil
}

func key(telegramID int64) string {
	return keyPrefix + strconv.FormatInt(telegramID, 10)
}
