package repository

import (
	"context"

	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get devuelven (nil, nil) cuando no existe la fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error)
	// UpdateProfile refresca username y nombres (datos que cambian en Telegram).
	UpdateProfile(ctx context.Context, user *entity.User) error
	UpdateRole(ctx context.Context, userID string, role entity.Role) error
	// PromoteRole cambia el rol solo si el actual es from; false si no coincidía.
	PromoteRole(ctx context.Context, userID string, from, to entity.Role) (bool, error)
}
