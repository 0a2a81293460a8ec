package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/marketplace-bot/internal/application/access"
	"github.com/jhoicas/marketplace-bot/internal/application/dto"
	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
	"github.com/jhoicas/marketplace-bot/internal/domain/repository"
)

// TelegramProfile datos de identidad que llegan de Telegram en cada interacción.
type TelegramProfile struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

// UserUseCase alta y consulta de usuarios del marketplace.
type UserUseCase struct {
	repo  repository.UserRepository
	authz *access.Authorizer
	now   func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, authz *access.Authorizer) *UserUseCase {
	return &UserUseCase{repo: repo, authz: authz, now: time.Now}
}

// EnsureUser crea el usuario (rol buyer) si no existe y refresca sus datos de perfil si cambiaron.
// promoteAdmin aplica la promoción fuera de banda configurada en ADMIN_IDS.
func (uc *UserUseCase) EnsureUser(ctx context.Context, p TelegramProfile, promoteAdmin bool) (*entity.User, error) {
	if p.TelegramID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByTelegramID(ctx, p.TelegramID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if user == nil {
		user = &entity.User{
			ID:         uuid.New().String(),
			TelegramID: p.TelegramID,
			Username:   p.Username,
			FirstName:  p.FirstName,
			LastName:   p.LastName,
			Role:       entity.RoleBuyer,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.repo.Create(ctx, user); err != nil {
			if !errors.Is(err, domain.ErrDuplicate) {
				return nil, err
			}
			// Otro update del mismo usuario lo creó primero.
			if user, err = uc.repo.GetByTelegramID(ctx, p.TelegramID); err != nil || user == nil {
				return nil, domain.ErrConflict
			}
		}
	} else if user.Username != p.Username || user.FirstName != p.FirstName || user.LastName != p.LastName {
		user.Username, user.FirstName, user.LastName = p.Username, p.FirstName, p.LastName
		user.UpdatedAt = now
		if err := uc.repo.UpdateProfile(ctx, user); err != nil {
			return nil, err
		}
	}
	if promoteAdmin && user.Role != entity.RoleAdmin {
		if err := uc.repo.UpdateRole(ctx, user.ID, entity.RoleAdmin); err != nil {
			return nil, err
		}
		user.Role = entity.RoleAdmin
	}
	return user, nil
}

// Profile devuelve el perfil con el rol leído en este momento.
func (uc *UserUseCase) Profile(ctx context.Context, telegramID int64) (*dto.UserResponse, error) {
	user, err := uc.authz.CurrentUser(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// GetByID busca por ID interno; ErrNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// ToUserResponse convierte la entidad en DTO.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		TelegramID: u.TelegramID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       string(u.Role),
		CreatedAt:  u.CreatedAt,
	}
}
