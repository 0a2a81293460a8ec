package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/marketplace-bot/internal/application/dto"
	"github.com/jhoicas/marketplace-bot/internal/application/usecase"
	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/pkg/jwt"
	"github.com/jhoicas/marketplace-bot/pkg/telegram"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TelegramConfig datos para validar el initData de la WebApp.
type TelegramConfig struct {
	BotToken       string
	InitDataMaxAge time.Duration
	IsAdmin        func(telegramID int64) bool
}

// AuthUseCase login de la WebApp a partir del initData firmado por Telegram.
type AuthUseCase struct {
	users  *usecase.UserUseCase
	jwtCfg JWTConfig
	tgCfg  TelegramConfig
	now    func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users *usecase.UserUseCase, jwtCfg JWTConfig, tgCfg TelegramConfig) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg, tgCfg: tgCfg, now: time.Now}
}

// LoginWithTelegram valida initData, registra al usuario si no existe y emite un JWT.
func (uc *AuthUseCase) LoginWithTelegram(ctx context.Context, in dto.TelegramLoginRequest) (*dto.LoginResponse, error) {
	data, err := telegram.Validate(in.InitData, uc.tgCfg.BotToken, uc.tgCfg.InitDataMaxAge, uc.now())
	if err != nil {
		if errors.Is(err, telegram.ErrEmptyToken) {
			return nil, err
		}
		return nil, domain.ErrUnauthorized
	}
	isAdmin := false
	if uc.tgCfg.IsAdmin != nil {
		isAdmin = uc.tgCfg.IsAdmin(data.User.ID)
	}
	user, err := uc.users.EnsureUser(ctx, usecase.TelegramProfile{
		TelegramID: data.User.ID,
		Username:   data.User.Username,
		FirstName:  data.User.FirstName,
		LastName:   data.User.LastName,
	}, isAdmin)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.TelegramID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}
