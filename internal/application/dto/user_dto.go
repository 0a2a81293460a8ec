package dto

import "time"

// TelegramLoginRequest entrada de login de la WebApp: initData crudo (query string) de Telegram.
type TelegramLoginRequest struct {
	InitData string `json:"init_data" validate:"required"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID         string    `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
