package entity

import "time"

// Role rol plano del usuario. No hay jerarquía: cada acción enumera los roles que acepta.
type Role string

// Roles válidos para User.
const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Valid informa si r es uno de los tres roles conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// User representa una identidad de Telegram registrada en el marketplace.
// Existe exactamente un User por TelegramID.
type User struct {
	ID         string
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	Role       Role // buyer al crearse; seller solo vía aprobación; admin fuera de banda
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
