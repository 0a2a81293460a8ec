// Package access deriva los permisos de una identidad a partir del rol guardado.
// Cada acción declara como dato el conjunto exacto de roles que acepta.
package access

import (
	"context"

	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
	"github.com/jhoicas/marketplace-bot/internal/domain/repository"
)

// RoleSet conjunto explícito de roles aceptados por una acción.
// No hay jerarquía: admin no pasa un chequeo que solo acepta seller.
type RoleSet map[entity.Role]struct{}

// Roles construye un RoleSet.
func Roles(roles ...entity.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Allows informa si r está en el conjunto (comparación exacta).
func (s RoleSet) Allows(r entity.Role) bool {
	_, ok := s[r]
	return ok
}

// Authorizer resuelve el usuario y su rol contra la base en cada llamada (sin caché).
type Authorizer struct {
	users repository.UserRepository
}

// NewAuthorizer construye el autorizador.
func NewAuthorizer(users repository.UserRepository) *Authorizer {
	return &Authorizer{users: users}
}

// CurrentUser devuelve el usuario o ErrNotRegistered si no hay fila para telegramID.
func (a *Authorizer) CurrentUser(ctx context.Context, telegramID int64) (*entity.User, error) {
	user, err := a.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotRegistered
	}
	return user, nil
}

// GetRole devuelve el rol actual del usuario.
func (a *Authorizer) GetRole(ctx context.Context, telegramID int64) (entity.Role, error) {
	user, err := a.CurrentUser(ctx, telegramID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// Require devuelve el usuario si su rol está en allowed; si no, ErrForbidden.
func (a *Authorizer) Require(ctx context.Context, telegramID int64, allowed RoleSet) (*entity.User, error) {
	user, err := a.CurrentUser(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if !allowed.Allows(user.Role) {
		return nil, domain.ErrForbidden
	}
	return user, nil
}
