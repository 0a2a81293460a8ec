package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
	"github.com/jhoicas/marketplace-bot/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, telegram_id, username, first_name, last_name, role, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. ErrDuplicate si el telegram_id ya existe.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.TelegramID, user.Username, user.FirstName, user.LastName, user.Role,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByTelegramID obtiene un usuario por su ID de Telegram.
func (r *UserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)
}

// UpdateProfile refresca username y nombres.
func (r *UserRepo) UpdateProfile(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET username = $2, first_name = $3, last_name = $4, updated_at = NOW()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, user.ID, user.Username, user.FirstName, user.LastName)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateRole cambia el rol del usuario.
func (r *UserRepo) UpdateRole(ctx context.Context, userID string, role entity.Role) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`, userID, role)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// PromoteRole cambia el rol de from a to en un solo UPDATE condicional.
// Una promoción concurrente a otro rol gana: no se pisa.
func (r *UserRepo) PromoteRole(ctx context.Context, userID string, from, to entity.Role) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE users SET role = $3, updated_at = NOW() WHERE id = $1 AND role = $2`, userID, from, to)
	if err != nil {
		return false, fmt.Errorf("promote user role: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &u.Role,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
