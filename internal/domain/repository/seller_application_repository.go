package repository

import (
	"context"
	"time"

	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
)

// SellerApplicationRepository define el puerto de persistencia para SellerApplication (DIP).
type SellerApplicationRepository interface {
	// Create devuelve domain.ErrDuplicatePendingApplication si el usuario ya tiene una pendiente.
	Create(ctx context.Context, app *entity.SellerApplication) error
	GetByID(ctx context.Context, id string) (*entity.SellerApplication, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.SellerApplication, error)
	GetPendingByUser(ctx context.Context, userID string) (*entity.SellerApplication, error)
	GetApprovedByUser(ctx context.Context, userID string) (*entity.SellerApplication, error)
	ListByStatus(ctx context.Context, status entity.ApplicationStatus) ([]*entity.SellerApplication, error)
	UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus, approvedAt *time.Time) error
}
