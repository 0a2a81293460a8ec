package seller

import (
	"context"

	"github.com/jhoicas/marketplace-bot/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback: ni la solicitud ni el rol del usuario cambian.
type TxRunner interface {
	RunApproval(ctx context.Context, fn func(
		apps repository.SellerApplicationRepository,
		users repository.UserRepository,
	) error) error
}
