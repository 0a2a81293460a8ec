package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/marketplace-bot/internal/application/seller"
	"github.com/jhoicas/marketplace-bot/internal/domain/repository"
)

var _ seller.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunApproval inicia una transacción, ejecuta fn con los repos de solicitudes y usuarios atados a la tx
// y hace Commit; ante cualquier error (o panic) la tx se descarta con Rollback.
func (r *TxRunner) RunApproval(ctx context.Context, fn func(
	apps repository.SellerApplicationRepository,
	users repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSellerApplicationRepository(tx), NewUserRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
