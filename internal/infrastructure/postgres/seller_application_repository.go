package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
	"github.com/jhoicas/marketplace-bot/internal/domain/repository"
)

var _ repository.SellerApplicationRepository = (*SellerApplicationRepo)(nil)

const (
	sellerApplicationColumns = `id, user_id, company_name, tax_id, description, status, commission_rate, created_at, approved_at`

	// Índices parciales definidos en la migración inicial.
	uniquePendingPerUser  = "uq_seller_applications_pending_user"
	uniqueApprovedPerUser = "uq_seller_applications_approved_user"
)

// SellerApplicationRepo implementación del puerto SellerApplicationRepository (usable con pool o tx).
type SellerApplicationRepo struct {
	q Querier
}

// NewSellerApplicationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSellerApplicationRepository(q Querier) *SellerApplicationRepo {
	return &SellerApplicationRepo{q: q}
}

// Create persiste una solicitud. Si el usuario ya tiene una pendiente devuelve ErrDuplicatePendingApplication.
func (r *SellerApplicationRepo) Create(ctx context.Context, app *entity.SellerApplication) error {
	query := `
		INSERT INTO seller_applications (` + sellerApplicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		app.ID, app.UserID, app.CompanyName, app.TaxID, app.Description, app.Status,
		app.CommissionRate, app.CreatedAt, app.ApprovedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			switch violatedConstraint(err) {
			case uniquePendingPerUser:
				return domain.ErrDuplicatePendingApplication
			case uniqueApprovedPerUser:
				return domain.ErrConflict
			}
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotRegistered
		}
		return fmt.Errorf("insert seller application: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *SellerApplicationRepo) GetByID(ctx context.Context, id string) (*entity.SellerApplication, error) {
	return r.getOne(ctx, `SELECT `+sellerApplicationColumns+` FROM seller_applications WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la tx (solo tiene efecto dentro de una).
func (r *SellerApplicationRepo) GetForUpdate(ctx context.Context, id string) (*entity.SellerApplication, error) {
	return r.getOne(ctx, `SELECT `+sellerApplicationColumns+` FROM seller_applications WHERE id = $1 FOR UPDATE`, id)
}

// GetPendingByUser devuelve la solicitud pendiente del usuario, si hay.
func (r *SellerApplicationRepo) GetPendingByUser(ctx context.Context, userID string) (*entity.SellerApplication, error) {
	return r.getOne(ctx, `
		SELECT `+sellerApplicationColumns+` FROM seller_applications
		WHERE user_id = $1 AND status = 'pending'`, userID)
}

// GetApprovedByUser devuelve la solicitud aprobada del usuario (su "tienda"), si hay.
func (r *SellerApplicationRepo) GetApprovedByUser(ctx context.Context, userID string) (*entity.SellerApplication, error) {
	return r.getOne(ctx, `
		SELECT `+sellerApplicationColumns+` FROM seller_applications
		WHERE user_id = $1 AND status = 'approved'`, userID)
}

// ListByStatus lista las solicitudes en un estado, por orden de creación.
func (r *SellerApplicationRepo) ListByStatus(ctx context.Context, status entity.ApplicationStatus) ([]*entity.SellerApplication, error) {
	query := `
		SELECT ` + sellerApplicationColumns + ` FROM seller_applications
		WHERE status = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list seller applications: %w", err)
	}
	defer rows.Close()

	var list []*entity.SellerApplication
	for rows.Next() {
		app, err := scanSellerApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan seller application: %w", err)
		}
		list = append(list, app)
	}
	return list, rows.Err()
}

// UpdateStatus cambia estado y fecha de aprobación.
func (r *SellerApplicationRepo) UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus, approvedAt *time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE seller_applications SET status = $2, approved_at = $3 WHERE id = $1`,
		id, status, approvedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update seller application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SellerApplicationRepo) getOne(ctx context.Context, query string, arg any) (*entity.SellerApplication, error) {
	app, err := scanSellerApplication(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seller application: %w", err)
	}
	return app, nil
}

func scanSellerApplication(row pgx.Row) (*entity.SellerApplication, error) {
	var a entity.SellerApplication
	err := row.Scan(
		&a.ID, &a.UserID, &a.CompanyName, &a.TaxID, &a.Description, &a.Status,
		&a.CommissionRate, &a.CreatedAt, &a.ApprovedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
