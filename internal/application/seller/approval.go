package seller

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/marketplace-bot/internal/application/access"
	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
	"github.com/jhoicas/marketplace-bot/internal/domain/repository"
)

// Solo admin revisa solicitudes.
var reviewRoles = access.Roles(entity.RoleAdmin)

// ApprovalUseCase revisión de solicitudes pendientes por un admin.
type ApprovalUseCase struct {
	authz    *access.Authorizer
	apps     repository.SellerApplicationRepository
	txRunner TxRunner
	now      func() time.Time
}

// NewApprovalUseCase construye el caso de uso.
func NewApprovalUseCase(authz *access.Authorizer, apps repository.SellerApplicationRepository, txRunner TxRunner) *ApprovalUseCase {
	return &ApprovalUseCase{authz: authz, apps: apps, txRunner: txRunner, now: time.Now}
}

// ListPending devuelve las solicitudes pendientes en el orden natural del almacenamiento.
func (uc *ApprovalUseCase) ListPending(ctx context.Context, callerTelegramID int64) ([]*entity.SellerApplication, error) {
	if _, err := uc.authz.Require(ctx, callerTelegramID, reviewRoles); err != nil {
		return nil, err
	}
	return uc.apps.ListByStatus(ctx, entity.ApplicationPending)
}

// Get devuelve una solicitud para mostrarla al admin antes de decidir.
func (uc *ApprovalUseCase) Get(ctx context.Context, callerTelegramID int64, applicationID string) (*entity.SellerApplication, error) {
	if _, err := uc.authz.Require(ctx, callerTelegramID, reviewRoles); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(applicationID); err != nil {
		return nil, domain.ErrNotFound
	}
	app, err := uc.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	return app, nil
}

// Approve marca la solicitud como aprobada y promueve al dueño a seller en una sola transacción.
// Si el dueño ya no es buyer (admin por ADMIN_IDS) la solicitud se aprueba sin tocar su rol.
// ErrNotFound si no existe; ErrApplicationAlreadyProcessed si ya no está pendiente (segunda llamada incluida).
func (uc *ApprovalUseCase) Approve(ctx context.Context, callerTelegramID int64, applicationID string) (*entity.SellerApplication, error) {
	return uc.review(ctx, callerTelegramID, applicationID, entity.ApplicationApproved)
}

// Reject marca la solicitud como rechazada; el rol del dueño no cambia.
// Una solicitud rechazada no impide volver a solicitar.
func (uc *ApprovalUseCase) Reject(ctx context.Context, callerTelegramID int64, applicationID string) (*entity.SellerApplication, error) {
	return uc.review(ctx, callerTelegramID, applicationID, entity.ApplicationRejected)
}

func (uc *ApprovalUseCase) review(ctx context.Context, callerTelegramID int64, applicationID string, status entity.ApplicationStatus) (*entity.SellerApplication, error) {
	if _, err := uc.authz.Require(ctx, callerTelegramID, reviewRoles); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(applicationID); err != nil {
		return nil, domain.ErrNotFound
	}

	var reviewed *entity.SellerApplication
	err := uc.txRunner.RunApproval(ctx, func(apps repository.SellerApplicationRepository, users repository.UserRepository) error {
		app, err := apps.GetForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return domain.ErrNotFound
		}
		if !app.IsPending() {
			return domain.ErrApplicationAlreadyProcessed
		}

		var approvedAt *time.Time
		if status == entity.ApplicationApproved {
			now := uc.now()
			approvedAt = &now
		}
		if err := apps.UpdateStatus(ctx, app.ID, status, approvedAt); err != nil {
			return err
		}
		if status == entity.ApplicationApproved {
			// Solo un buyer pasa a seller: un admin promovido fuera de banda conserva su rol.
			if _, err := users.PromoteRole(ctx, app.UserID, entity.RoleBuyer, entity.RoleSeller); err != nil {
				return err
			}
		}
		app.Status = status
		app.ApprovedAt = approvedAt
		reviewed = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}
