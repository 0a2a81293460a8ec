// Package seller contiene el diálogo de registro de vendedor y el flujo de aprobación.
package seller

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/marketplace-bot/internal/application/access"
	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/conversation"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
	"github.com/jhoicas/marketplace-bot/internal/domain/repository"
)

// Solo un comprador puede pedir ser vendedor.
var registrationRoles = access.Roles(entity.RoleBuyer)

// StartResult resultado de Start: o el diálogo arrancó, o ya hay una solicitud pendiente.
type StartResult struct {
	State   conversation.State
	Pending *entity.SellerApplication // != nil: se muestra el estado pendiente, la sesión no se toca
}

// StepResult resultado de un paso del diálogo. Application != nil solo en el paso final.
type StepResult struct {
	State       conversation.State
	Application *entity.SellerApplication
}

// RegistrationUseCase máquina de estados del registro de vendedor:
// idle → awaiting_company_name → awaiting_tax_id → awaiting_description → (solicitud pendiente) → idle.
type RegistrationUseCase struct {
	authz    *access.Authorizer
	apps     repository.SellerApplicationRepository
	sessions conversation.Store
	now      func() time.Time
}

// NewRegistrationUseCase construye el caso de uso con el almacén de sesiones inyectado.
func NewRegistrationUseCase(authz *access.Authorizer, apps repository.SellerApplicationRepository, sessions conversation.Store) *RegistrationUseCase {
	return &RegistrationUseCase{authz: authz, apps: apps, sessions: sessions, now: time.Now}
}

// Start inicia el diálogo en awaiting_company_name.
// Errores: ErrNotRegistered, ErrForbidden (rol distinto de buyer).
func (uc *RegistrationUseCase) Start(ctx context.Context, telegramID int64) (*StartResult, error) {
	user, err := uc.authz.Require(ctx, telegramID, registrationRoles)
	if err != nil {
		return nil, err
	}
	pending, err := uc.apps.GetPendingByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return &StartResult{State: conversation.StateIdle, Pending: pending}, nil
	}
	sess := conversation.Session{State: conversation.StateAwaitingCompanyName, UpdatedAt: uc.now()}
	if err := uc.sessions.Save(ctx, telegramID, sess); err != nil {
		return nil, err
	}
	return &StartResult{State: sess.State}, nil
}

// State devuelve el estado actual del diálogo del usuario.
func (uc *RegistrationUseCase) State(ctx context.Context, telegramID int64) (conversation.State, error) {
	sess, err := uc.sessions.Get(ctx, telegramID)
	if err != nil {
		return "", err
	}
	if !sess.Active() {
		return conversation.StateIdle, nil
	}
	return sess.State, nil
}

// SubmitStep guarda text en el campo del paso actual y avanza. No valida el contenido.
// En awaiting_tax_id un texto vacío se guarda como "no informado" (nil).
// En el último paso persiste la solicitud pendiente y vuelve a idle.
func (uc *RegistrationUseCase) SubmitStep(ctx context.Context, telegramID int64, text string) (*StepResult, error) {
	sess, err := uc.sessions.Get(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	switch sess.State {
	case conversation.StateAwaitingCompanyName:
		sess.CompanyName = text
		sess.State = conversation.StateAwaitingTaxID
	case conversation.StateAwaitingTaxID:
		sess.TaxID = nil
		if strings.TrimSpace(text) != "" {
			taxID := text
			sess.TaxID = &taxID
		}
		sess.State = conversation.StateAwaitingDescription
	case conversation.StateAwaitingDescription:
		return uc.submit(ctx, telegramID, sess, text, now)
	default:
		return nil, domain.ErrNoActiveRegistration
	}
	sess.UpdatedAt = now
	if err := uc.sessions.Save(ctx, telegramID, sess); err != nil {
		return nil, err
	}
	return &StepResult{State: sess.State}, nil
}

// Cancel abandona el diálogo (botón "atrás" o /cancel).
func (uc *RegistrationUseCase) Cancel(ctx context.Context, telegramID int64) error {
	return uc.sessions.Clear(ctx, telegramID)
}

func (uc *RegistrationUseCase) submit(ctx context.Context, telegramID int64, sess conversation.Session, description string, now time.Time) (*StepResult, error) {
	user, err := uc.authz.Require(ctx, telegramID, registrationRoles)
	if err != nil {
		if errors.Is(err, domain.ErrNotRegistered) || errors.Is(err, domain.ErrForbidden) {
			_ = uc.sessions.Clear(ctx, telegramID)
		}
		return nil, err
	}
	app := &entity.SellerApplication{
		ID:             uuid.New().String(),
		UserID:         user.ID,
		CompanyName:    sess.CompanyName,
		TaxID:          sess.TaxID,
		Description:    description,
		Status:         entity.ApplicationPending,
		CommissionRate: entity.DefaultCommissionRate,
		CreatedAt:      now,
	}
	if err := uc.apps.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicatePendingApplication) {
			_ = uc.sessions.Clear(ctx, telegramID)
		}
		return nil, err
	}
	if err := uc.sessions.Clear(ctx, telegramID); err != nil {
		return nil, err
	}
	return &StepResult{State: conversation.StateIdle, Application: app}, nil
}
