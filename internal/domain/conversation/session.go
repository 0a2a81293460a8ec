// Package conversation define el estado por usuario del diálogo "hacerse vendedor"
// y el puerto del almacén donde vive. El almacén no es la base relacional: un reinicio
// del proceso con el backend en memoria vuelve a todos a StateIdle.
package conversation

import (
	"context"
	"time"
)

// State posición del usuario en el diálogo de registro de vendedor.
type State string

const (
	StateIdle                State = "idle"
	StateAwaitingCompanyName State = "awaiting_company_name"
	StateAwaitingTaxID       State = "awaiting_tax_id"
	StateAwaitingDescription State = "awaiting_description"
)

// Session estado acumulado de un usuario. El valor cero es una sesión idle.
type Session struct {
	State       State     `json:"state"`
	CompanyName string    `json:"company_name,omitempty"`
	TaxID       *string   `json:"tax_id,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Active informa si el usuario está a mitad del diálogo.
func (s Session) Active() bool {
	return s.State != "" && s.State != StateIdle
}

// Store almacén de sesiones indexado por el ID externo (Telegram) del usuario.
// Get devuelve una sesión idle cuando no hay nada guardado.
type Store interface {
	Get(ctx context.Context, telegramID int64) (Session, error)
	Save(ctx context.Context, telegramID int64, s Session) error
	Clear(ctx context.Context, telegramID int64) error
}
