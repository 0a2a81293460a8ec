package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplicationStatus estado de una solicitud de vendedor.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// DefaultCommissionRate comisión (porcentaje) asignada a los vendedores nuevos.
var DefaultCommissionRate = decimal.NewFromInt(3)

// SellerApplication solicitud para convertirse en vendedor.
// Se crea solo al terminar el diálogo de registro y solo la modifica el flujo de aprobación.
type SellerApplication struct {
	ID             string
	UserID         string
	CompanyName    string
	TaxID          *string // nil = no informado
	Description    string
	Status         ApplicationStatus
	CommissionRate decimal.Decimal
	CreatedAt      time.Time
	ApprovedAt     *time.Time
}

// IsPending informa si la solicitud todavía espera revisión.
func (a *SellerApplication) IsPending() bool {
	return a != nil && a.Status == ApplicationPending
}
