package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SellerApplicationResponse salida de una solicitud de vendedor.
type SellerApplicationResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	CompanyName    string          `json:"company_name"`
	TaxID          *string         `json:"tax_id"`
	Description    string          `json:"description"`
	Status         string          `json:"status"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	CreatedAt      time.Time       `json:"created_at"`
	ApprovedAt     *time.Time      `json:"approved_at,omitempty"`
}

// SellerApplicationListResponse solicitudes pendientes (sin orden garantizado).
type SellerApplicationListResponse struct {
	Items []SellerApplicationResponse `json:"items"`
}
