package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product artículo publicado por un vendedor aprobado.
type Product struct {
	ID                  string
	SellerApplicationID string // solicitud aprobada del vendedor dueño
	Name                string
	Description         string
	Price               decimal.Decimal // nunca negativo
	ImageURL            string
	IsAvailable         bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CatalogItem producto del catálogo con el nombre comercial del vendedor.
type CatalogItem struct {
	Product
	SellerName string
}
