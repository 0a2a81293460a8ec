package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para publicar un producto (vendedor aprobado).
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"max=4000"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url"`
	IsAvailable *bool           `json:"is_available"`
}

// UpdateProductRequest entrada para actualizar un producto; campos nil no se tocan.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=4000"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url" validate:"omitempty,url"`
	IsAvailable *bool            `json:"is_available"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	IsAvailable bool            `json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CatalogItemResponse producto del catálogo público.
type CatalogItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	SellerName  string          `json:"seller_name"`
}

// ProductListResponse lista paginada de productos del vendedor.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CatalogResponse lista paginada del catálogo.
type CatalogResponse struct {
	Items []CatalogItemResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
