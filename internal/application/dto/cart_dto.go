package dto

import "github.com/shopspring/decimal"

// AddToCartRequest entrada para sumar un producto al carrito. Quantity 0 equivale a 1.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"min=0,max=1000"`
}

// FavoriteRequest entrada para marcar un favorito.
type FavoriteRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// CartLineResponse línea del carrito.
type CartLineResponse struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// CartResponse carrito completo con total.
type CartResponse struct {
	Items []CartLineResponse `json:"cart"`
	Total decimal.Decimal    `json:"total"`
}

// FavoritesResponse favoritos del usuario.
type FavoritesResponse struct {
	Items []CatalogItemResponse `json:"favorites"`
}

// StatusResponse resultado simple de una operación idempotente: success | already_exists.
type StatusResponse struct {
	Status string `json:"status"`
}
