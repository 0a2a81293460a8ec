package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem par (usuario, producto) con cantidad >= 1. Único por par.
type CartItem struct {
	ID        string
	UserID    string
	ProductID string
	Quantity  int
	CreatedAt time.Time
}

// CartLine línea del carrito con los datos del producto para mostrar y totalizar.
type CartLine struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

// Total precio * cantidad.
func (l CartLine) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Favorite par (usuario, producto) marcado como favorito. Único por par.
type Favorite struct {
	ID        string
	UserID    string
	ProductID string
	CreatedAt time.Time
}
