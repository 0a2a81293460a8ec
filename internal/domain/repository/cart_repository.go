package repository

import (
	"context"

	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
)

// CartRepository define el puerto de persistencia del carrito.
type CartRepository interface {
	// Add suma quantity a la línea existente o la crea; nunca duplica el par (usuario, producto).
	Add(ctx context.Context, userID, productID string, quantity int) error
	// Decrement resta quantity; si llega a 0 borra la fila.
	Decrement(ctx context.Context, userID, productID string, quantity int) error
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	ListLines(ctx context.Context, userID string) ([]entity.CartLine, error)
}

// FavoriteRepository define el puerto de persistencia de favoritos.
type FavoriteRepository interface {
	// Add devuelve false si el par ya existía (no-op).
	Add(ctx context.Context, userID, productID string) (bool, error)
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]*entity.CatalogItem, error)
}
