package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
	"github.com/jhoicas/marketplace-bot/internal/domain/repository"
)

var (
	_ repository.CartRepository     = (*CartRepo)(nil)
	_ repository.FavoriteRepository = (*FavoriteRepo)(nil)
)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador del carrito.
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// Add suma quantity a la línea (usuario, producto); el upsert mantiene una sola fila por par.
func (r *CartRepo) Add(ctx context.Context, userID, productID string, quantity int) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, quantity, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, NOW())
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`
	if _, err := r.q.Exec(ctx, query, userID, productID, quantity); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

// Decrement resta quantity y borra la línea si llega a 0 o menos.
func (r *CartRepo) Decrement(ctx context.Context, userID, productID string, quantity int) error {
	query := `
		WITH upd AS (
			UPDATE cart_items SET quantity = quantity - $3
			WHERE user_id = $1 AND product_id = $2 AND quantity > $3
			RETURNING id
		)
		DELETE FROM cart_items
		WHERE user_id = $1 AND product_id = $2 AND NOT EXISTS (SELECT 1 FROM upd)`
	if _, err := r.q.Exec(ctx, query, userID, productID, quantity); err != nil {
		return fmt.Errorf("decrement cart item: %w", err)
	}
	return nil
}

// Remove elimina la línea completa.
func (r *CartRepo) Remove(ctx context.Context, userID, productID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID); err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// Clear vacía el carrito del usuario.
func (r *CartRepo) Clear(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// ListLines devuelve las líneas con nombre y precio actual del producto.
func (r *CartRepo) ListLines(ctx context.Context, userID string) ([]entity.CartLine, error) {
	query := `
		SELECT c.product_id, p.name, p.price, c.quantity
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at, c.id`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.CartLine, error) {
		var l entity.CartLine
		err := row.Scan(&l.ProductID, &l.Name, &l.Price, &l.Quantity)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan cart line: %w", err)
	}
	return lines, nil
}

// FavoriteRepo implementación del puerto FavoriteRepository sobre PostgreSQL.
type FavoriteRepo struct {
	q Querier
}

// NewFavoriteRepository construye el adaptador de favoritos.
func NewFavoriteRepository(q Querier) *FavoriteRepo {
	return &FavoriteRepo{q: q}
}

// Add marca el producto como favorito. Devuelve false si ya lo era.
func (r *FavoriteRepo) Add(ctx context.Context, userID, productID string) (bool, error) {
	query := `
		INSERT INTO favorites (id, user_id, product_id, created_at)
		VALUES (gen_random_uuid(), $1, $2, NOW())
		ON CONFLICT (user_id, product_id) DO NOTHING`
	tag, err := r.q.Exec(ctx, query, userID, productID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("insert favorite: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Remove quita el favorito; no falla si no existía.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, productID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID); err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}

// List favoritos del usuario como ítems de catálogo, más recientes primero.
func (r *FavoriteRepo) List(ctx context.Context, userID string) ([]*entity.CatalogItem, error) {
	query := `
		SELECT p.id, p.seller_application_id, p.name, p.description, p.price, p.image_url,
		       p.is_available, p.created_at, p.updated_at, sa.company_name
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		JOIN seller_applications sa ON sa.id = p.seller_application_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC, f.id`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()
	return scanCatalogItems(rows)
}
