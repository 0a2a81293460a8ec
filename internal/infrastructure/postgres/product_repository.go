package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
	"github.com/jhoicas/marketplace-bot/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, seller_application_id, name, description, price, image_url, is_available, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.SellerApplicationID, product.Name, product.Description, product.Price,
		product.ImageURL, product.IsAvailable, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id).Scan(
		&p.ID, &p.SellerApplicationID, &p.Name, &p.Description, &p.Price,
		&p.ImageURL, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza los datos editables del producto. El dueño no cambia.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, image_url = $5, is_available = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.ImageURL, product.IsAvailable, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBySeller lista los productos de un vendedor, más nuevos primero.
func (r *ProductRepo) ListBySeller(ctx context.Context, sellerApplicationID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE seller_application_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, sellerApplicationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products by seller: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.SellerApplicationID, &p.Name, &p.Description, &p.Price,
			&p.ImageURL, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListAvailable catálogo público: productos disponibles con el nombre comercial del vendedor.
func (r *ProductRepo) ListAvailable(ctx context.Context, limit, offset int) ([]*entity.CatalogItem, error) {
	query := `
		SELECT p.id, p.seller_application_id, p.name, p.description, p.price, p.image_url,
		       p.is_available, p.created_at, p.updated_at, sa.company_name
		FROM products p
		JOIN seller_applications sa ON sa.id = p.seller_application_id
		WHERE p.is_available = TRUE
		ORDER BY p.created_at DESC, p.id
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()
	return scanCatalogItems(rows)
}

// scanCatalogItems recorre filas con las columnas de producto seguidas de company_name.
func scanCatalogItems(rows pgx.Rows) ([]*entity.CatalogItem, error) {
	var list []*entity.CatalogItem
	for rows.Next() {
		var it entity.CatalogItem
		if err := rows.Scan(
			&it.ID, &it.SellerApplicationID, &it.Name, &it.Description, &it.Price, &it.ImageURL,
			&it.IsAvailable, &it.CreatedAt, &it.UpdatedAt, &it.SellerName,
		); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
