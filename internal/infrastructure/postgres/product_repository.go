package postgres

import (
	"context"
	"errors"

	domain "catalog/backend/internal/domain/product"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductRepository persists products in PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository constructs a repository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
INSERT INTO products (id, product_code, product_name, origin_country, price, quantity, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := r.pool.Exec(ctx, query,
		product.ID,
		product.ProductCode,
		product.ProductName,
		product.OriginCountry,
		product.Price,
		product.Quantity,
		product.Description,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return err
	}
	return nil
}

// GetByCode fetches a product using its product code.
func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*domain.Product, error) {
	const query = `
SELECT id, product_code, product_name, origin_country, price, quantity, description, created_at, updated_at
FROM products WHERE product_code = $1
`
	row := r.pool.QueryRow(ctx, query, code)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// List returns all products sorted by name.
func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	const query = `
SELECT id, product_code, product_name, origin_country, price, quantity, description, created_at, updated_at
FROM products
ORDER BY product_name ASC
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// ListByOriginCountry returns all products whose origin country matches
// exactly.
func (r *ProductRepository) ListByOriginCountry(ctx context.Context, country string) ([]*domain.Product, error) {
	const query = `
SELECT id, product_code, product_name, origin_country, price, quantity, description, created_at, updated_at
FROM products
WHERE origin_country = $1
ORDER BY product_name ASC
`
	rows, err := r.pool.Query(ctx, query, country)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// Update writes product changes to the database, keyed by product code.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
UPDATE products
SET product_name = $2,
    origin_country = $3,
    price = $4,
    quantity = $5,
    description = $6,
    updated_at = $7
WHERE product_code = $1
`
	tag, err := r.pool.Exec(ctx, query,
		product.ProductCode,
		product.ProductName,
		product.OriginCountry,
		product.Price,
		product.Quantity,
		product.Description,
		product.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a product by code.
func (r *ProductRepository) Delete(ctx context.Context, code string) error {
	const query = `DELETE FROM products WHERE product_code = $1`
	tag, err := r.pool.Exec(ctx, query, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.ProductCode,
		&p.ProductName,
		&p.OriginCountry,
		&p.Price,
		&p.Quantity,
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
