package memory

import (
	"context"
	"sort"
	"sync"

	domain "catalog/backend/internal/domain/product"
)

// ProductRepository is an in-memory implementation of domain.Repository,
// keyed by product code. It backs tests and lets storage be swapped without
// touching the manager.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

// NewProductRepository constructs an empty in-memory repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[string]domain.Product),
	}
}

// Create stores a new product.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ProductCode]; exists {
		return domain.ErrDuplicateCode
	}
	r.products[product.ProductCode] = *product
	return nil
}

// GetByCode retrieves a product by its code.
func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[code]
	if !exists {
		return nil, domain.ErrNotFound
	}
	return &product, nil
}

// List returns all products sorted by name.
func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.products))
	for code := range r.products {
		product := r.products[code]
		products = append(products, &product)
	}
	sortByName(products)
	return products, nil
}

// ListByOriginCountry returns products whose origin country matches exactly.
func (r *ProductRepository) ListByOriginCountry(ctx context.Context, country string) ([]*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []*domain.Product
	for code := range r.products {
		if r.products[code].OriginCountry != country {
			continue
		}
		product := r.products[code]
		products = append(products, &product)
	}
	sortByName(products)
	return products, nil
}

// Update overwrites the stored product matching the given product code.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.products[product.ProductCode]
	if !exists {
		return domain.ErrNotFound
	}
	updated := *product
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	r.products[product.ProductCode] = updated
	return nil
}

// Delete removes the product matching the given code.
func (r *ProductRepository) Delete(ctx context.Context, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[code]; !exists {
		return domain.ErrNotFound
	}
	delete(r.products, code)
	return nil
}

func sortByName(products []*domain.Product) {
	sort.Slice(products, func(i, j int) bool {
		return products[i].ProductName < products[j].ProductName
	})
}
