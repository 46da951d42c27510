package product

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "catalog/backend/internal/domain/product"

	"github.com/google/uuid"
)

var (
	// ErrInvalidProduct is returned when a product fails validation on add.
	ErrInvalidProduct = errors.New("Invalid product!")
	// ErrInvalidUpdate is returned when a product fails validation on update.
	// The message intentionally differs from ErrInvalidProduct; callers key
	// off the exact text.
	ErrInvalidUpdate = errors.New("Invalid prduct!")
	// ErrEmptyProductCode is returned when a delete is attempted without a
	// usable product code.
	ErrEmptyProductCode = errors.New("Product code cannot be empty.")
	// ErrNoProducts is returned when the catalog holds no products at all.
	ErrNoProducts = errors.New("No product found.")
	// ErrNoCountryMatch is returned when an origin-country search matches
	// nothing. The message text is historical and kept as-is.
	ErrNoCountryMatch = errors.New("No product found with the given first name.")
)

// NotFoundError reports a product-code lookup that matched no row.
type NotFoundError struct {
	Code string
}

func (e *NotFoundError) Error() string {
	return "No product found with product code: " + e.Code
}

// Unwrap lets callers match the domain sentinel with errors.Is.
func (e *NotFoundError) Unwrap() error {
	return domain.ErrNotFound
}

// Manager enforces business-rule validation before delegating persistence to
// the repository.
type Manager struct {
	repo    domain.Repository
	nowFunc func() time.Time
}

// NewManager constructs a product manager.
func NewManager(repo domain.Repository) *Manager {
	return &Manager{
		repo:    repo,
		nowFunc: time.Now,
	}
}

// Add validates the product and persists it. Nothing is written when
// validation fails.
func (m *Manager) Add(ctx context.Context, p *domain.Product) error {
	if p == nil || p.Validate() != nil {
		return ErrInvalidProduct
	}

	now := m.nowFunc().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	return m.repo.Create(ctx, p)
}

// Delete removes the product identified by code. The code must be non-blank;
// the store is not consulted otherwise.
func (m *Manager) Delete(ctx context.Context, code string) error {
	if strings.TrimSpace(code) == "" {
		return ErrEmptyProductCode
	}
	return m.repo.Delete(ctx, code)
}

// Update validates the product and persists the changes, identified by its
// product code.
func (m *Manager) Update(ctx context.Context, p *domain.Product) error {
	if p == nil || p.Validate() != nil {
		return ErrInvalidUpdate
	}

	p.UpdatedAt = m.nowFunc().UTC()
	return m.repo.Update(ctx, p)
}

// GetAll returns every stored product, failing when the catalog is empty.
func (m *Manager) GetAll(ctx context.Context) ([]*domain.Product, error) {
	products, err := m.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNoProducts
	}
	return products, nil
}

// SearchByOriginCountry returns all products whose origin country matches
// exactly.
func (m *Manager) SearchByOriginCountry(ctx context.Context, country string) ([]*domain.Product, error) {
	products, err := m.repo.ListByOriginCountry(ctx, country)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNoCountryMatch
	}
	return products, nil
}

// Get returns the single product matching the given code.
func (m *Manager) Get(ctx context.Context, code string) (*domain.Product, error) {
	p, err := m.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &NotFoundError{Code: code}
		}
		return nil, err
	}
	return p, nil
}
