package product

import "context"

// Repository defines persistence behaviours for products. Implementations do
// no validation; they are pure store access keyed by product code.
type Repository interface {
	Create(ctx context.Context, product *Product) error
	GetByCode(ctx context.Context, code string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	ListByOriginCountry(ctx context.Context, country string) ([]*Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, code string) error
}
