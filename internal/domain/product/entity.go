package product

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound indicates a product could not be located.
	ErrNotFound = errors.New("product not found")
	// ErrDuplicateCode signals product code uniqueness constraint breaches.
	ErrDuplicateCode = errors.New("product with code already exists")
)

// Product captures the state of an individual catalog entry. ProductCode is
// the natural key used for lookups, updates and deletes.
type Product struct {
	ID            string    `json:"id"`
	ProductCode   string    `json:"productCode"`
	ProductName   string    `json:"productName"`
	OriginCountry string    `json:"originCountry"`
	Price         float64   `json:"price"`
	Quantity      int       `json:"quantity"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Validate checks the declared field constraints.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.ProductName) == "" {
		return errors.New("product name is required")
	}
	if strings.TrimSpace(p.ProductCode) == "" {
		return errors.New("product code is required")
	}
	if p.Price <= 0 {
		return errors.New("price must be positive")
	}
	if p.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	return nil
}
