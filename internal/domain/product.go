package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a product in the catalog. Name is stored lowercased;
// ProductImage and CategoryID are nullable.
type Product struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Price        float64    `json:"price" db:"price"`
	ProductImage *string    `json:"product_image" db:"product_image"`
	ExpiryDate   time.Time  `json:"expiry_date" db:"expiry_date"`
	CategoryID   *uuid.UUID `json:"category_id" db:"category_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Category represents a product category. Products is only populated when
// the category is loaded together with its related products.
type Category struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	Products  []*Product `json:"products,omitempty"`
}
