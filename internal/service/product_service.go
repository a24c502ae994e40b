package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
)

// ProductInput carries the fields accepted when creating a product. The
// image URL comes from the upload pipeline and is nil when no file was
// attached.
type ProductInput struct {
	Name       string
	Price      float64
	ImageURL   *string
	CategoryID *uuid.UUID
}

// ProductUpdate carries the optional fields of a partial update. Nil fields
// are left unchanged.
type ProductUpdate struct {
	Name       *string
	Price      *float64
	CategoryID *uuid.UUID
}

// ProductService defines the interface for product business logic
type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, update ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// Create assigns a fresh ID, lowercases the name and persists the product.
// The expiry date is fixed at creation time and never recomputed.
func (s *productService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	now := time.Now()

	product := &domain.Product{
		ID:           uuid.New(),
		Name:         strings.ToLower(input.Name),
		Price:        input.Price,
		ProductImage: input.ImageURL,
		ExpiryDate:   now,
		CategoryID:   input.CategoryID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// List returns all products, newest first
func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.List(ctx)
}

// GetByID returns a single product
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// Update applies a partial update to an existing product. Fields absent
// from the payload keep their current value; a name update is lowercased
// the same way creation is.
func (s *productService) Update(ctx context.Context, id uuid.UUID, update ProductUpdate) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = strings.ToLower(*update.Name)
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.CategoryID != nil {
		product.CategoryID = update.CategoryID
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Delete removes a product. Deleting an id that does not exist reports
// repository.ErrProductNotFound.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}
