package service

import (
	"context"
	"fmt"
	"time"

	"catalog-api/internal/domain"
	"catalog-api/internal/mailer"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryService defines the interface for category business logic
type CategoryService interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, name *string) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	mailer       mailer.Mailer
	notifyTo     string
	logger       *zap.Logger
}

// NewCategoryService creates a new instance of CategoryService. The mailer
// is the notification sink triggered on category creation.
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	m mailer.Mailer,
	notifyTo string,
	logger *zap.Logger,
) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		mailer:       m,
		notifyTo:     notifyTo,
		logger:       logger,
	}
}

// Create persists a new category and dispatches a notification email. A
// notification failure does not undo or mis-report the committed creation;
// it is logged and the creation still succeeds.
func (s *categoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	now := time.Now()

	category := &domain.Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	subject := "New category created"
	body := fmt.Sprintf("A new category named %q has been added to the catalog.", category.Name)
	if err := s.mailer.Send(ctx, s.notifyTo, subject, body); err != nil {
		s.logger.Error("Failed to send category notification",
			zap.Error(err),
			zap.String("category_id", category.ID.String()),
		)
	}

	return category, nil
}

// List returns all categories, newest first
func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

// GetByID returns a single category
func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

// Update renames an existing category and returns it together with its
// related products.
func (s *categoryService) Update(ctx context.Context, id uuid.UUID, name *string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		category.Name = *name
	}
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return s.categoryRepo.FindByIDWithProducts(ctx, id)
}

// Delete removes a category. Related products keep their rows; only the
// reference is cleared by the schema.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, id)
}
