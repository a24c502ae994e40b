package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCategoryRepository struct {
	categories map[uuid.UUID]*domain.Category
	products   map[uuid.UUID][]*domain.Product
	order      []uuid.UUID
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories: make(map[uuid.UUID]*domain.Category),
		products:   make(map[uuid.UUID][]*domain.Product),
	}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	copied := *category
	m.categories[category.ID] = &copied
	m.order = append(m.order, category.ID)
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		categories = append(categories, m.categories[m.order[i]])
	}
	return categories, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, exists := m.categories[id]
	if !exists {
		return nil, repository.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (m *mockCategoryRepository) FindByIDWithProducts(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, err := m.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Products = m.products[id]
	if category.Products == nil {
		category.Products = []*domain.Product{}
	}
	return category, nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if _, exists := m.categories[category.ID]; !exists {
		return repository.ErrCategoryNotFound
	}
	copied := *category
	copied.Products = nil
	m.categories[category.ID] = &copied
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.categories[id]; !exists {
		return repository.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

type mockMailer struct {
	sent    int
	lastTo  string
	subject string
	body    string
	err     error
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	m.sent++
	m.lastTo = to
	m.subject = subject
	m.body = body
	return m.err
}

func newCategoryService(repo repository.CategoryRepository, m *mockMailer) CategoryService {
	logger, _ := zap.NewDevelopment()
	return NewCategoryService(repo, m, "ops@example.com", logger)
}

func TestCategoryCreateDispatchesOneNotification(t *testing.T) {
	repo := newMockCategoryRepository()
	m := &mockMailer{}
	svc := newCategoryService(repo, m)

	category, err := svc.Create(context.Background(), "Drinks")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, category.ID)
	assert.Equal(t, "Drinks", category.Name, "category names are not normalized")

	assert.Equal(t, 1, m.sent, "notification must be attempted exactly once")
	assert.Equal(t, "ops@example.com", m.lastTo)
	assert.True(t, strings.Contains(m.body, "Drinks"), "notification body names the category")
}

func TestCategoryCreateSucceedsWhenNotificationFails(t *testing.T) {
	repo := newMockCategoryRepository()
	m := &mockMailer{err: errors.New("smtp connection refused")}
	svc := newCategoryService(repo, m)

	category, err := svc.Create(context.Background(), "Drinks")
	require.NoError(t, err, "a committed creation must not be reported as failed")

	stored, err := repo.FindByID(context.Background(), category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drinks", stored.Name)
}

func TestCategoryUpdateReturnsRelatedProducts(t *testing.T) {
	repo := newMockCategoryRepository()
	m := &mockMailer{}
	svc := newCategoryService(repo, m)

	category, err := svc.Create(context.Background(), "Cheese")
	require.NoError(t, err)

	productID := uuid.New()
	repo.products[category.ID] = []*domain.Product{
		{ID: productID, Name: "gouda", Price: 4.2, CategoryID: &category.ID},
	}

	newName := "Fine Cheese"
	updated, err := svc.Update(context.Background(), category.ID, &newName)
	require.NoError(t, err)

	assert.Equal(t, "Fine Cheese", updated.Name)
	require.Len(t, updated.Products, 1)
	assert.Equal(t, productID, updated.Products[0].ID)
}

func TestCategoryUpdateWithoutNameKeepsCurrentValue(t *testing.T) {
	repo := newMockCategoryRepository()
	m := &mockMailer{}
	svc := newCategoryService(repo, m)

	category, err := svc.Create(context.Background(), "Cheese")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), category.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, "Cheese", updated.Name)
}

func TestCategoryDeleteMissingReturnsNotFound(t *testing.T) {
	repo := newMockCategoryRepository()
	m := &mockMailer{}
	svc := newCategoryService(repo, m)

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
}
