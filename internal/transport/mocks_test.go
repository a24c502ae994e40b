package transport

import (
	"context"
	"net/http"

	"catalog-api/internal/domain"
	"catalog-api/internal/middleware"
	"catalog-api/internal/repository"
	"catalog-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Mock repositories for testing

type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
	order    []uuid.UUID
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
	}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	copied := *product
	m.products[product.ID] = &copied
	m.order = append(m.order, product.ID)
	return nil
}

func (m *mockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	// Newest first, matching the real repository's created_at DESC ordering
	products := make([]*domain.Product, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		if product, exists := m.products[m.order[i]]; exists {
			products = append(products, product)
		}
	}
	return products, nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.products[id]; !exists {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

type mockCategoryRepository struct {
	categories  map[uuid.UUID]*domain.Category
	order       []uuid.UUID
	productRepo *mockProductRepository
}

func newMockCategoryRepository(productRepo *mockProductRepository) *mockCategoryRepository {
	return &mockCategoryRepository{
		categories:  make(map[uuid.UUID]*domain.Category),
		productRepo: productRepo,
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
		if category, exists := m.categories[m.order[i]]; exists {
			categories = append(categories, category)
		}
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

	products := []*domain.Product{}
	all, _ := m.productRepo.List(ctx)
	for _, product := range all {
		if product.CategoryID != nil && *product.CategoryID == id {
			products = append(products, product)
		}
	}
	category.Products = products
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
	sent int
	err  error
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	m.sent++
	return m.err
}

type fakeObjectStore struct {
	url   string
	err   error
	calls int
}

func (f *fakeObjectStore) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

// passGate stands in for the authorization gate in handler tests.
func passGate(next http.Handler) http.Handler {
	return next
}

type testEnv struct {
	router       chi.Router
	productRepo  *mockProductRepository
	categoryRepo *mockCategoryRepository
	store        *fakeObjectStore
	mailer       *mockMailer
}

func newTestEnv() *testEnv {
	logger := zap.NewNop()

	productRepo := newMockProductRepository()
	categoryRepo := newMockCategoryRepository(productRepo)
	store := &fakeObjectStore{url: "https://cdn.example.com/image.png"}
	m := &mockMailer{}

	productService := service.NewProductService(productRepo)
	categoryService := service.NewCategoryService(categoryRepo, m, "ops@example.com", logger)

	productHandler := NewProductHandler(productService, logger)
	categoryHandler := NewCategoryHandler(categoryService, logger)

	router := chi.NewRouter()
	uploadMiddleware := middleware.UploadMiddleware(store, "product_image", logger)
	productHandler.RegisterRoutes(router, passGate, uploadMiddleware)
	categoryHandler.RegisterRoutes(router, passGate)

	return &testEnv{
		router:       router,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		store:        store,
		mailer:       m,
	}
}
