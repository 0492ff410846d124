package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stylehaven/stylehaven-backend/pkg/db/models"
	"github.com/stylehaven/stylehaven-backend/pkg/enums"
	pkgerrors "github.com/stylehaven/stylehaven-backend/pkg/errors"
)

type stubCatalogRepo struct {
	products   map[uuid.UUID]*models.Product
	bySlug     map[string]*models.Product
	categories map[uuid.UUID]*models.Category
	sizes      map[uuid.UUID]models.Size
	colors     map[uuid.UUID]models.Color
	lastList   *ProductListFilters
	deleted    []uuid.UUID
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{
		products:   map[uuid.UUID]*models.Product{},
		bySlug:     map[string]*models.Product{},
		categories: map[uuid.UUID]*models.Category{},
		sizes:      map[uuid.UUID]models.Size{},
		colors:     map[uuid.UUID]models.Color{},
	}
}

func (s *stubCatalogRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCatalogRepo) ListProducts(ctx context.Context, filters ProductListFilters) ([]models.Product, error) {
	s.lastList = &filters
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubCatalogRepo) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) FindProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if p, ok := s.bySlug[slug]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	s.products[product.ID] = product
	s.bySlug[product.Slug] = product
	return product, nil
}

func (s *stubCatalogRepo) UpdateProduct(ctx context.Context, product *models.Product, updates map[string]any) error {
	if name, ok := updates["name"].(string); ok {
		product.Name = name
	}
	if price, ok := updates["price"].(decimal.Decimal); ok {
		product.Price = price
	}
	if active, ok := updates["is_active"].(bool); ok {
		product.IsActive = active
	}
	return nil
}

func (s *stubCatalogRepo) ReplaceSizes(ctx context.Context, product *models.Product, sizes []models.Size) error {
	product.Sizes = sizes
	return nil
}

func (s *stubCatalogRepo) ReplaceColors(ctx context.Context, product *models.Product, colors []models.Color) error {
	product.Colors = colors
	return nil
}

func (s *stubCatalogRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.products, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubCatalogRepo) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if c, ok := s.categories[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) ListCategories(ctx context.Context, section *enums.CatalogSection) ([]models.Category, error) {
	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if section != nil && c.Section != *section {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubCatalogRepo) ListSizesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Size, error) {
	var out []models.Size
	for _, id := range ids {
		if size, ok := s.sizes[id]; ok {
			out = append(out, size)
		}
	}
	return out, nil
}

func (s *stubCatalogRepo) ListColorsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Color, error) {
	var out []models.Color
	for _, id := range ids {
		if color, ok := s.colors[id]; ok {
			out = append(out, color)
		}
	}
	return out, nil
}

func (s *stubCatalogRepo) ListSizes(ctx context.Context) ([]models.Size, error) {
	out := make([]models.Size, 0, len(s.sizes))
	for _, size := range s.sizes {
		out = append(out, size)
	}
	return out, nil
}

func (s *stubCatalogRepo) ListColors(ctx context.Context) ([]models.Color, error) {
	out := make([]models.Color, 0, len(s.colors))
	for _, color := range s.colors {
		out = append(out, color)
	}
	return out, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newCatalogService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestParseSort(t *testing.T) {
	if got := ParseSort("low_high"); got != SortPriceAsc {
		t.Fatalf("expected low_high, got %q", got)
	}
	if got := ParseSort("garbage"); got != SortNewest {
		t.Fatalf("expected fallback to newest, got %q", got)
	}
	if got := ParseSort(""); got != SortNewest {
		t.Fatalf("expected fallback to newest for empty, got %q", got)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := newCatalogService(t, newStubCatalogRepo())

	_, err := svc.GetProduct(context.Background(), "missing-slug")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateProduct_ValidatesPricing(t *testing.T) {
	repo := newStubCatalogRepo()
	categoryID := uuid.New()
	repo.categories[categoryID] = &models.Category{ID: categoryID, Section: enums.CatalogSectionMen, Name: "Shirts", Slug: "shirts"}
	svc := newCatalogService(t, repo)

	base := CreateProductInput{
		CategoryID: categoryID,
		Name:       "Oxford Shirt",
		Slug:       "oxford-shirt",
		Price:      decimal.NewFromInt(50),
	}

	zeroPrice := base
	zeroPrice.Price = decimal.Zero
	if _, err := svc.CreateProduct(context.Background(), zeroPrice); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero price, got %v", err)
	}

	tooBigDiscount := base
	discount := decimal.NewFromInt(60)
	tooBigDiscount.DiscountPrice = &discount
	if _, err := svc.CreateProduct(context.Background(), tooBigDiscount); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for discount above price, got %v", err)
	}

	created, err := svc.CreateProduct(context.Background(), base)
	if err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}
	if created.Slug != "oxford-shirt" || !created.EffectivePrice.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("unexpected created product: %+v", created)
	}
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	svc := newCatalogService(t, newStubCatalogRepo())

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		CategoryID: uuid.New(),
		Name:       "Oxford Shirt",
		Slug:       "oxford-shirt",
		Price:      decimal.NewFromInt(50),
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateProduct_RejectsDiscountAboveExistingPrice(t *testing.T) {
	repo := newStubCatalogRepo()
	product := &models.Product{
		ID:    uuid.New(),
		Name:  "Oxford Shirt",
		Slug:  "oxford-shirt",
		Price: decimal.NewFromInt(50),
	}
	repo.products[product.ID] = product
	svc := newCatalogService(t, repo)

	discount := decimal.NewFromInt(55)
	_, err := svc.UpdateProduct(context.Background(), product.ID, UpdateProductInput{DiscountPrice: &discount})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	repo := newStubCatalogRepo()
	product := &models.Product{ID: uuid.New(), Slug: "gone", Price: decimal.NewFromInt(10)}
	repo.products[product.ID] = product
	svc := newCatalogService(t, repo)

	if err := svc.DeleteProduct(context.Background(), product.ID); err != nil {
		t.Fatalf("DeleteProduct returned error: %v", err)
	}
	if err := svc.DeleteProduct(context.Background(), product.ID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
