package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylehaven/stylehaven-backend/pkg/db/models"
	"github.com/stylehaven/stylehaven-backend/pkg/enums"
)

// Repository defines persistence operations for the product catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListProducts(ctx context.Context, filters ProductListFilters) ([]models.Product, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product, updates map[string]any) error
	ReplaceSizes(ctx context.Context, product *models.Product, sizes []models.Size) error
	ReplaceColors(ctx context.Context, product *models.Product, colors []models.Color) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context, section *enums.CatalogSection) ([]models.Category, error)
	ListSizesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Size, error)
	ListColorsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Color, error)
	ListSizes(ctx context.Context) ([]models.Size, error)
	ListColors(ctx context.Context) ([]models.Color, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) ListProducts(ctx context.Context, filters ProductListFilters) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Category").
		Preload("Sizes").
		Preload("Colors").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("products.is_active = ?", true)

	if filters.Section != nil {
		query = query.Where("categories.section = ?", *filters.Section)
	}
	if filters.CategorySlug != "" {
		query = query.Where("categories.slug = ?", filters.CategorySlug)
	}
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", pattern, pattern)
	}
	if filters.MaxPrice != nil {
		query = query.Where("COALESCE(products.discount_price, products.price) <= ?", *filters.MaxPrice)
	}

	switch filters.Sort {
	case SortPriceAsc:
		query = query.Order("COALESCE(products.discount_price, products.price) ASC")
	case SortPriceDesc:
		query = query.Order("COALESCE(products.discount_price, products.price) DESC")
	default:
		query = query.Order("products.created_at DESC")
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Sizes").
		Preload("Colors").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Sizes").
		Preload("Colors").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) UpdateProduct(ctx context.Context, product *models.Product, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(product).Updates(updates).Error
}

func (r *repository) ReplaceSizes(ctx context.Context, product *models.Product, sizes []models.Size) error {
	return r.db.WithContext(ctx).Model(product).Association("Sizes").Replace(sizes)
}

func (r *repository) ReplaceColors(ctx context.Context, product *models.Product, colors []models.Color) error {
	return r.db.WithContext(ctx).Model(product).Association("Colors").Replace(colors)
}

func (r *repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) ListCategories(ctx context.Context, section *enums.CatalogSection) ([]models.Category, error) {
	query := r.db.WithContext(ctx).Model(&models.Category{}).Order("name ASC")
	if section != nil {
		query = query.Where("section = ?", *section)
	}
	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) ListSizesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Size, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var sizes []models.Size
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

func (r *repository) ListColorsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Color, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var colors []models.Color
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

func (r *repository) ListSizes(ctx context.Context) ([]models.Size, error) {
	var sizes []models.Size
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

func (r *repository) ListColors(ctx context.Context) ([]models.Color, error) {
	var colors []models.Color
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}
