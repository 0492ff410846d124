package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stylehaven/stylehaven-backend/pkg/db"
	"github.com/stylehaven/stylehaven-backend/pkg/db/models"
	"github.com/stylehaven/stylehaven-backend/pkg/enums"
	pkgerrors "github.com/stylehaven/stylehaven-backend/pkg/errors"
)

// Service defines the catalog behavior consumed by storefront and admin controllers.
type Service interface {
	ListProducts(ctx context.Context, filters ProductListFilters) ([]ProductDTO, error)
	GetProduct(ctx context.Context, slug string) (*ProductDTO, error)
	GetLookups(ctx context.Context, section *enums.CatalogSection) (*Lookups, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService constructs the catalog service with its dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) ListProducts(ctx context.Context, filters ProductListFilters) ([]ProductDTO, error) {
	filters.Query = strings.TrimSpace(filters.Query)
	products, err := s.repo.ListProducts(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, *ProductFromModel(&products[i]))
	}
	return dtos, nil
}

func (s *service) GetProduct(ctx context.Context, slug string) (*ProductDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug required")
	}
	product, err := s.repo.FindProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return ProductFromModel(product), nil
}

func (s *service) GetLookups(ctx context.Context, section *enums.CatalogSection) (*Lookups, error) {
	categories, err := s.repo.ListCategories(ctx, section)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	sizes, err := s.repo.ListSizes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sizes")
	}
	colors, err := s.repo.ListColors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list colors")
	}

	lookups := &Lookups{
		Categories: make([]CategoryDTO, 0, len(categories)),
		Sizes:      make([]SizeDTO, 0, len(sizes)),
		Colors:     make([]ColorDTO, 0, len(colors)),
	}
	for i := range categories {
		lookups.Categories = append(lookups.Categories, *CategoryFromModel(&categories[i]))
	}
	for _, size := range sizes {
		lookups.Sizes = append(lookups.Sizes, SizeDTO{ID: size.ID, Name: size.Name})
	}
	for _, color := range colors {
		lookups.Colors = append(lookups.Colors, ColorDTO{ID: color.ID, Name: color.Name, Code: color.Code})
	}
	return lookups, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validatePricing(input.Price, input.DiscountPrice); err != nil {
		return nil, err
	}
	if input.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	name := strings.TrimSpace(input.Name)
	slug := strings.TrimSpace(input.Slug)
	if name == "" || slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and slug are required")
	}

	if _, err := s.repo.FindCategoryByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	product := &models.Product{
		CategoryID:    input.CategoryID,
		Name:          name,
		Slug:          slug,
		Description:   strings.TrimSpace(input.Description),
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		ImageURL:      input.ImageURL,
		IsActive:      true,
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	} else {
		product.Stock = 10
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateProduct(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "a product with this slug already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
		}
		return s.assignVariants(ctx, repo, product, input.SizeIDs, input.ColorIDs)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.FindProductByID(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	return ProductFromModel(created), nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	price := product.Price
	if input.Price != nil {
		price = *input.Price
	}
	discount := product.DiscountPrice
	if input.ClearDiscount {
		discount = nil
	} else if input.DiscountPrice != nil {
		discount = input.DiscountPrice
	}
	if err := validatePricing(price, discount); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.CategoryID != nil {
		if _, err := s.repo.FindCategoryByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
		}
		updates["category_id"] = *input.CategoryID
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.ClearDiscount {
		updates["discount_price"] = nil
	} else if input.DiscountPrice != nil {
		updates["discount_price"] = *input.DiscountPrice
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
		}
		updates["stock"] = *input.Stock
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if len(updates) > 0 {
			if err := repo.UpdateProduct(ctx, product, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
			}
		}
		return s.assignVariants(ctx, repo, product, input.SizeIDs, input.ColorIDs)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	return ProductFromModel(updated), nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) assignVariants(ctx context.Context, repo Repository, product *models.Product, sizeIDs, colorIDs []uuid.UUID) error {
	if sizeIDs != nil {
		sizes, err := repo.ListSizesByIDs(ctx, sizeIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sizes")
		}
		if len(sizes) != len(sizeIDs) {
			return pkgerrors.New(pkgerrors.CodeValidation, "one or more sizes do not exist")
		}
		if err := repo.ReplaceSizes(ctx, product, sizes); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign sizes")
		}
	}
	if colorIDs != nil {
		colors, err := repo.ListColorsByIDs(ctx, colorIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load colors")
		}
		if len(colors) != len(colorIDs) {
			return pkgerrors.New(pkgerrors.CodeValidation, "one or more colors do not exist")
		}
		if err := repo.ReplaceColors(ctx, product, colors); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign colors")
		}
	}
	return nil
}

func validatePricing(price decimal.Decimal, discount *decimal.Decimal) error {
	if !price.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}
	if discount != nil {
		if !discount.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "discount price must be greater than zero")
		}
		if discount.GreaterThanOrEqual(price) {
			return pkgerrors.New(pkgerrors.CodeValidation, "discount price must be below the regular price")
		}
	}
	return nil
}
