package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stylehaven/stylehaven-backend/pkg/db/models"
	"github.com/stylehaven/stylehaven-backend/pkg/enums"
)

// Sort orders the product browse results.
type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "low_high"
	SortPriceDesc Sort = "high_low"
)

// ParseSort maps raw query values onto a Sort, defaulting to newest for
// anything unrecognized.
func ParseSort(value string) Sort {
	switch Sort(value) {
	case SortPriceAsc, SortPriceDesc:
		return Sort(value)
	default:
		return SortNewest
	}
}

// ProductListFilters describe the supported filter knobs for the browse endpoint.
type ProductListFilters struct {
	Section      *enums.CatalogSection
	CategorySlug string
	Query        string
	MaxPrice     *decimal.Decimal
	Sort         Sort
}

// ProductDTO is the storefront transport shape of a listing.
type ProductDTO struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Slug           string           `json:"slug"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	DiscountPrice  *decimal.Decimal `json:"discount_price,omitempty"`
	EffectivePrice decimal.Decimal  `json:"effective_price"`
	ImageURL       *string          `json:"image_url,omitempty"`
	Category       *CategoryDTO     `json:"category,omitempty"`
	Sizes          []SizeDTO        `json:"sizes"`
	Colors         []ColorDTO       `json:"colors"`
	CreatedAt      time.Time        `json:"created_at"`
}

// CategoryDTO is the transport shape of a category.
type CategoryDTO struct {
	ID       uuid.UUID            `json:"id"`
	Section  enums.CatalogSection `json:"section"`
	Name     string               `json:"name"`
	Slug     string               `json:"slug"`
	ImageURL *string              `json:"image_url,omitempty"`
}

// SizeDTO is the transport shape of a size label.
type SizeDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ColorDTO is the transport shape of a color swatch.
type ColorDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code"`
}

// Lookups bundles the selectable catalog dimensions for the storefront.
type Lookups struct {
	Categories []CategoryDTO `json:"categories"`
	Sizes      []SizeDTO     `json:"sizes"`
	Colors     []ColorDTO    `json:"colors"`
}

// CreateProductInput carries the admin payload for a new listing.
type CreateProductInput struct {
	CategoryID    uuid.UUID        `json:"category_id" validate:"required"`
	Name          string           `json:"name" validate:"required,min=2,max=200"`
	Slug          string           `json:"slug" validate:"required,min=2,max=200"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price" validate:"required"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	ImageURL      *string          `json:"image_url,omitempty"`
	Stock         *int             `json:"stock,omitempty"`
	SizeIDs       []uuid.UUID      `json:"size_ids"`
	ColorIDs      []uuid.UUID      `json:"color_ids"`
}

// UpdateProductInput carries the admin payload for editing a listing.
// Nil pointers leave the stored value untouched.
type UpdateProductInput struct {
	CategoryID    *uuid.UUID       `json:"category_id,omitempty"`
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	ClearDiscount bool             `json:"clear_discount,omitempty"`
	ImageURL      *string          `json:"image_url,omitempty"`
	Stock         *int             `json:"stock,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
	SizeIDs       []uuid.UUID      `json:"size_ids,omitempty"`
	ColorIDs      []uuid.UUID      `json:"color_ids,omitempty"`
}

// ProductFromModel maps a product row onto its transport shape.
func ProductFromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	dto := &ProductDTO{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price,
		DiscountPrice:  p.DiscountPrice,
		EffectivePrice: p.EffectivePrice(),
		ImageURL:       p.ImageURL,
		Sizes:          make([]SizeDTO, 0, len(p.Sizes)),
		Colors:         make([]ColorDTO, 0, len(p.Colors)),
		CreatedAt:      p.CreatedAt,
	}
	if p.Category != nil {
		dto.Category = CategoryFromModel(p.Category)
	}
	for _, size := range p.Sizes {
		dto.Sizes = append(dto.Sizes, SizeDTO{ID: size.ID, Name: size.Name})
	}
	for _, color := range p.Colors {
		dto.Colors = append(dto.Colors, ColorDTO{ID: color.ID, Name: color.Name, Code: color.Code})
	}
	return dto
}

// CategoryFromModel maps a category row onto its transport shape.
func CategoryFromModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:       c.ID,
		Section:  c.Section,
		Name:     c.Name,
		Slug:     c.Slug,
		ImageURL: c.ImageURL,
	}
}
