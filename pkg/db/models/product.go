package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a storefront listing. DiscountPrice, when set, is the
// effective unit price all quoting uses.
type Product struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID    uuid.UUID        `gorm:"column:category_id;type:uuid;not null"`
	Category      *Category        `gorm:"foreignKey:CategoryID"`
	Name          string           `gorm:"column:name;not null"`
	Slug          string           `gorm:"column:slug;not null;uniqueIndex"`
	Description   string           `gorm:"column:description;not null;default:''"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
	DiscountPrice *decimal.Decimal `gorm:"column:discount_price;type:numeric(10,2)"`
	ImageURL      *string          `gorm:"column:image_url"`
	Stock         int              `gorm:"column:stock;not null;default:10"`
	IsActive      bool             `gorm:"column:is_active;not null;default:true"`
	Sizes         []Size           `gorm:"many2many:product_sizes;constraint:OnDelete:CASCADE"`
	Colors        []Color          `gorm:"many2many:product_colors;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectivePrice returns the discounted unit price when one is set.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}
