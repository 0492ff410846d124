package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one product/size/color tuple inside a cart. The same tuple
// never appears twice, adds bump the quantity instead.
type CartItem struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID    uuid.UUID  `gorm:"column:cart_id;type:uuid;not null;index"`
	ProductID uuid.UUID  `gorm:"column:product_id;type:uuid;not null"`
	Product   *Product   `gorm:"foreignKey:ProductID"`
	SizeID    *uuid.UUID `gorm:"column:size_id;type:uuid"`
	Size      *Size      `gorm:"foreignKey:SizeID"`
	ColorID   *uuid.UUID `gorm:"column:color_id;type:uuid"`
	Color     *Color     `gorm:"foreignKey:ColorID"`
	Quantity  int        `gorm:"column:quantity;not null;default:1"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// LineTotal prices the row at the product's effective unit price.
func (i CartItem) LineTotal() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}
