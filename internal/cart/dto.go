package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stylehaven/stylehaven-backend/pkg/db/models"
)

// Owner identifies who a cart belongs to: an authenticated user or an
// anonymous browser session, never both.
type Owner struct {
	UserID    *uuid.UUID
	SessionID *string
}

// Valid reports whether the owner has exactly one identity.
func (o Owner) Valid() bool {
	return (o.UserID != nil) != (o.SessionID != nil && *o.SessionID != "")
}

// ForUser builds an owner for an authenticated user.
func ForUser(userID uuid.UUID) Owner {
	return Owner{UserID: &userID}
}

// ForSession builds an owner for an anonymous session token.
func ForSession(sessionID string) Owner {
	return Owner{SessionID: &sessionID}
}

// AddItemInput captures the add-to-cart payload.
type AddItemInput struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	SizeID    *uuid.UUID `json:"size_id,omitempty"`
	ColorID   *uuid.UUID `json:"color_id,omitempty"`
}

// ItemDTO is the transport shape of one cart row.
type ItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSlug string          `json:"product_slug"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Size        *string         `json:"size,omitempty"`
	Color       *string         `json:"color,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// CartDTO is the transport shape of a whole cart.
type CartDTO struct {
	ID         uuid.UUID       `json:"id"`
	Items      []ItemDTO       `json:"items"`
	TotalItems int             `json:"total_items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

func itemFromModel(item *models.CartItem) ItemDTO {
	dto := ItemDTO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		LineTotal: item.LineTotal(),
	}
	if item.Product != nil {
		dto.ProductName = item.Product.Name
		dto.ProductSlug = item.Product.Slug
		dto.ImageURL = item.Product.ImageURL
		dto.UnitPrice = item.Product.EffectivePrice()
	}
	if item.Size != nil {
		name := item.Size.Name
		dto.Size = &name
	}
	if item.Color != nil {
		name := item.Color.Name
		dto.Color = &name
	}
	return dto
}

func cartFromItems(cartID uuid.UUID, items []models.CartItem) *CartDTO {
	dto := &CartDTO{
		ID:       cartID,
		Items:    make([]ItemDTO, 0, len(items)),
		Subtotal: decimal.Zero,
	}
	for i := range items {
		item := itemFromModel(&items[i])
		dto.Items = append(dto.Items, item)
		dto.TotalItems += item.Quantity
		dto.Subtotal = dto.Subtotal.Add(item.LineTotal)
	}
	return dto
}
