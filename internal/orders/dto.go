package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stylehaven/stylehaven-backend/pkg/db/models"
	"github.com/stylehaven/stylehaven-backend/pkg/enums"
)

// ItemDTO is the transport shape of one captured order line.
type ItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Size        string          `json:"size,omitempty"`
	Color       string          `json:"color,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderDTO is the transport shape of an order summary.
type OrderDTO struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"user_id"`
	FullName      string              `json:"full_name"`
	Address       string              `json:"address"`
	City          string              `json:"city"`
	Phone         string              `json:"phone"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Discount      decimal.Decimal     `json:"discount"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	Status        enums.OrderStatus   `json:"status"`
	Items         []ItemDTO           `json:"items"`
	OrderedAt     time.Time           `json:"ordered_at"`
}

// HistoryEntryDTO is one row of the append-only status audit trail.
type HistoryEntryDTO struct {
	ID         uuid.UUID         `json:"id"`
	FromStatus enums.OrderStatus `json:"from_status"`
	ToStatus   enums.OrderStatus `json:"to_status"`
	ChangedBy  *uuid.UUID        `json:"changed_by,omitempty"`
	ChangedAt  time.Time         `json:"changed_at"`
}

// DetailDTO is the admin order view: the order plus recent history and
// the statuses it may move to next.
type DetailDTO struct {
	Order         OrderDTO            `json:"order"`
	History       []HistoryEntryDTO   `json:"history"`
	AllowedNext   []enums.OrderStatus `json:"allowed_next_statuses"`
	BuyerEmail    string              `json:"buyer_email,omitempty"`
	BuyerUsername string              `json:"buyer_username,omitempty"`
}

// TransitionInput carries a staff-initiated status change.
type TransitionInput struct {
	OrderID uuid.UUID
	Target  enums.OrderStatus
	ActorID uuid.UUID
}

// AdminListFilters narrows the admin order queue.
type AdminListFilters struct {
	Status *enums.OrderStatus
	UserID *uuid.UUID
}

// ListResult is one cursor page of orders.
type ListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}

// FromModel maps an order row onto its transport shape.
func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:            o.ID,
		UserID:        o.UserID,
		FullName:      o.FullName,
		Address:       o.Address,
		City:          o.City,
		Phone:         o.Phone,
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		TotalAmount:   o.TotalAmount,
		PaymentStatus: o.PaymentStatus,
		Status:        o.Status,
		Items:         make([]ItemDTO, 0, len(o.Items)),
		OrderedAt:     o.OrderedAt,
	}
	for i := range o.Items {
		item := &o.Items[i]
		entry := ItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			Price:     item.Price,
			LineTotal: item.LineTotal(),
		}
		if item.Product != nil {
			entry.ProductName = item.Product.Name
		}
		dto.Items = append(dto.Items, entry)
	}
	return dto
}

func historyFromModels(rows []models.OrderStatusHistory) []HistoryEntryDTO {
	out := make([]HistoryEntryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, HistoryEntryDTO{
			ID:         row.ID,
			FromStatus: row.FromStatus,
			ToStatus:   row.ToStatus,
			ChangedBy:  row.ChangedByID,
			ChangedAt:  row.ChangedAt,
		})
	}
	return out
}
