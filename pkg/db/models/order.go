package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stylehaven/stylehaven-backend/pkg/enums"
)

// Order is the immutable materialization of a cart at checkout time.
// Money fields are captured then and never recomputed from the catalog.
type Order struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	User          *User                `gorm:"foreignKey:UserID"`
	FullName      string               `gorm:"column:full_name;not null"`
	Address       string               `gorm:"column:address;not null"`
	City          string               `gorm:"column:city;not null"`
	Phone         string               `gorm:"column:phone;not null"`
	Subtotal      decimal.Decimal      `gorm:"column:subtotal;type:numeric(10,2);not null"`
	Discount      decimal.Decimal      `gorm:"column:discount;type:numeric(10,2);not null"`
	TotalAmount   decimal.Decimal      `gorm:"column:total_amount;type:numeric(10,2);not null"`
	PaymentStatus enums.PaymentStatus  `gorm:"column:payment_status;type:text;not null;default:'Pending'"`
	Status        enums.OrderStatus    `gorm:"column:status;type:text;not null;default:'Pending'"`
	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	OrderedAt     time.Time            `gorm:"column:ordered_at;autoCreateTime"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
