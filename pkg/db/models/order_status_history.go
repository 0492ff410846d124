package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stylehaven/stylehaven-backend/pkg/enums"
)

// OrderStatusHistory is the append-only audit trail of status changes.
// Rows are never updated or deleted.
type OrderStatusHistory struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index"`
	FromStatus  enums.OrderStatus `gorm:"column:from_status;type:text;not null"`
	ToStatus    enums.OrderStatus `gorm:"column:to_status;type:text;not null"`
	ChangedByID *uuid.UUID        `gorm:"column:changed_by_id;type:uuid"`
	ChangedBy   *User             `gorm:"foreignKey:ChangedByID"`
	ChangedAt   time.Time         `gorm:"column:changed_at;autoCreateTime"`
}

// TableName maps the model to the singular table created by the migrations.
func (OrderStatusHistory) TableName() string {
	return "order_status_history"
}
