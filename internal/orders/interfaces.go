package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylehaven/stylehaven-backend/pkg/db/models"
	"github.com/stylehaven/stylehaven-backend/pkg/enums"
	"github.com/stylehaven/stylehaven-backend/pkg/pagination"
)

// Repository defines persistence operations for orders and their audit trail.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindOrderForUpdate(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error
	AppendStatusHistory(ctx context.Context, entry *models.OrderStatusHistory) error
	ListStatusHistory(ctx context.Context, orderID uuid.UUID, limit int) ([]models.OrderStatusHistory, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListOrders(ctx context.Context, params pagination.Params, filters AdminListFilters) ([]models.Order, *pagination.Cursor, error)
}
