package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stylehaven/stylehaven-backend/internal/cart"
	"github.com/stylehaven/stylehaven-backend/internal/orders"
	"github.com/stylehaven/stylehaven-backend/pkg/db/models"
	"github.com/stylehaven/stylehaven-backend/pkg/enums"
	pkgerrors "github.com/stylehaven/stylehaven-backend/pkg/errors"
	"github.com/stylehaven/stylehaven-backend/pkg/notify"
)

// ShippingInfo is the delivery detail captured at checkout time.
type ShippingInfo struct {
	FullName string `json:"full_name" validate:"required,min=2,max=120"`
	Address  string `json:"address" validate:"required,min=4,max=250"`
	City     string `json:"city" validate:"required,min=2,max=80"`
	Phone    string `json:"phone" validate:"required,min=5,max=30"`
}

// Result is the checkout outcome. EmptyCart signals the no-op path: nothing
// was created and the caller should send the shopper back to the catalog.
type Result struct {
	EmptyCart bool             `json:"empty_cart"`
	Order     *orders.OrderDTO `json:"order,omitempty"`
}

// Service materializes carts into orders.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, shipping ShippingInfo) (*Result, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	carts    cart.Repository
	orders   orders.Repository
	tx       txRunner
	notifier notify.Enqueuer
}

// NewService wires the checkout service with its dependencies.
func NewService(carts cart.Repository, ordersRepo orders.Repository, tx txRunner, notifier notify.Enqueuer) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &service{carts: carts, orders: ordersRepo, tx: tx, notifier: notifier}, nil
}

func (s *service) Checkout(ctx context.Context, userID uuid.UUID, shipping ShippingInfo) (*Result, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if err := validateShipping(&shipping); err != nil {
		return nil, err
	}

	var orderID uuid.UUID
	empty := false

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.carts.WithTx(tx)
		orderRepo := s.orders.WithTx(tx)

		shopperCart, err := cartRepo.FindCartByOwner(ctx, cart.ForUser(userID))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				empty = true
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}

		items, err := cartRepo.ListItems(ctx, shopperCart.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
		}
		if len(items) == 0 {
			empty = true
			return nil
		}

		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(items))
		for i := range items {
			item := &items[i]
			if item.Product == nil {
				return pkgerrors.New(pkgerrors.CodeDependency, "cart item lost its product")
			}
			unit := item.Product.EffectivePrice()
			total = total.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))

			captured := models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     unit,
			}
			if item.Size != nil {
				captured.Size = item.Size.Name
			}
			if item.Color != nil {
				captured.Color = item.Color.Name
			}
			orderItems = append(orderItems, captured)
		}

		order, err := orderRepo.CreateOrder(ctx, &models.Order{
			UserID:        userID,
			FullName:      shipping.FullName,
			Address:       shipping.Address,
			City:          shipping.City,
			Phone:         shipping.Phone,
			Subtotal:      total,
			Discount:      decimal.Zero,
			TotalAmount:   total,
			PaymentStatus: enums.PaymentStatusPending,
			Status:        enums.OrderStatusPending,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		orderID = order.ID

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := orderRepo.CreateOrderItems(ctx, orderItems); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
		}

		if err := cartRepo.DeleteItemsByCart(ctx, shopperCart.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if empty {
		return &Result{EmptyCart: true}, nil
	}

	order, err := s.orders.FindOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}

	if order.User != nil {
		s.notifier.Enqueue(ctx, notify.EmailMessage{
			Kind:    enums.NotificationKindOrderPlaced,
			To:      order.User.Email,
			Subject: "Your StyleHaven order is confirmed",
			Body: fmt.Sprintf("Hi %s, we received your order for a total of %s. We'll email you when it ships.",
				order.User.Username, order.TotalAmount.StringFixed(2)),
		})
	}

	return &Result{Order: orders.FromModel(order)}, nil
}

func validateShipping(info *ShippingInfo) error {
	info.FullName = strings.TrimSpace(info.FullName)
	info.Address = strings.TrimSpace(info.Address)
	info.City = strings.TrimSpace(info.City)
	info.Phone = strings.TrimSpace(info.Phone)

	if info.FullName == "" || info.Address == "" || info.City == "" || info.Phone == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "full name, address, city and phone are required")
	}
	return nil
}
