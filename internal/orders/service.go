package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylehaven/stylehaven-backend/pkg/db/models"
	"github.com/stylehaven/stylehaven-backend/pkg/enums"
	pkgerrors "github.com/stylehaven/stylehaven-backend/pkg/errors"
	"github.com/stylehaven/stylehaven-backend/pkg/notify"
	"github.com/stylehaven/stylehaven-backend/pkg/pagination"
)

const historyPageSize = 20

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order lifecycle operations beyond repository reads.
type Service interface {
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	AllowedTransitions(ctx context.Context, orderID uuid.UUID) ([]enums.OrderStatus, error)
	Transition(ctx context.Context, input TransitionInput) (*OrderDTO, error)
	AdminListOrders(ctx context.Context, params pagination.Params, filters AdminListFilters) (*ListResult, error)
	AdminOrderDetail(ctx context.Context, orderID uuid.UUID) (*DetailDTO, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	notifier notify.Enqueuer
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner, notifier notify.Enqueuer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &service{repo: repo, tx: tx, notifier: notifier}, nil
}

func (s *service) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	orders, err := s.repo.ListUserOrders(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, *FromModel(&orders[i]))
	}
	return dtos, nil
}

func (s *service) AllowedTransitions(ctx context.Context, orderID uuid.UUID) ([]enums.OrderStatus, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return order.Status.AllowedNextStatuses(), nil
}

func (s *service) Transition(ctx context.Context, input TransitionInput) (*OrderDTO, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", string(input.Target)))
	}
	if input.ActorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrderForUpdate(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		if !order.Status.CanTransitionTo(input.Target) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("invalid transition from %s to %s", order.Status, input.Target))
		}

		if err := repo.UpdateOrderStatus(ctx, order.ID, input.Target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}

		entry := &models.OrderStatusHistory{
			OrderID:     order.ID,
			FromStatus:  order.Status,
			ToStatus:    input.Target,
			ChangedByID: &input.ActorID,
		}
		if err := repo.AppendStatusHistory(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append status history")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.loadOrder(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if order.User != nil {
		s.notifier.Enqueue(ctx, notify.EmailMessage{
			Kind:    enums.NotificationKindStatusChanged,
			To:      order.User.Email,
			Subject: fmt.Sprintf("Your StyleHaven order is now %s", order.Status),
			Body: fmt.Sprintf("Hi %s, the status of your order placed on %s changed to %s.",
				order.User.Username, order.OrderedAt.Format("Jan 2, 2006"), order.Status),
		})
	}

	return FromModel(order), nil
}

func (s *service) AdminListOrders(ctx context.Context, params pagination.Params, filters AdminListFilters) (*ListResult, error) {
	orders, next, err := s.repo.ListOrders(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	result := &ListResult{Orders: make([]OrderDTO, 0, len(orders))}
	for i := range orders {
		result.Orders = append(result.Orders, *FromModel(&orders[i]))
	}
	if next != nil {
		encoded := pagination.EncodeCursor(*next)
		result.NextCursor = &encoded
	}
	return result, nil
}

func (s *service) AdminOrderDetail(ctx context.Context, orderID uuid.UUID) (*DetailDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.ListStatusHistory(ctx, orderID, historyPageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list status history")
	}

	detail := &DetailDTO{
		Order:       *FromModel(order),
		History:     historyFromModels(history),
		AllowedNext: order.Status.AllowedNextStatuses(),
	}
	if order.User != nil {
		detail.BuyerEmail = order.User.Email
		detail.BuyerUsername = order.User.Username
	}
	return detail, nil
}

func (s *service) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}
