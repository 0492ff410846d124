package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylehaven/stylehaven-backend/pkg/db/models"
	"github.com/stylehaven/stylehaven-backend/pkg/enums"
	pkgerrors "github.com/stylehaven/stylehaven-backend/pkg/errors"
)

// Service defines the cart behavior consumed by the HTTP layer and checkout.
type Service interface {
	GetCart(ctx context.Context, owner Owner) (*CartDTO, error)
	AddItem(ctx context.Context, owner Owner, input AddItemInput) (*CartDTO, error)
	MutateItem(ctx context.Context, owner Owner, itemID uuid.UUID, action enums.CartAction) (*CartDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productFinder interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     Repository
	products productFinder
	tx       txRunner
}

// NewService constructs a cart service with its dependencies.
func NewService(repo Repository, products productFinder, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, products: products, tx: tx}, nil
}

func (s *service) GetCart(ctx context.Context, owner Owner) (*CartDTO, error) {
	if !owner.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart owner required")
	}

	cart, err := s.repo.FindCartByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// viewing never materializes a cart row
			return &CartDTO{Items: []ItemDTO{}}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return s.view(ctx, cart.ID)
}

func (s *service) AddItem(ctx context.Context, owner Owner, input AddItemInput) (*CartDTO, error) {
	if !owner.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart owner required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	product, err := s.products.FindProductByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err := validateVariant(product, input.SizeID, input.ColorID); err != nil {
		return nil, err
	}

	var cartID uuid.UUID
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := repo.FindCartByOwner(ctx, owner)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
			}
			cart, err = repo.CreateCart(ctx, owner)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
			}
		}
		cartID = cart.ID

		existing, err := repo.FindItemByTuple(ctx, cart.ID, input.ProductID, input.SizeID, input.ColorID)
		if err == nil {
			return repo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+1)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find cart item")
		}

		_, err = repo.CreateItem(ctx, &models.CartItem{
			CartID:    cart.ID,
			ProductID: input.ProductID,
			SizeID:    input.SizeID,
			ColorID:   input.ColorID,
			Quantity:  1,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cartID)
}

func (s *service) MutateItem(ctx context.Context, owner Owner, itemID uuid.UUID, action enums.CartAction) (*CartDTO, error) {
	if !owner.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart owner required")
	}
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if !action.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown cart action")
	}

	cart, err := s.repo.FindCartByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindItemByID(ctx, cart.ID, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find cart item")
		}

		switch action {
		case enums.CartActionIncrease:
			return repo.UpdateItemQuantity(ctx, item.ID, item.Quantity+1)
		case enums.CartActionDecrease:
			if item.Quantity-1 <= 0 {
				return repo.DeleteItem(ctx, item.ID)
			}
			return repo.UpdateItemQuantity(ctx, item.ID, item.Quantity-1)
		case enums.CartActionRemove:
			return repo.DeleteItem(ctx, item.ID)
		default:
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown cart action")
		}
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart.ID)
}

func (s *service) view(ctx context.Context, cartID uuid.UUID) (*CartDTO, error) {
	items, err := s.repo.ListItems(ctx, cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}
	return cartFromItems(cartID, items), nil
}

func validateVariant(product *models.Product, sizeID, colorID *uuid.UUID) error {
	if sizeID != nil {
		found := false
		for _, size := range product.Sizes {
			if size.ID == *sizeID {
				found = true
				break
			}
		}
		if !found {
			return pkgerrors.New(pkgerrors.CodeValidation, "size not offered for this product")
		}
	}
	if colorID != nil {
		found := false
		for _, color := range product.Colors {
			if color.ID == *colorID {
				found = true
				break
			}
		}
		if !found {
			return pkgerrors.New(pkgerrors.CodeValidation, "color not offered for this product")
		}
	}
	return nil
}
