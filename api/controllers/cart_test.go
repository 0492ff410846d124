package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stylehaven/stylehaven-backend/api/middleware"
	"github.com/stylehaven/stylehaven-backend/internal/cart"
	"github.com/stylehaven/stylehaven-backend/pkg/enums"
)

type stubCartService struct {
	result *cart.CartDTO
	err    error

	lastOwner  cart.Owner
	lastInput  cart.AddItemInput
	lastItemID uuid.UUID
	lastAction enums.CartAction
}

func (s *stubCartService) GetCart(ctx context.Context, owner cart.Owner) (*cart.CartDTO, error) {
	s.lastOwner = owner
	return s.result, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, owner cart.Owner, input cart.AddItemInput) (*cart.CartDTO, error) {
	s.lastOwner = owner
	s.lastInput = input
	return s.result, s.err
}

func (s *stubCartService) MutateItem(ctx context.Context, owner cart.Owner, itemID uuid.UUID, action enums.CartAction) (*cart.CartDTO, error) {
	s.lastOwner = owner
	s.lastItemID = itemID
	s.lastAction = action
	return s.result, s.err
}

func emptyCartDTO() *cart.CartDTO {
	return &cart.CartDTO{Subtotal: decimal.Zero}
}

func TestCartGetUsesSessionOwnerWhenAnonymous(t *testing.T) {
	svc := &stubCartService{result: emptyCartDTO()}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req = req.WithContext(middleware.WithCartSession(req.Context(), "guest-token"))
	rec := httptest.NewRecorder()
	CartGet(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
	if svc.lastOwner.SessionID == nil || *svc.lastOwner.SessionID != "guest-token" {
		t.Fatalf("expected session owner got %+v", svc.lastOwner)
	}
	if svc.lastOwner.UserID != nil {
		t.Fatalf("expected no user owner got %+v", svc.lastOwner)
	}
}

func TestCartGetPrefersUserOwner(t *testing.T) {
	svc := &stubCartService{result: emptyCartDTO()}
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithCartSession(ctx, "guest-token")
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	CartGet(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastOwner.UserID == nil || *svc.lastOwner.UserID != userID {
		t.Fatalf("expected user owner got %+v", svc.lastOwner)
	}
}

func TestCartGetRequiresIdentity(t *testing.T) {
	svc := &stubCartService{result: emptyCartDTO()}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	CartGet(svc, testLogger())(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestCartAddItemForwardsVariantTuple(t *testing.T) {
	svc := &stubCartService{result: emptyCartDTO()}
	productID := uuid.New()
	sizeID := uuid.New()

	body := `{"product_id":"` + productID.String() + `","size_id":"` + sizeID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req = req.WithContext(middleware.WithCartSession(req.Context(), "guest-token"))
	rec := httptest.NewRecorder()
	CartAddItem(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
	if svc.lastInput.ProductID != productID {
		t.Fatalf("expected product forwarded got %s", svc.lastInput.ProductID)
	}
	if svc.lastInput.SizeID == nil || *svc.lastInput.SizeID != sizeID {
		t.Fatalf("expected size forwarded got %+v", svc.lastInput.SizeID)
	}
	if svc.lastInput.ColorID != nil {
		t.Fatalf("expected nil color got %+v", svc.lastInput.ColorID)
	}
}

func TestCartMutateItemParsesAction(t *testing.T) {
	svc := &stubCartService{result: emptyCartDTO()}
	itemID := uuid.New()

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("itemId", itemID.String())
	routeCtx.URLParams.Add("action", "decrease")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items/"+itemID.String()+"/decrease", nil)
	ctx := middleware.WithCartSession(req.Context(), "guest-token")
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	CartMutateItem(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
	if svc.lastItemID != itemID {
		t.Fatalf("expected item id forwarded got %s", svc.lastItemID)
	}
	if svc.lastAction != enums.CartActionDecrease {
		t.Fatalf("expected decrease got %s", svc.lastAction)
	}
}

func TestCartMutateItemRejectsUnknownAction(t *testing.T) {
	svc := &stubCartService{result: emptyCartDTO()}
	itemID := uuid.New()

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("itemId", itemID.String())
	routeCtx.URLParams.Add("action", "duplicate")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items/"+itemID.String()+"/duplicate", nil)
	ctx := middleware.WithCartSession(req.Context(), "guest-token")
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	CartMutateItem(svc, testLogger())(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
