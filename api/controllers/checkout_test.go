package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/stylehaven/stylehaven-backend/api/middleware"
	"github.com/stylehaven/stylehaven-backend/internal/checkout"
	"github.com/stylehaven/stylehaven-backend/internal/orders"
)

type stubCheckoutService struct {
	result *checkout.Result
	err    error

	lastUserID   uuid.UUID
	lastShipping checkout.ShippingInfo
}

func (s *stubCheckoutService) Checkout(ctx context.Context, userID uuid.UUID, shipping checkout.ShippingInfo) (*checkout.Result, error) {
	s.lastUserID = userID
	s.lastShipping = shipping
	return s.result, s.err
}

const shippingBody = `{"full_name":"Ana Costa","address":"12 Rua das Flores","city":"Lisbon","phone":"+351 912 345 678"}`

func TestCheckoutPlacesOrder(t *testing.T) {
	userID := uuid.New()
	svc := &stubCheckoutService{result: &checkout.Result{Order: &orders.OrderDTO{ID: uuid.New()}}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(shippingBody))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	rec := httptest.NewRecorder()
	Checkout(svc, testLogger())(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", rec.Code, rec.Body.String())
	}
	if svc.lastUserID != userID {
		t.Fatalf("expected user forwarded got %s", svc.lastUserID)
	}
	if svc.lastShipping.City != "Lisbon" {
		t.Fatalf("expected shipping forwarded got %+v", svc.lastShipping)
	}
	if !strings.Contains(rec.Body.String(), `"placed"`) {
		t.Fatalf("expected placed status in body got %s", rec.Body.String())
	}
}

func TestCheckoutEmptyCartRedirectsToCatalog(t *testing.T) {
	svc := &stubCheckoutService{result: &checkout.Result{EmptyCart: true}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(shippingBody))
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	rec := httptest.NewRecorder()
	Checkout(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"/products"`) {
		t.Fatalf("expected catalog redirect got %s", rec.Body.String())
	}
}

func TestCheckoutRequiresSignIn(t *testing.T) {
	svc := &stubCheckoutService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(shippingBody))
	rec := httptest.NewRecorder()
	Checkout(svc, testLogger())(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestCheckoutRejectsMissingShippingFields(t *testing.T) {
	svc := &stubCheckoutService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"full_name":"Ana Costa"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	rec := httptest.NewRecorder()
	Checkout(svc, testLogger())(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
