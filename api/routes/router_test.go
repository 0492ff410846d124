package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	pkgAuth "github.com/stylehaven/stylehaven-backend/pkg/auth"
	"github.com/stylehaven/stylehaven-backend/internal/auth"
	"github.com/stylehaven/stylehaven-backend/internal/cart"
	"github.com/stylehaven/stylehaven-backend/internal/catalog"
	checkoutsvc "github.com/stylehaven/stylehaven-backend/internal/checkout"
	"github.com/stylehaven/stylehaven-backend/internal/orders"
	"github.com/stylehaven/stylehaven-backend/pkg/config"
	"github.com/stylehaven/stylehaven-backend/pkg/enums"
	"github.com/stylehaven/stylehaven-backend/pkg/logger"
	"github.com/stylehaven/stylehaven-backend/pkg/pagination"
)

type fakeSessionManager struct{}

func (fakeSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func (fakeSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return "new-access-id", "new-refresh", nil
}

func (fakeSessionManager) Revoke(ctx context.Context, accessID string) error {
	return nil
}

type fakeAuthService struct{}

func (fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
	return &auth.RegisterResponse{AccessToken: "a", RefreshToken: "r"}, nil
}

func (fakeAuthService) RequestOTP(ctx context.Context, req auth.OTPRequest) (*auth.OTPRequestResponse, error) {
	return &auth.OTPRequestResponse{Email: req.Email}, nil
}

func (fakeAuthService) VerifyOTP(ctx context.Context, req auth.VerifyOTPRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "a", RefreshToken: "r"}, nil
}

func (fakeAuthService) StaffLogin(ctx context.Context, req auth.StaffLoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "a", RefreshToken: "r"}, nil
}

type fakeCatalogService struct{}

func (fakeCatalogService) ListProducts(ctx context.Context, filters catalog.ProductListFilters) ([]catalog.ProductDTO, error) {
	return nil, nil
}

func (fakeCatalogService) GetProduct(ctx context.Context, slug string) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{Slug: slug}, nil
}

func (fakeCatalogService) GetLookups(ctx context.Context, section *enums.CatalogSection) (*catalog.Lookups, error) {
	return &catalog.Lookups{}, nil
}

func (fakeCatalogService) CreateProduct(ctx context.Context, input catalog.CreateProductInput) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{}, nil
}

func (fakeCatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input catalog.UpdateProductInput) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{}, nil
}

func (fakeCatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return nil
}

type fakeCartService struct{}

func (fakeCartService) GetCart(ctx context.Context, owner cart.Owner) (*cart.CartDTO, error) {
	return &cart.CartDTO{}, nil
}

func (fakeCartService) AddItem(ctx context.Context, owner cart.Owner, input cart.AddItemInput) (*cart.CartDTO, error) {
	return &cart.CartDTO{}, nil
}

func (fakeCartService) MutateItem(ctx context.Context, owner cart.Owner, itemID uuid.UUID, action enums.CartAction) (*cart.CartDTO, error) {
	return &cart.CartDTO{}, nil
}

type fakeCheckoutService struct{}

func (fakeCheckoutService) Checkout(ctx context.Context, userID uuid.UUID, shipping checkoutsvc.ShippingInfo) (*checkoutsvc.Result, error) {
	return &checkoutsvc.Result{EmptyCart: true}, nil
}

type fakeOrdersService struct{}

func (fakeOrdersService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]orders.OrderDTO, error) {
	return nil, nil
}

func (fakeOrdersService) AllowedTransitions(ctx context.Context, orderID uuid.UUID) ([]enums.OrderStatus, error) {
	return nil, nil
}

func (fakeOrdersService) Transition(ctx context.Context, input orders.TransitionInput) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{}, nil
}

func (fakeOrdersService) AdminListOrders(ctx context.Context, params pagination.Params, filters orders.AdminListFilters) (*orders.ListResult, error) {
	return &orders.ListResult{}, nil
}

func (fakeOrdersService) AdminOrderDetail(ctx context.Context, orderID uuid.UUID) (*orders.DetailDTO, error) {
	return &orders.DetailDTO{}, nil
}

var routerJWT = config.JWTConfig{
	Secret:            "router-test-secret",
	Issuer:            "stylehaven-test",
	ExpirationMinutes: 15,
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT = routerJWT

	return NewRouter(Deps{
		Config:          cfg,
		Logger:          logger.New(logger.Options{ServiceName: "router-test"}),
		SessionManager:  fakeSessionManager{},
		AuthService:     fakeAuthService{},
		CatalogService:  fakeCatalogService{},
		CartService:     fakeCartService{},
		CheckoutService: fakeCheckoutService{},
		OrdersService:   fakeOrdersService{},
		MetricsRegistry: prometheus.NewRegistry(),
	})
}

func staffToken(t *testing.T) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(routerJWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "ops@stylehaven.shop",
		Role:   enums.UserRoleStaff,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func customerToken(t *testing.T) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(routerJWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "ana@example.com",
		Role:   enums.UserRoleCustomer,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestRouterHealthAndMetrics(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if rec.Header().Get("X-StyleHaven-Env") != "test" {
		t.Fatalf("expected env header got %q", rec.Header().Get("X-StyleHaven-Env"))
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics got %d", rec.Code)
	}
}

func TestRouterStorefrontIsPublic(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestRouterCartAllowsAnonymousSession(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Session", "guest-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestRouterCheckoutRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestRouterAdminRequiresStaffRole(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken(t))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken(t))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff got %d body %s", rec.Code, rec.Body.String())
	}
}
