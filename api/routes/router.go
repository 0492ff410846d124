package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stylehaven/stylehaven-backend/api/controllers"
	"github.com/stylehaven/stylehaven-backend/api/middleware"
	"github.com/stylehaven/stylehaven-backend/internal/auth"
	"github.com/stylehaven/stylehaven-backend/internal/cart"
	"github.com/stylehaven/stylehaven-backend/internal/catalog"
	checkoutsvc "github.com/stylehaven/stylehaven-backend/internal/checkout"
	"github.com/stylehaven/stylehaven-backend/internal/orders"
	"github.com/stylehaven/stylehaven-backend/pkg/auth/session"
	"github.com/stylehaven/stylehaven-backend/pkg/config"
	"github.com/stylehaven/stylehaven-backend/pkg/db"
	"github.com/stylehaven/stylehaven-backend/pkg/logger"
	"github.com/stylehaven/stylehaven-backend/pkg/metrics"
	"github.com/stylehaven/stylehaven-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything the router needs. The metrics registry is optional:
// when nil the /metrics endpoint and per-route observation are skipped.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	SessionManager  sessionManager
	AuthService     auth.Service
	CatalogService  catalog.Service
	CartService     cart.Service
	CheckoutService checkoutsvc.Service
	OrdersService   orders.Service
	MetricsRegistry *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()

	var httpMetrics *metrics.HTTPMetrics
	if deps.MetricsRegistry != nil {
		httpMetrics = metrics.NewHTTPMetrics(deps.MetricsRegistry)
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	otpPolicy := middleware.NewAuthRateLimitPolicy(
		"otp",
		cfg.AuthRateLimit.OTPWindow,
		cfg.AuthRateLimit.OTPIPLimit,
		cfg.AuthRateLimit.OTPEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	var redisPinger redis.Pinger
	if deps.Redis != nil {
		redisPinger = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger))
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(otpPolicy, deps.Redis, logg)).Post("/otp/request", controllers.AuthRequestOTP(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/otp/verify", controllers.AuthVerifyOTP(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/staff/login", controllers.AuthStaffLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.SessionManager, cfg.JWT, logg))
		r.Post("/logout", controllers.AuthLogout(deps.SessionManager, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.CatalogListProducts(deps.CatalogService, logg))
		r.Get("/products/{slug}", controllers.CatalogGetProduct(deps.CatalogService, logg))
		r.Get("/lookups", controllers.CatalogLookups(deps.CatalogService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg.JWT, deps.SessionManager, logg))
			r.Get("/", controllers.CartGet(deps.CartService, logg))
			r.Post("/items", controllers.CartAddItem(deps.CartService, logg))
			r.Post("/items/{itemId}/{action}", controllers.CartMutateItem(deps.CartService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
			r.Post("/checkout", controllers.Checkout(deps.CheckoutService, logg))
			r.Get("/orders", controllers.OrdersList(deps.OrdersService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Use(middleware.RequireRole("staff", logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(deps.CatalogService, logg))
			r.Patch("/{productId}", controllers.AdminUpdateProduct(deps.CatalogService, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(deps.CatalogService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrdersList(deps.OrdersService, logg))
			r.Get("/{orderId}", controllers.AdminOrderDetail(deps.OrdersService, logg))
			r.Get("/{orderId}/transitions", controllers.AdminOrderTransitions(deps.OrdersService, logg))
			r.Post("/{orderId}/transition", controllers.AdminOrderTransition(deps.OrdersService, logg))
		})
	})

	return r
}
