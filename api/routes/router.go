package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rahulnair-dev/vastra-backend/api/controllers"
	"github.com/rahulnair-dev/vastra-backend/api/middleware"
	"github.com/rahulnair-dev/vastra-backend/internal/auth"
	"github.com/rahulnair-dev/vastra-backend/internal/cart"
	"github.com/rahulnair-dev/vastra-backend/internal/catalog"
	checkoutsvc "github.com/rahulnair-dev/vastra-backend/internal/checkout"
	"github.com/rahulnair-dev/vastra-backend/internal/orders"
	"github.com/rahulnair-dev/vastra-backend/pkg/auth/session"
	"github.com/rahulnair-dev/vastra-backend/pkg/config"
	"github.com/rahulnair-dev/vastra-backend/pkg/db"
	"github.com/rahulnair-dev/vastra-backend/pkg/logger"
	"github.com/rahulnair-dev/vastra-backend/pkg/metrics"
	"github.com/rahulnair-dev/vastra-backend/pkg/redis"
)

// RouterParams collects everything the HTTP surface needs.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	SessionManager  session.AccessSessionChecker
	AuthService     auth.Service
	RegisterService auth.RegisterService
	CatalogService  catalog.Service
	CartService     cart.Service
	OrdersService   orders.Service
	CheckoutService checkoutsvc.Service
	Registry        *prometheus.Registry
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()

	var httpMetrics *metrics.HTTPMetrics
	if p.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(p.Registry)
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.AuthRegister(p.RegisterService, p.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/categories", controllers.CatalogCategories(p.CatalogService, logg))
		r.Get("/categories/{categoryId}", controllers.CatalogCategoryDetail(p.CatalogService, logg))
		r.Get("/products/featured", controllers.CatalogFeatured(p.CatalogService, logg))
		r.Get("/products/search", controllers.CatalogSearch(p.CatalogService, logg))
		r.Get("/products/{productId}", controllers.CatalogProductDetail(p.CatalogService, logg))
		r.Get("/products/{productId}/related", controllers.CatalogRelated(p.CatalogService, logg))
	})

	// Each protected group is mounted on its own prefix so unmatched paths
	// under /api/v1 reach the router's 404 handler, not the auth middleware.
	authed := middleware.Auth(cfg.JWT, p.SessionManager, logg)

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(authed)
		r.Get("/", controllers.CartFetch(p.CartService, logg))
		r.Delete("/", controllers.CartClear(p.CartService, logg))
		r.Post("/items", controllers.CartAdd(p.CartService, logg))
		r.Put("/items/{itemId}", controllers.CartUpdateItem(p.CartService, logg))
		r.Delete("/items/{itemId}", controllers.CartRemoveItem(p.CartService, logg))
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(authed)
		r.Get("/", controllers.OrdersList(p.OrdersService, logg))
		r.Get("/{orderId}", controllers.OrderDetail(p.OrdersService, logg))
	})

	r.With(authed).Post("/api/v1/checkout", controllers.Checkout(p.CheckoutService, logg))

	return r
}
