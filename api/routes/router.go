package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avdiagram/catalog-backend/api/controllers"
	"github.com/avdiagram/catalog-backend/api/middleware"
	"github.com/avdiagram/catalog-backend/internal/auth"
	"github.com/avdiagram/catalog-backend/internal/catalog"
	"github.com/avdiagram/catalog-backend/pkg/auth/session"
	"github.com/avdiagram/catalog-backend/pkg/config"
	"github.com/avdiagram/catalog-backend/pkg/enums"
	"github.com/avdiagram/catalog-backend/pkg/logger"
	"github.com/avdiagram/catalog-backend/pkg/metrics"
	"github.com/avdiagram/catalog-backend/pkg/redis"
)

// Params bundles everything the router needs.
type Params struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             pinger
	Redis          *redis.Client
	SessionManager session.AccessSessionChecker
	AuthService    auth.Service
	CatalogService catalog.Service
	Registry       *prometheus.Registry
	RequestMetrics *metrics.RequestMetrics
}

type pinger interface {
	Ping(ctx context.Context) error
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, p.RequestMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DB, p.Redis))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.AuthService, cfg.JWT, logg))
		r.Post("/logout", controllers.AuthLogout(p.AuthService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/super-admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionManager, p.RequestMetrics, logg))
		r.Use(middleware.RequireRole(enums.RoleSuperAdmin, p.RequestMetrics, logg))

		r.Get("/dashboard", controllers.Dashboard(p.CatalogService, logg))

		r.Route("/device-types", func(r chi.Router) {
			r.Get("/", controllers.DeviceTypeList(p.CatalogService, logg))
			r.Post("/", controllers.DeviceTypeCreate(p.CatalogService, logg))
			r.Delete("/{deviceTypeId}", controllers.DeviceTypeDelete(p.CatalogService, logg))
		})

		r.Route("/manufacturers", func(r chi.Router) {
			r.Get("/", controllers.ManufacturerList(p.CatalogService, logg))
			r.Post("/", controllers.ManufacturerCreate(p.CatalogService, logg))
			r.Delete("/{manufacturerId}", controllers.ManufacturerDelete(p.CatalogService, logg))
		})
	})

	return r
}
