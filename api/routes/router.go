package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/duracem/nameplate-backend/api/controllers"
	"github.com/duracem/nameplate-backend/api/middleware"
	"github.com/duracem/nameplate-backend/internal/auth"
	"github.com/duracem/nameplate-backend/internal/dashboard"
	"github.com/duracem/nameplate-backend/internal/hierarchy"
	"github.com/duracem/nameplate-backend/internal/nameplates"
	"github.com/duracem/nameplate-backend/internal/notifications"
	"github.com/duracem/nameplate-backend/internal/uploads"
	"github.com/duracem/nameplate-backend/pkg/config"
	"github.com/duracem/nameplate-backend/pkg/logger"
	pkgredis "github.com/duracem/nameplate-backend/pkg/redis"
)

// Services bundles everything the router hands to controllers.
type Services struct {
	Auth          auth.Service
	Register      auth.RegisterService
	Nameplates    nameplates.Service
	Hierarchy     hierarchy.Service
	Dashboard     dashboard.Service
	Notifications notifications.Service
	Uploads       uploads.Service
}

// Dependencies carries the infrastructure handles the router wires into
// middleware and health checks. Redis, storage, and the metrics gatherer are
// optional and may be nil.
type Dependencies struct {
	Redis    *pkgredis.Client
	Health   map[string]controllers.HealthPinger
	Gatherer prometheus.Gatherer
}

// NewRouter builds the full HTTP surface.
func NewRouter(cfg *config.Config, logg *logger.Logger, svcs Services, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
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

	// redis is optional; the middlewares switch off on a plain nil store
	var idemStore pkgredis.IdempotencyStore
	rateLimit := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		return middleware.AuthRateLimit(policy, nil, logg)
	}
	if deps.Redis != nil {
		idemStore = deps.Redis
		rateLimit = func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
			return middleware.AuthRateLimit(policy, deps.Redis, logg)
		}
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Health))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(
			rateLimit(registerPolicy),
			middleware.Idempotency(idemStore, logg),
		).Post("/register", controllers.AuthRegister(svcs.Register, logg))
		r.With(rateLimit(loginPolicy)).Post("/login", controllers.AuthLogin(svcs.Auth, cfg, logg))
		r.Post("/logout", controllers.AuthLogout(cfg, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/me", controllers.AuthMe(svcs.Auth, logg))
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Post("/{officer}/lots/{lot}/createNameplate", controllers.NameplateCreate(svcs.Nameplates, logg))
		r.Get("/unverify", controllers.NameplateList(svcs.Nameplates, logg))
		r.Patch("/rmo/{rmo}/officers/{officer}/lots/{lot}/nameplates/{id}/verify", controllers.NameplateVerify(svcs.Nameplates, logg))

		r.Get("/rmo", controllers.HierarchyRMOs(svcs.Hierarchy, logg))
		r.Get("/rmo/{rmo}/officers", controllers.HierarchyOfficers(svcs.Hierarchy, logg))
		r.Get("/rmo/{rmo}/officers/{officer}/lots", controllers.HierarchyLots(svcs.Hierarchy, logg))

		r.Get("/dashboard/stats", controllers.DashboardStats(svcs.Dashboard, logg))

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.NotificationList(svcs.Notifications, logg))
			r.Post("/", controllers.NotificationCreate(svcs.Notifications, logg))
		})

		r.Post("/upload", controllers.UploadImage(svcs.Uploads, cfg.Upload, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole("admin", logg))
			r.With(middleware.Idempotency(idemStore, logg)).Post("/print", controllers.AdminPrint(svcs.Nameplates, logg))
		})
	})

	return r
}
