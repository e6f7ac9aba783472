package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kaamsetu/gigwork-backend/api/controllers"
	"github.com/kaamsetu/gigwork-backend/api/middleware"
	"github.com/kaamsetu/gigwork-backend/internal/auth"
	"github.com/kaamsetu/gigwork-backend/internal/jobs"
	"github.com/kaamsetu/gigwork-backend/internal/profiles"
	"github.com/kaamsetu/gigwork-backend/pkg/config"
	"github.com/kaamsetu/gigwork-backend/pkg/enums"
	"github.com/kaamsetu/gigwork-backend/pkg/logger"
	"github.com/kaamsetu/gigwork-backend/pkg/metrics"
	"github.com/kaamsetu/gigwork-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	redisClient *redis.Client,
	healthDeps map[string]controllers.Pinger,
	authService auth.Service,
	jobService jobs.Service,
	profileService profiles.Service,
) http.Handler {
	r := chi.NewRouter()
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
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, healthDeps))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/ping", controllers.PublicPing())

	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(signupPolicy, redisClient, logg)).Post("/signup", controllers.AuthSignup(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, cfg, logg))
		r.Post("/logout", controllers.AuthLogout(cfg))
	})

	r.Route("/job", func(r chi.Router) {
		r.Get("/search", controllers.JobSearch(jobService, logg))
		r.Get("/category/{category}", controllers.JobsByCategory(jobService, logg))
		r.Get("/{id}", controllers.JobDetail(jobService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.With(middleware.RequireRole(string(enums.RoleClient), logg)).
				Post("/create", controllers.JobCreate(jobService, logg))
			r.With(middleware.RequireRole(string(enums.RoleWorker), logg)).
				Post("/{id}/bids", controllers.BidPlace(jobService, logg))
			r.With(middleware.RequireRole(string(enums.RoleClient), logg)).
				Post("/{id}/bids/{bidId}/accept", controllers.BidAccept(jobService, logg))
			r.With(middleware.RequireRole(string(enums.RoleClient), logg)).
				Post("/{id}/complete", controllers.JobComplete(jobService, logg))
		})
	})

	r.Route("/user", func(r chi.Router) {
		r.Get("/{id}/profile-complete", controllers.ProfileComplete(profileService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/ping", controllers.PrivatePing())
			r.With(middleware.RequireRole(string(enums.RoleWorker), logg)).
				Post("/worker/updateProfile", controllers.WorkerProfileUpdate(profileService, logg))
		})
	})

	return r
}
