package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"BOOKING_BACK-END/internal/config"
	"BOOKING_BACK-END/internal/handlers"
	"BOOKING_BACK-END/internal/metrics"
	"BOOKING_BACK-END/internal/middleware"
	"BOOKING_BACK-END/internal/objectstore/local"
)

// Handlers groups everything the router dispatches to.
// AvatarObjects is nil unless avatars live in the local object store.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Google        *handlers.GoogleAuthHandler
	Health        *handlers.HealthHandler
	Profile       *handlers.ProfileHandler
	Requests      *handlers.RequestsHandler
	Notifications *handlers.NotificationsHandler
	Dashboard     *handlers.DashboardHandler
	AvatarObjects *handlers.AvatarObjectsHandler
}

// SetupRoutes configures all application routes
func SetupRoutes(log *zap.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer, jwt *config.JWTConfig, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Observe(log, m))

	// Health check routes
	r.Get("/healthz", h.Health.HealthCheck)
	r.Get("/livez", h.Health.LivenessCheck)
	r.Get("/readyz", h.Health.ReadinessCheck)

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		// Authentication routes
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)
		r.Get("/auth/google/login", h.Google.GoogleLogin)
		r.Get("/auth/google/callback", h.Google.GoogleCallback)

		r.Get("/countries", handlers.Countries)
		if h.AvatarObjects != nil {
			r.Get(strings.TrimPrefix(local.ReadPath, "/api"), h.AvatarObjects.Serve)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(jwt))

			r.Get("/auth/me", h.Auth.Me)
			r.Get("/dashboard", h.Dashboard.Dashboard)

			r.Get("/profile", h.Profile.GetProfile)
			r.Put("/profile", h.Profile.UpdateProfile)
			r.Post("/profile/avatar", h.Profile.UploadAvatar)
			r.Get("/providers", h.Profile.ListProviders)

			r.Post("/requests", h.Requests.CreateRequest)
			r.Get("/requests", h.Requests.ListRequests)
			r.Get("/requests/{id}", h.Requests.GetRequest)
			r.Post("/requests/{id}/status", h.Requests.TransitionRequest)

			r.Get("/notifications", h.Notifications.List)
			r.Post("/notifications/read-all", h.Notifications.MarkAllRead)
			r.Post("/notifications/{id}/read", h.Notifications.MarkRead)
		})
	})

	// Root route
	r.Get("/", rootHandler)

	return r
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Booking backend is running."))
}
