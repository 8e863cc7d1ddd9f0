package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/greeting-app/app"
	"github.com/upb/greeting-app/handlers"
	"github.com/upb/greeting-app/internal/auth"
	"github.com/upb/greeting-app/internal/observability"
	"github.com/upb/greeting-app/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxBodyBytes caps request bodies at 10 MB.
const maxBodyBytes = 10 << 20

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()
	cfg := deps.Config
	logger := deps.Logger

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.GetHead)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recoverer(logger, !cfg.IsProduction()))
	r.Use(chimw.Compress(5))
	r.Use(chimw.RequestSize(maxBodyBytes))
	r.Use(securityHeaders()...)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	if cfg.Observability.MetricsEnabled {
		r.Use(observability.HTTPMetricsMiddleware(deps.Metrics))
	}

	notFound := handlers.NotFound(logger)
	r.NotFound(deps.UI.Fallback(notFound))
	r.MethodNotAllowed(notFound)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/getUsername", deps.UserHandler.GetUsername)
		r.Get("/health", deps.HealthHandler.HandleHealth)
		r.Get("/users/search", deps.UserHandler.SearchUsers)

		// Protected routes: identity first, then the permission or role check
		r.With(
			deps.AuthMiddleware.AttachIdentity,
			deps.AuthMiddleware.RequirePermission(auth.PermissionReadUsers),
		).Get("/users", deps.UserHandler.ListUsers)

		r.With(
			deps.AuthMiddleware.AttachIdentity,
			deps.AuthMiddleware.RequireRole(auth.RoleAdmin),
		).Delete("/users/{id}", deps.UserHandler.DeleteUser)
	})

	// Frontend shell
	deps.UI.Mount(r, notFound)

	return otelhttp.NewHandler(r, app.ServiceName)
}

// securityHeaders sets a fixed set of hardening headers on every response.
func securityHeaders() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		chimw.SetHeader("X-Content-Type-Options", "nosniff"),
		chimw.SetHeader("X-Frame-Options", "SAMEORIGIN"),
		chimw.SetHeader("Referrer-Policy", "no-referrer"),
		chimw.SetHeader("X-DNS-Prefetch-Control", "off"),
		chimw.SetHeader("Cross-Origin-Opener-Policy", "same-origin"),
		chimw.SetHeader("Cross-Origin-Resource-Policy", "same-origin"),
		chimw.SetHeader("Content-Security-Policy",
			"default-src 'self'; img-src 'self' data:; object-src 'none'; base-uri 'self'; frame-ancestors 'self'"),
	}
}
