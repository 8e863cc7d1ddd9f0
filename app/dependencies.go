package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/upb/greeting-app/config"
	"github.com/upb/greeting-app/handlers"
	"github.com/upb/greeting-app/internal/auth"
	"github.com/upb/greeting-app/internal/observability"
	"github.com/upb/greeting-app/internal/ui"
	"github.com/upb/greeting-app/middleware"
	"github.com/upb/greeting-app/services/users"
	"go.uber.org/zap"
)

// ServiceName identifies the server in traces.
const ServiceName = "greeter"

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config    *config.Config
	Logger    *zap.Logger
	StartedAt time.Time

	// Observability
	MetricsRegistry *prometheus.Registry
	Metrics         *observability.Metrics
	shutdownTracing observability.ShutdownFunc

	// Auth
	Resolver       auth.IdentityResolver
	AuthMiddleware *middleware.AuthMiddleware

	// Services and handlers
	Users         *users.Service
	UserHandler   *handlers.UserHandler
	HealthHandler *handlers.HealthHandler
	UI            *ui.Handler
}

// Option overrides a default collaborator.
type Option func(*options)

type options struct {
	resolver auth.IdentityResolver
	lookup   users.UsernameLookup
	uiClient *ui.Client
}

// WithIdentityResolver replaces the mock identity resolver.
func WithIdentityResolver(r auth.IdentityResolver) Option {
	return func(o *options) { o.resolver = r }
}

// WithUsernameLookup replaces the OS username lookup.
func WithUsernameLookup(l users.UsernameLookup) Option {
	return func(o *options) { o.lookup = l }
}

// WithUIClient replaces the shell's API client.
func WithUIClient(c *ui.Client) Option {
	return func(o *options) { o.uiClient = c }
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*Dependencies, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	deps := &Dependencies{
		Config:    cfg,
		Logger:    logger,
		StartedAt: time.Now(),
	}

	if err := deps.initObservability(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	deps.initAuth(o.resolver)
	deps.initServices(cfg, o)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initObservability creates the metrics registry and the tracer provider
func (d *Dependencies) initObservability(ctx context.Context, cfg *config.Config) error {
	d.MetricsRegistry = prometheus.NewRegistry()
	d.Metrics = observability.NewMetrics(d.MetricsRegistry)

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.Observability.TracingEnabled,
		Endpoint:    cfg.Observability.TracingEndpoint,
		SampleRate:  cfg.Observability.TracingSampleRate,
		ServiceName: ServiceName,
		Environment: cfg.Environment,
	}, d.Logger)
	if err != nil {
		return err
	}
	d.shutdownTracing = shutdown
	return nil
}

// initAuth wires the identity step. Without an override every request is
// attributed to the mock user identity.
func (d *Dependencies) initAuth(resolver auth.IdentityResolver) {
	if resolver == nil {
		resolver = auth.NewMockResolver()
		d.Logger.Warn("using mock identity resolver",
			zap.String("identity_id", auth.MockIdentityID),
			zap.String("role", string(auth.RoleUser)))
	}
	d.Resolver = resolver
	d.AuthMiddleware = middleware.NewAuthMiddleware(resolver, d.Logger).WithDenialRecorder(d.Metrics)
}

func (d *Dependencies) initServices(cfg *config.Config, o options) {
	d.Users = users.NewService(o.lookup, d.Logger)
	d.UserHandler = handlers.NewUserHandler(d.Users, d.Logger)
	d.HealthHandler = handlers.NewHealthHandler(d.StartedAt, d.Logger)

	client := o.uiClient
	if client == nil {
		client = ui.NewClient(cfg.UI.APIBaseURL, nil)
	}
	d.UI = ui.NewHandler(client, d.Logger, cfg.IsProduction(), cfg.UI.StaticDir)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.shutdownTracing != nil {
		if err := d.shutdownTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down tracing: %w", err))
		}
	}

	// Sync logger
	_ = d.Logger.Sync()

	return errors.Join(errs...)
}
