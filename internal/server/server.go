// Package server contains the HTTP handlers and routing for the campushub API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "campushub/docs" // swagger docs
	"campushub/internal/auth"
	"campushub/internal/bootstrap"
	"campushub/internal/cache"
	"campushub/internal/config"
	"campushub/internal/featureflags"
	"campushub/internal/middleware"
	"campushub/internal/models"
	"campushub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
)

const serviceName = "campushub-api"

// Server holds all dependencies and provides handlers
type Server struct {
	config       *config.Config
	runtime      *bootstrap.Runtime
	redis        *redis.Client
	app          *fiber.App
	tokens       *auth.TokenService
	featureFlags *featureflags.Manager
	authService  *service.AuthService
	postService  *service.PostService
	savedService *service.SavedService
}

// NewServer connects the configured store and Redis, then builds the server on top of them.
// It blocks until the database is reachable or ctx is cancelled.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, rt)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes the store and Redis.
func NewServerWithDeps(cfg *config.Config, rt *bootstrap.Runtime) (*Server, error) {
	if cfg == nil || rt == nil {
		return nil, errors.New("server requires a config and a runtime")
	}

	s := &Server{
		config:       cfg,
		runtime:      rt,
		redis:        rt.Redis,
		tokens:       auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL()),
		featureFlags: featureflags.NewManager(cfg.FeatureFlags),
	}

	s.authService = service.NewAuthService(rt.Users, s.tokens, auth.NewBcryptHasher(cfg.BcryptCost))
	s.postService = service.NewPostService(rt.Posts, cache.New(rt.Redis), s.openLegacyEdit)
	s.savedService = service.NewSavedService(rt.Users, rt.Posts)

	return s, nil
}

func (s *Server) openLegacyEdit(actor models.Identity) bool {
	return s.featureFlags.Enabled(featureflags.LegacyOpenEdit, actor.Email)
}

// NewApp builds a Fiber app with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "CampusHub API",
		BodyLimit: 1 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).JSON(models.ErrorResponse{Message: fiberErr.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// OpenTelemetry span per request
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate request and trace IDs
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics, exposed on /metrics
	app.Use(middleware.MetricsMiddleware(app, serviceName, "/metrics"))

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://127.0.0.1:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Message: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")
	authRequired := middleware.AuthRequired(s.tokens)

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	api.Get("/health", s.HealthCheck)

	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "CampusHub Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	authRoutes := api.Group("/auth")
	authRoutes.Get("/health", s.AuthHealth)
	authRoutes.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	authRoutes.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	authRoutes.Get("/me", authRequired, s.Me)

	// Post routes. Specific paths are registered before the generic /:id routes.
	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", authRequired, s.CreatePost)
	posts.Get("/saved", authRequired, s.GetSavedPosts)
	posts.Post("/save", authRequired, s.SavePost)
	posts.Post("/cleanup-saved", s.MaintenanceRequired(), s.CleanupSavedPosts)
	posts.Get("/:id", s.GetPost)
	posts.Put("/:id", authRequired, s.UpdatePost)
	posts.Delete("/:id", authRequired, s.DeletePost)
}

// Start builds the app and listens on the configured port until Shutdown.
func (s *Server) Start() error {
	s.app = s.NewApp()
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if err := s.runtime.Close(ctx); err != nil {
		return fmt.Errorf("close store: %w", err)
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
