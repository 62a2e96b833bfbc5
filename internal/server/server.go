// Package server exposes the sns.v1 RPC surface over HTTP. Every procedure
// is a POST to /sns.v1.<Service>/<Method> with a JSON body.
package server

import (
	"context"
	"log"
	"time"

	"murmur/internal/bootstrap"
	"murmur/internal/config"
	"murmur/internal/featureflags"
	"murmur/internal/middleware"
	"murmur/internal/models"
	"murmur/internal/repository"
	"murmur/internal/service"
	"murmur/internal/sns"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	featureFlags   *featureflags.Manager

	authRepo     repository.AuthRepository
	timelineRepo repository.TimelineRepository
	reactionRepo repository.ReactionRepository
	dmRepo       repository.DMRepository

	tenantService   *service.TenantService
	timelineService *service.TimelineService
	reactionService *service.ReactionService
	dmService       *service.DMService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{
		Migrate:  true,
		SeedDemo: cfg.DevSeed,
	})
	if err != nil {
		return nil, err
	}

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	authRepo := repository.NewAuthRepository(db)
	timelineRepo := repository.NewTimelineRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	dmRepo := repository.NewDMRepository(db)

	prom := middleware.InitMetrics("murmur-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		authRepo:       authRepo,
		timelineRepo:   timelineRepo,
		reactionRepo:   reactionRepo,
		dmRepo:         dmRepo,
	}
	server.tenantService = service.NewTenantService(authRepo)
	server.timelineService = service.NewTimelineService(timelineRepo)
	server.reactionService = service.NewReactionService(reactionRepo)
	server.dmService = service.NewDMService(dmRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Propagate request id and dev identity into the request context
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before anything that can short-circuit so browser
	// clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Tenant, X-User, X-Request-Id, Connect-Protocol-Version",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	scoped := middleware.ScopeRequired(s.tenantService, s.config.AllowDevHeaders)

	proc := func(name, flag string, limit int, window time.Duration, handler fiber.Handler) {
		handlers := []fiber.Handler{scoped}
		if flag != "" {
			handlers = append(handlers, s.featureGate(flag))
		}
		if limit > 0 {
			handlers = append(handlers, middleware.RateLimit(s.redis, limit, window, name))
		}
		handlers = append(handlers, handler)
		app.Post("/"+name, handlers...)
	}

	proc(sns.ProcGetMe, "", 0, 0, s.GetMe)
	proc(sns.ProcResolveTenant, "", 0, 0, s.ResolveTenant)

	proc(sns.ProcListFeed, "", 0, 0, s.ListFeed)
	proc(sns.ProcCreatePost, "", 10, time.Minute, s.CreatePost)
	proc(sns.ProcListComments, "", 0, 0, s.ListComments)
	proc(sns.ProcCreateComment, "", 30, time.Minute, s.CreateComment)

	proc(sns.ProcToggleReaction, "reactions", 60, time.Minute, s.ToggleReaction)

	proc(sns.ProcListConversations, "dms", 0, 0, s.ListConversations)
	proc(sns.ProcGetOrCreateDM, "dms", 0, 0, s.GetOrCreateDM)
	proc(sns.ProcListMessages, "dms", 0, 0, s.ListMessages)
	proc(sns.ProcSendMessage, "dms", 60, time.Minute, s.SendMessage)
}

// featureGate rejects procedures whose feature is rolled off for the caller.
// Unconfigured flags are enabled, so an empty FEATURE_FLAGS changes nothing.
func (s *Server) featureGate(flag string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if scope, ok := middleware.ScopeFromLocals(c); ok {
			if !s.featureFlags.Enabled(flag, scope.UserID) {
				return models.RespondWithError(c, fiber.StatusForbidden,
					models.NewPermissionDeniedError(flag+" is not available for this account"))
			}
		}
		return c.Next()
	}
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis only backs rate limiting; its absence degrades, not breaks.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "Murmur API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
