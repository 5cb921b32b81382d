// Package server wires the HTTP surface of the marketplace: routing,
// middleware, dependency construction and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tomati/internal/cache"
	"tomati/internal/config"
	"tomati/internal/database"
	"tomati/internal/middleware"
	"tomati/internal/models"
	"tomati/internal/notifications"
	"tomati/internal/observability"
	"tomati/internal/repository"
	"tomati/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds the application dependencies and the Fiber app.
type Server struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
	app    *fiber.App
	prom   *fiberprometheus.FiberPrometheus

	userRepo     repository.UserRepository
	productRepo  repository.ProductRepository
	likeRepo     repository.LikeRepository
	categoryRepo repository.CategoryRepository
	messageRepo  repository.MessageRepository
	notifRepo    repository.NotificationRepository
	adRepo       repository.AdvertisementRepository
	reviewRepo   repository.ReviewRepository
	statsRepo    repository.StatsRepository

	notifier *notifications.Notifier
	hub      *notifications.Hub

	promotionService *service.PromotionService
	productService   *service.ProductService
}

// NewServer creates a server connected to the configured Postgres and Redis.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps builds a server around existing connections. Tests use it
// to inject an in-memory database and a miniredis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	s := &Server{
		config: cfg,
		db:     db,
		redis:  redisClient,
	}

	// Repositories reach the cache through the package-level client.
	cache.SetClient(redisClient)

	s.userRepo = repository.NewUserRepository(db)
	s.productRepo = repository.NewProductRepository(db)
	s.likeRepo = repository.NewLikeRepository(db)
	s.categoryRepo = repository.NewCategoryRepository(db)
	s.messageRepo = repository.NewMessageRepository(db)
	s.notifRepo = repository.NewNotificationRepository(db)
	s.adRepo = repository.NewAdvertisementRepository(db)
	s.reviewRepo = repository.NewReviewRepository(db)
	s.statsRepo = repository.NewStatsRepository(db)

	s.notifier = notifications.NewNotifier(redisClient)
	s.hub = notifications.NewHub()

	s.promotionService = service.NewPromotionService(s.productRepo, s.likeRepo, s.notifRepo, s.notifier)
	s.productService = service.NewProductService(s.productRepo, s.categoryRepo, s.isAdminUser)

	s.app = fiber.New(fiber.Config{
		AppName:      "Tomati Market API",
		ErrorHandler: s.errorHandler,
	})

	s.SetupMiddleware()
	s.SetupRoutes()

	return s
}

// App exposes the Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Hub exposes the WebSocket hub so main can start the Redis wiring.
func (s *Server) Hub() *notifications.Hub {
	return s.hub
}

// Notifier exposes the Redis publisher backing real-time notifications.
func (s *Server) Notifier() *notifications.Notifier {
	return s.notifier
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	if fiberErr, ok := err.(*fiber.Error); ok {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}
	return models.RespondWithAppError(c, models.NewInternalError(err))
}

// SetupMiddleware installs the global middleware chain. Order matters:
// recovery first, then request identity, then observability, then policy.
func (s *Server) SetupMiddleware() {
	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(middleware.TracingMiddleware())
	s.app.Use(middleware.ContextMiddleware())

	s.prom = observability.InitHTTPMetrics("tomati-api")
	s.app.Use(s.prom.Middleware)

	s.app.Use(helmet.New())
	s.app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	s.app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
	}))
}

// SetupRoutes registers all HTTP routes.
func (s *Server) SetupRoutes() {
	s.prom.RegisterAt(s.app, "/api/metrics")

	s.app.Get("/health/live", s.Liveness)
	s.app.Get("/health/ready", s.Readiness)

	api := s.app.Group("/api")
	api.Get("/health", s.HealthCheck)

	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 10, time.Minute, "auth"), s.Signup)
	auth.Post("/signin", middleware.RateLimit(s.redis, 10, time.Minute, "auth"), s.Signin)

	api.Get("/categories", s.ListCategories)
	api.Post("/categories", middleware.AuthRequired, s.AdminRequired, s.CreateCategory)

	products := api.Group("/products")
	products.Get("/", middleware.OptionalAuth, s.ListProducts)
	products.Get("/promoted", s.GetPromotedProducts)
	products.Get("/liked", middleware.AuthRequired, s.GetLikedProducts)
	products.Post("/", middleware.AuthRequired, s.CreateProduct)
	products.Get("/:id/liked", middleware.AuthRequired, s.GetLikeStatus)
	products.Post("/:id/like", middleware.AuthRequired, middleware.RateLimit(s.redis, 30, time.Minute, "likes"), s.LikeProduct)
	products.Get("/:id/messages", middleware.AuthRequired, s.ListProductMessages)
	products.Post("/:id/messages", middleware.AuthRequired, s.SendMessage)
	products.Get("/:id/reviews", s.ListProductReviews)
	products.Get("/:id", middleware.OptionalAuth, s.GetProduct)
	products.Put("/:id", middleware.AuthRequired, s.UpdateProduct)
	products.Delete("/:id", middleware.AuthRequired, s.DeleteProduct)

	api.Post("/reviews", middleware.AuthRequired, s.CreateReview)

	messages := api.Group("/messages", middleware.AuthRequired)
	messages.Get("/", s.ListMessages)
	messages.Post("/", s.SendMessage)
	messages.Post("/:id/read", s.MarkMessageRead)

	notifs := api.Group("/notifications", middleware.AuthRequired)
	notifs.Get("/", s.ListNotifications)
	notifs.Get("/unread-count", s.GetUnreadCount)
	notifs.Post("/read-all", s.MarkAllNotificationsRead)
	notifs.Post("/:id/read", s.MarkNotificationRead)

	ads := api.Group("/advertisements")
	ads.Get("/all", middleware.AuthRequired, s.AdminRequired, s.ListAllAdvertisements)
	ads.Get("/", s.ListAdvertisements)
	ads.Post("/", middleware.AuthRequired, s.AdminRequired, s.CreateAdvertisement)
	ads.Post("/:id/impression", s.RecordAdImpression)
	ads.Post("/:id/click", s.RecordAdClick)
	ads.Put("/:id", middleware.AuthRequired, s.AdminRequired, s.UpdateAdvertisement)
	ads.Delete("/:id", middleware.AuthRequired, s.AdminRequired, s.DeleteAdvertisement)

	api.Get("/dashboard/stats", middleware.AuthRequired, s.AdminRequired, s.GetDashboardStats)

	api.Get("/ws", middleware.WebSocketAuthRequired, s.WebSocketUpgrade, s.WebSocketHandler())
}

// AdminRequired allows only users with the admin role past. It must run after
// AuthRequired so the user ID local is set.
func (s *Server) AdminRequired(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}
	if !user.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin access required"})
	}
	return c.Next()
}

func (s *Server) isAdminUser(ctx context.Context, userID string) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

// HealthCheck reports basic process health.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "tomati-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Liveness only answers that the process is up.
func (s *Server) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// Readiness checks the database and Redis before declaring the instance ready
// to receive traffic. Redis is optional, so its failure only degrades status.
func (s *Server) Readiness(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	checks := fiber.Map{}
	healthy := true

	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		checks["database"] = "unreachable"
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if s.redis == nil {
		checks["redis"] = "disabled"
	} else if err := s.redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = "unreachable"
	} else {
		checks["redis"] = "ok"
	}

	status := fiber.StatusOK
	if !healthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"checks": checks})
}

// Start runs the HTTP listener until it fails or is shut down.
func (s *Server) Start() error {
	addr := ":" + s.config.Port
	middleware.Logger.Info("starting server", slog.String("addr", addr), slog.String("env", s.config.Env))
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests, closes the WebSocket hub, and releases
// the database and Redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	middleware.Logger.Info("shutting down server")

	if err := s.app.ShutdownWithContext(ctx); err != nil {
		middleware.Logger.Error("http shutdown failed", slog.String("error", err.Error()))
	}

	if err := s.hub.Shutdown(ctx); err != nil {
		middleware.Logger.Error("hub shutdown failed", slog.String("error", err.Error()))
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			middleware.Logger.Error("database close failed", slog.String("error", err.Error()))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("redis close failed", slog.String("error", err.Error()))
		}
	}
	return nil
}
