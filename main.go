package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/playmaker86/activity-booking/internal/config"
	"github.com/playmaker86/activity-booking/internal/container"
	"github.com/playmaker86/activity-booking/internal/handler"
	"github.com/playmaker86/activity-booking/internal/middleware"
	"github.com/playmaker86/activity-booking/internal/repository"
	"github.com/playmaker86/activity-booking/internal/service"
	"github.com/playmaker86/activity-booking/internal/service/auth"
	"github.com/playmaker86/activity-booking/internal/service/wechat"
	"github.com/playmaker86/activity-booking/pkg/database"
	"github.com/playmaker86/activity-booking/pkg/logger"
	"github.com/playmaker86/activity-booking/pkg/redis"
)

// Resources holds all resources that need cleanup
type Resources struct {
	db          *database.PostgresDB
	redisClient *redis.Client
	server      *http.Server
	log         *logger.Logger
	mu          sync.Mutex
	closed      bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error

	r.log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first to stop accepting new requests
	if r.server != nil {
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			r.log.WithError(err).Error("Failed to close Redis connection")
			errs = append(errs, fmt.Errorf("Redis close: %w", err))
		} else {
			r.log.Info("Redis connection closed")
		}
	}

	if r.db != nil {
		r.db.Close()
		r.log.Info("Database connection pool closed")
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errs), errs)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting activity-booking server")

	// Create dependency injection container
	c, err := container.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	// Initialize database connection
	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Wire repositories and services
	activityRepo := repository.NewActivityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	userRepo := repository.NewUserRepository(db)

	cacheService := service.NewCacheService(c.GetRedisClient(), log.Logger)
	activityService := service.NewActivityService(activityRepo, cacheService, log.Logger)
	bookingService := service.NewBookingService(bookingRepo, cacheService, log.Logger)
	userService := service.NewUserService(userRepo, cacheService, log.Logger)

	wechatService := wechat.NewService(cfg.WeChatAppID, cfg.WeChatSecret, log)
	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry, wechatService, userService, log)

	c.SetServices(&service.Services{
		Auth:   authService,
		WeChat: wechatService,
	})

	// Setup router
	router := setupRouter(c, db, activityService, bookingService, userService)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	resources := &Resources{
		db:          db,
		redisClient: c.GetRedisClient(),
		server:      server,
		log:         log,
	}

	// Setup graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	// Wait for interrupt signal or server error
	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(c *container.Container, db *database.PostgresDB,
	activityService *service.ActivityService,
	bookingService *service.BookingService,
	userService *service.UserService) *chi.Mux {

	cfg := c.GetConfig()
	log := c.GetLogger()
	authService := c.GetAuthService()

	r := chi.NewRouter()

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.AllowedOrigins

	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Create handlers
	healthHandler := handler.NewHealthHandler(c, db)
	authHandler := handler.NewAuthHandler(c)
	activityHandler := handler.NewActivityHandler(activityService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	userHandler := handler.NewUserHandler(userService)

	// Health check (no auth required)
	r.Get("/health", healthHandler.Check)

	// Static assets (activity cover images)
	if cfg.StaticDir != "" {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.Get("/static/*", fileServer.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/wx-login", authHandler.WxLogin)
		activityHandler.RegisterPublicRoutes(r)

		// Protected endpoints (require authentication)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authService, log))

			activityHandler.RegisterProtectedRoutes(r)
			bookingHandler.RegisterRoutes(r)
			userHandler.RegisterRoutes(r)
		})
	})

	return r
}
