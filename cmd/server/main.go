package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"student-lens/internal/config"
	"student-lens/internal/handler"
	"student-lens/internal/infrastructure/database"
	"student-lens/internal/logger"
	"student-lens/internal/metrics"
	"student-lens/internal/middleware"
	"student-lens/internal/repository"
	"student-lens/internal/service"
	"student-lens/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}

	// Connect to database
	pool, err := database.NewPostgres(context.Background(), database.PoolConfig{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		Database:          cfg.DBName,
		SSLMode:           cfg.DBSSLMode,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			slog.String("error", err.Error()))
	}
	defer pool.Close()

	// Start database pool metrics collector
	poolStatsCollector := metrics.NewPoolStatsCollector(pool)
	poolStatsCollector.Start(15 * time.Second)
	defer poolStatsCollector.Stop()

	// Initialize repositories
	userRepo := repository.NewPostgresUserRepository(pool)
	articleRepo := repository.NewPostgresArticleRepository(pool)
	applicationRepo := repository.NewPostgresApplicationRepository(pool)

	// Initialize validator
	v := validator.NewValidator()

	// Initialize services
	workflowService := service.NewWorkflowService(userRepo, articleRepo, v)
	applicationService := service.NewApplicationService(userRepo, applicationRepo, v)
	userService := service.NewUserService(userRepo, v)

	// Initialize handlers
	articleHandler := handler.NewArticleHandler(workflowService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(pool)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(gin.Logger())
	router.Use(middleware.Identity(userRepo))
	router.Use(middleware.ViewerID(cfg.ViewerCookieName, cfg.ViewerCookieMaxAge))

	// Health and metrics endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id/role", userHandler.SetRole)
		}

		articles := v1.Group("/articles")
		{
			articles.POST("", articleHandler.CreateArticle)
			articles.GET("", articleHandler.ListArticles)
			articles.GET("/pending", articleHandler.ListPending)
			articles.GET("/queue", articleHandler.GetQueues)
			articles.GET("/:id", articleHandler.GetArticle)
			articles.PUT("/:id", articleHandler.UpdateArticle)
			articles.POST("/:id/transitions", articleHandler.TransitionArticle)
			articles.DELETE("/:id", articleHandler.DeleteArticle)
		}

		applications := v1.Group("/applications")
		{
			applications.POST("", applicationHandler.CreateApplication)
			applications.GET("", applicationHandler.ListApplications)
			applications.POST("/:id/accept", applicationHandler.AcceptApplication)
			applications.POST("/:id/reject", applicationHandler.RejectApplication)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	// Shutdown HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}
