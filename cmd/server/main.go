package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/agrohold/kanban-api/internal/config"
	"github.com/agrohold/kanban-api/internal/database"
	"github.com/agrohold/kanban-api/internal/handlers"
	"github.com/agrohold/kanban-api/internal/middleware"
	"github.com/agrohold/kanban-api/internal/repository"
	"github.com/agrohold/kanban-api/internal/services"
	"github.com/agrohold/kanban-api/internal/token"
)

const (
	tokenTTL = 24 * time.Hour

	// 100 requests per 15 minutes per client IP
	rateLimitWindow   = 15 * time.Minute
	rateLimitRequests = 100

	maxBodyBytes    = 10 << 20
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load configuration; refuses to start without a signing secret
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Token manager holds the signing secret for the process lifetime
	tokens, err := token.NewManager(cfg.JWTSecret, tokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	// Initialize repositories
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	unitRepo := repository.NewBusinessUnitRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokens)
	taskService := services.NewTaskService(taskRepo, userRepo)
	userService := services.NewUserService(userRepo)
	unitService := services.NewBusinessUnitService(unitRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	userHandler := handlers.NewUserHandler(userService)
	unitHandler := handlers.NewBusinessUnitHandler(unitService)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	corsConfig := cors.DefaultConfig()
	if cfg.FrontendURL == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.FrontendURL}
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.RateLimit(
		float64(rateLimitRequests)/rateLimitWindow.Seconds(),
		rateLimitRequests,
	))

	// Health check endpoint
	r.GET("/health", handlers.Health)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/auth/login", authHandler.Login)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.RequireAuth(tokens))
		{
			protected.GET("/users", userHandler.ListUsers)
			protected.GET("/users/me", authHandler.GetCurrentUser)

			protected.GET("/tasks", taskHandler.ListTasks)
			protected.POST("/tasks", taskHandler.CreateTask)
			protected.GET("/tasks/:id", taskHandler.GetTask)
			protected.PUT("/tasks/:id", taskHandler.UpdateTask)
			protected.DELETE("/tasks/:id", taskHandler.DeleteTask)

			protected.GET("/business-units", unitHandler.ListBusinessUnits)
		}
	}

	// Unmatched routes
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Kanban API server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("Shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
