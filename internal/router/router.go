package router

import (
	"log"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/sajidhasan/forumhub/backend/internal/forum"
	"github.com/sajidhasan/forumhub/backend/internal/handlers"
	"github.com/sajidhasan/forumhub/backend/internal/middleware"
	"github.com/sajidhasan/forumhub/backend/internal/models"
	"github.com/sajidhasan/forumhub/backend/internal/repositories"
	"github.com/sajidhasan/forumhub/backend/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) error {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check and welcome - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to the forum API!"})
	})

	// Uploaded images are served statically
	e.Static("/uploads", cfg.UploadDir)

	// --- Repositories and the forum core ---
	mongoDB := mgClient.Database(cfg.MongoDB)
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	commentRepo := repositories.NewMongoCommentRepository(mongoDB)
	forumService := forum.NewService(postRepo, commentRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	postHandler := handlers.NewPostHandler(forumService)
	commentHandler := handlers.NewCommentHandler(forumService)
	uploadHandler, err := handlers.NewUploadHandler(cfg.UploadDir)
	if err != nil {
		return err
	}

	// --- Unprotected routes ---
	authGroup := e.Group("/api/auth")
	authHandler.RegisterAuthRoutes(authGroup)

	public := e.Group("/api")
	postHandler.RegisterPublicRoutes(public)
	commentHandler.RegisterPublicRoutes(public)
	log.Println("Public routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	authHandler.RegisterProtectedRoutes(api)
	postHandler.RegisterPostRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	uploadHandler.RegisterUploadRoutes(api)
	log.Println("Authenticated routes configured.")

	// --- Admin routes (JWT + admin role) ---
	admin := e.Group("/api")
	admin.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.RequireAdmin())

	postHandler.RegisterAdminRoutes(admin)
	commentHandler.RegisterAdminRoutes(admin)
	log.Println("Admin routes configured.")

	return nil
}
