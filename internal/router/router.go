package router

import (
	"context"
	"log"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/handlers"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/middleware"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/models"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/repositories"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/services"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware and the error shape.
// Every error response body is {"error": message}.
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		message := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			}
		}
		if c.Response().Committed {
			return
		}
		if jsonErr := c.JSON(code, echo.Map{"error": message}); jsonErr != nil {
			log.Printf("error handler: %v", jsonErr)
		}
	}

	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// firebaseAuthClient may be nil; the Firebase login route then reports 503.
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	if err := pgdb.AutoMigrate(&models.Product{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories and services ---
	mongoDB := mgClient.Database("angleratlas")
	userRepo := repositories.NewMongoUserRepository(mongoDB)
	catchRepo := repositories.NewMongoCatchRepository(mongoDB)
	productRepo := repositories.NewPostgresProductRepository(pgdb)

	if err := catchRepo.EnsureIndexes(context.Background()); err != nil {
		log.Printf("Failed to ensure catch indexes: %v", err)
	}
	if err := productRepo.Seed(); err != nil {
		log.Printf("Failed to seed product catalog: %v", err)
	}

	socialService := services.NewSocialService(userRepo)
	leaderboardService := services.NewLeaderboardService(userRepo, catchRepo)

	// --- Unprotected routes ---
	api := e.Group("/api")

	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(api.Group("/auth"))
	log.Println("Auth routes configured.")

	userHandler := handlers.NewUserHandler(userRepo, socialService)
	userHandler.RegisterPublicRoutes(api)

	catchHandler := handlers.NewCatchHandler(catchRepo, userRepo)
	catchHandler.RegisterPublicRoutes(api)

	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	leaderboardHandler.RegisterLeaderboardRoutes(api)

	storeHandler := handlers.NewStoreHandler(productRepo)
	storeHandler.RegisterStoreRoutes(api)

	// --- Protected routes (require JWT authentication) ---
	protected := e.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	userHandler.RegisterProtectedRoutes(protected)
	catchHandler.RegisterProtectedRoutes(protected)

	log.Println("All routes configured.")
}
