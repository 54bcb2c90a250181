package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/router"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/pkg/config"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/pkg/firebase"
	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Initialize database connections (loads .env first)
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	cfg := config.Load()

	// Firebase login is optional; without credentials the route reports 503
	var authClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		authClient = firebaseApp.AuthClient
	} else {
		log.Println("No Firebase credentials configured, Firebase login disabled.")
	}

	// Create Echo instance
	e := echo.New()
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, authClient)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
