package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/rifat-hasan/socialine/backend/internal/router"
	"github.com/rifat-hasan/socialine/backend/pkg/config"
	"github.com/rifat-hasan/socialine/backend/pkg/logger"
	"github.com/rifat-hasan/socialine/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize database connections
	db, err := config.InitDB(cfg, zlog)
	if err != nil {
		zlog.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	if err := db.EnsureIndexes(context.Background(), cfg.MongoDBName); err != nil {
		zlog.Fatalf("Failed to create MongoDB indexes: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, db.Mongo.Database(cfg.MongoDBName), cfg.JWTSecret, zlog); err != nil {
		zlog.Fatalf("Failed to set up routes: %v", err)
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
