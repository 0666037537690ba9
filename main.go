package main

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/velure-shop/velure-backend-go/config"
	"github.com/velure-shop/velure-backend-go/database"
	customMiddleware "github.com/velure-shop/velure-backend-go/middleware"
	"github.com/velure-shop/velure-backend-go/models"
	"github.com/velure-shop/velure-backend-go/routes"
)

func main() {
	logger := hclog.New(&hclog.LoggerOptions{Name: "velure"})

	// Load environment variables
	config.LoadEnv()

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = models.NewValidator()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(customMiddleware.Metrics())

	// Connect to MongoDB
	if err := database.ConnectDB(); err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(ctx); err != nil {
		logger.Error("Failed to ensure indexes", "error", err)
		return
	}

	// Setup routes
	routes.SetupRoutes(e)

	// Start the server
	port := config.GetEnv("PORT", "3000")
	logger.Info("Server starting", "port", port)
	e.Logger.Fatal(e.Start(":" + port))
}
