package main

import (
	"net/http"
	"os"

	"school-meals-api/config"
	"school-meals-api/middleware"
	"school-meals-api/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()

	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database and seed first-run accounts
	config.InitDB(config.DBPath())
	config.SeedDefaultAccounts()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "School Meal Delivery Coordination API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the School Meal Delivery Coordination API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"admin", "cooker", "delivery"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	port := config.Port()
	config.Log.WithField("port", port).Info("Server starting")
	if err := r.Run(":" + port); err != nil {
		config.Log.WithError(err).Fatal("Failed to start server")
	}
}
