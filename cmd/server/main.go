package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/nomatrix/internal/config"
	"github.com/localnerve/nomatrix/internal/database"
	"github.com/localnerve/nomatrix/internal/events"
	"github.com/localnerve/nomatrix/internal/handlers"
	"github.com/localnerve/nomatrix/internal/middleware"
	"github.com/localnerve/nomatrix/internal/services"

	_ "github.com/localnerve/nomatrix/docs/api" // Swagger docs
)

// @title Nomatrix API
// @version 1.0.0
// @description Collaborative nested object matrix relationship service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/nomatrix
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Change event publisher; without NATS_URL events stay local only
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NatsURL != "" {
		natsPub, err := events.NewNatsPublisher(cfg.NatsURL)
		if err != nil {
			log.Fatalf("Failed to connect to NATS at %s: %v", cfg.NatsURL, err)
		}
		defer natsPub.Close()
		publisher = natsPub
	} else {
		log.Println("NATS_URL not set, change events will not be published")
	}

	collab := services.NewCollab(db, publisher)
	collab.LockTimeout = cfg.LockTimeout
	collab.PresenceIdleLimit = cfg.PresenceIdleLimit

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("nomatrix")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health endpoint (outside /api, no auth, no version header)
	app.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	matrixHandler := &handlers.MatrixHandler{Collab: collab}
	relHandler := &handlers.RelationshipHandler{Collab: collab}
	lockHandler := &handlers.LockHandler{Collab: collab}
	presenceHandler := &handlers.PresenceHandler{Collab: collab}
	maintenanceHandler := &handlers.MaintenanceHandler{Collab: collab}

	// Project routes
	projects := api.Group("/projects/:project")

	// Reads are public within the session scope
	projects.Get("/matrix", matrixHandler.GetMatrix)
	projects.Get("/relationships", relHandler.ListRelationships)
	projects.Get("/relationships/:id", relHandler.GetRelationship)
	projects.Post("/relationships/search", relHandler.SearchRelationships)
	projects.Get("/locks", lockHandler.GetLockState)
	projects.Get("/presence", presenceHandler.ListPresence)
	projects.Get("/collaboration", presenceHandler.Collaboration)

	// Mutations require an authenticated user
	projects.Post("/relationships", middleware.AuthUser(), relHandler.CreateRelationship)
	projects.Put("/relationships/:id", middleware.AuthUser(), relHandler.UpdateRelationship)
	projects.Delete("/relationships/:id", middleware.AuthUser(), relHandler.DeleteRelationship)
	projects.Post("/locks", middleware.AuthUser(), lockHandler.AcquireLock)
	projects.Delete("/locks", middleware.AuthUser(), lockHandler.ReleaseLock)
	projects.Post("/presence", middleware.AuthUser(), presenceHandler.Heartbeat)

	// Admin-only maintenance routes
	api.Post("/maintenance/cleanup", middleware.AuthAdmin(), maintenanceHandler.Cleanup)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	log.Printf("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Check for lock conflicts
	lockConflict := false
	if code == fiber.StatusConflict || (len(message) >= 8 && message[:8] == "E_LOCKED") {
		lockConflict = true
		errorType = "lock"
		code = fiber.StatusConflict
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       code,
		"message":      message,
		"ok":           false,
		"lockConflict": lockConflict,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"url":          c.OriginalURL(),
		"type":         errorType,
	})
}
