package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"anubhav/internal/ai"
	"anubhav/internal/cache"
	"anubhav/internal/config"
	"anubhav/internal/database"
	"anubhav/internal/external"
	"anubhav/internal/handlers"
	"anubhav/internal/logger"
	"anubhav/internal/messaging"
	"anubhav/internal/metrics"
	"anubhav/internal/middleware"
	"anubhav/internal/repository"
	"anubhav/internal/search"
	"anubhav/internal/seed"
	"anubhav/internal/service"

	"github.com/gin-gonic/gin"
)

// Server wires the HTTP API together
type Server struct {
	router      *gin.Engine
	config      *config.Config
	db          *database.DB
	nats        *messaging.NATSClient
	redisClient *cache.RedisClient
	services    *service.Services
	repos       *repository.Repositories
}

// NewServer builds a fully wired server or dies trying. Postgres and NATS
// are hard dependencies; Redis, Elasticsearch and Gemini are optional and
// their absence degrades the relevant feature instead of failing startup.
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Get().Warn("Redis unavailable, favorites and prefill disabled", "error", err)
		redisClient = nil
	}

	esClient, err := search.NewElasticsearchClient(config.LoadElasticsearchConfig())
	if err != nil {
		logger.Get().Warn("Elasticsearch unavailable, falling back to substring search", "error", err)
		esClient = nil
	}

	// The generator stays nil without an API key; the recommendation
	// service answers with the canned fallback in that mode.
	var generator service.Generator
	if cfg.Gemini.APIKey != "" {
		geminiClient, err := ai.NewClient(context.Background(), cfg.Gemini)
		if err != nil {
			logger.Get().Warn("Gemini client init failed, recommendations degraded", "error", err)
		} else {
			generator = geminiClient
		}
	} else {
		logger.Get().Info("GEMINI_API_KEY not set, recommendations run in fallback mode")
	}

	whatsapp := external.NewWhatsAppLink(cfg.WhatsApp)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, natsClient, redisClient, esClient, generator, whatsapp, seed.Experiences())

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(metrics.Middleware())

	server := &Server{
		router:      router,
		config:      cfg,
		db:          db,
		nats:        natsClient,
		redisClient: redisClient,
		services:    services,
		repos:       repos,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.redisClient, s.repos.Users, s.config.AdminEmail)

	// Registration is the only API route outside Basic Auth
	s.router.POST("/api/users", h.RegisterUser)

	api := s.router.Group("/api")
	api.Use(middleware.BasicAuth(s.repos.Users))
	{
		experiences := api.Group("/experiences")
		{
			experiences.GET("", h.ListExperiences)
			experiences.GET("/:id", h.GetExperience)
			experiences.POST("", h.SaveExperience)
			experiences.DELETE("/:id", h.DeleteExperience)
		}

		api.POST("/recommendations", h.Recommend)

		bookings := api.Group("/bookings")
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("", h.ListBookings)
			bookings.PATCH("/rate", h.RateBooking)
		}

		favorites := api.Group("/favorites")
		{
			favorites.GET("", h.ListFavorites)
			favorites.PUT("/:id", h.AddFavorite)
			favorites.DELETE("/:id", h.RemoveFavorite)
		}

		profile := api.Group("/profile")
		{
			profile.GET("/prefill", h.GetPrefill)
			profile.GET("/flags", h.GetUIFlags)
			profile.PUT("/flags/:flag", h.SetUIFlag)
			profile.GET("/notifications", h.GetNotificationPrefs)
			profile.PUT("/notifications", h.UpdateNotificationPrefs)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/experiences", h.SaveExperience)
			admin.DELETE("/experiences/:id", h.AdminDeleteExperience)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", metrics.Handler())
}

func (s *Server) healthCheck(c *gin.Context) {
	check := s.db.Health(c.Request.Context())

	status := http.StatusOK
	if check.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   check.Status,
		"service":  "anubhav-api",
		"database": check,
	})
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter exposes the router for tests
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes long-lived connections
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			log.Printf("Error closing NATS connection: %v", err)
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
			return err
		}
	}

	return nil
}
