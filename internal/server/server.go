package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/foodgram-project/backend/config"
	"github.com/foodgram-project/backend/internal/api"
	"github.com/foodgram-project/backend/internal/database"
	"github.com/foodgram-project/backend/internal/router"
	"github.com/foodgram-project/backend/internal/service"
)

// Server wires services, handlers and the HTTP listener together.
type Server struct {
	router *gin.Engine
	config *config.Config
	http   *http.Server
}

// New builds the full service graph on top of an open database connection.
// redisClient may be nil; rate limiting is then disabled.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, storage service.MediaStorage) *Server {
	imageService := service.NewImageService(storage)
	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db, imageService, cfg.MinCookingTime, cfg.MinIngredientAmount)
	listService := service.NewListService(db)
	subscriptionService := service.NewSubscriptionService(db)
	shoppingListService := service.NewShoppingListService(db)
	catalogService := service.NewCatalogService(db)

	handlers := router.Handlers{
		Auth:    api.NewAuthHandler(authService),
		User:    api.NewUserHandler(authService, subscriptionService, imageService),
		Recipe:  api.NewRecipeHandler(recipeService, listService, shoppingListService, authService),
		Catalog: api.NewCatalogHandler(catalogService),
	}

	engine := router.SetupRouter(cfg, handlers, redisClient)
	engine.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.HealthCheck(ctx, cfg); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Server{
		router: engine,
		config: cfg,
	}
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.config.ServerHost + ":" + s.config.ServerPort,
		Handler: s.router,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
