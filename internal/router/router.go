package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/foodgram-project/backend/config"
	"github.com/foodgram-project/backend/internal/api"
	"github.com/foodgram-project/backend/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *api.AuthHandler
	User    *api.UserHandler
	Recipe  *api.RecipeHandler
	Catalog *api.CatalogHandler
}

// SetupRouter configures the application routes
func SetupRouter(cfg *config.Config, handlers Handlers, redisClient *redis.Client) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	// Short links and locally stored media live outside the API prefix.
	handlers.Recipe.RegisterShortLinkRoutes(router)
	if cfg.MediaBackend == "local" {
		router.Static(cfg.MediaBaseURL, cfg.MediaDir)
	}

	var writeLimiters []gin.HandlerFunc
	if redisClient != nil {
		limiter := middleware.NewWriteRateLimiter(redisClient)
		writeLimiters = append(writeLimiters, limiter.RateLimitMiddleware())
	}

	v1 := router.Group("/api/v1")
	handlers.Auth.RegisterRoutes(v1)
	handlers.User.RegisterRoutes(v1)
	handlers.Catalog.RegisterRoutes(v1)
	handlers.Recipe.RegisterRoutes(v1, writeLimiters...)

	return router
}
