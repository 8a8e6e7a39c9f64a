package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/wonny/mandacaru-broker/internal/api/handlers"
	"github.com/wonny/mandacaru-broker/internal/api/middleware"
	"github.com/wonny/mandacaru-broker/internal/api/response"
	"github.com/wonny/mandacaru-broker/internal/pkg/config"
	"github.com/wonny/mandacaru-broker/internal/pkg/logger"
	stockservice "github.com/wonny/mandacaru-broker/internal/service/stock"
)

// Dependencies are the collaborators the router wires into handlers
type Dependencies struct {
	StockService *stockservice.Service
	Database     handlers.DatabaseChecker // nil with the memory driver
	Redis        *redis.Client            // nil when caching is disabled
}

// Router holds all dependencies for API routing
type Router struct {
	engine        *gin.Engine
	config        *config.Config
	healthHandler *handlers.HealthHandler
	stockHandler  *handlers.StockHandler
}

// NewRouter creates a new API router with all dependencies
func NewRouter(cfg *config.Config, deps Dependencies, version string) *Router {
	gin.SetMode(cfg.Server.Mode)

	router := &Router{
		engine:        gin.New(),
		config:        cfg,
		healthHandler: handlers.NewHealthHandler(deps.Database, deps.Redis, version),
		stockHandler:  handlers.NewStockHandler(deps.StockService),
	}

	router.setupMiddlewares()
	router.setupRoutes()

	return router
}

// setupMiddlewares configures all global middlewares
func (r *Router) setupMiddlewares() {
	// Recovery middleware (must be first)
	r.engine.Use(middleware.Recovery())

	r.engine.Use(middleware.RequestID())

	loggingCfg := middleware.LoggingConfig{
		SkipPaths: []string{"/health", "/health/ready"},
	}
	if r.config.Logging.FileEnabled {
		accessLogger := logger.NewAccessLogger(
			r.config.Logging.FilePath,
			r.config.Logging.RotationSize,
			r.config.Logging.RetentionDays,
		)
		loggingCfg.AccessLogger = &accessLogger
	}
	r.engine.Use(middleware.Logging(loggingCfg))

	r.engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Health checks (no /api prefix)
	r.engine.GET("/health", r.healthHandler.Health)
	r.engine.GET("/health/ready", r.healthHandler.Ready)

	api := r.engine.Group("/api")
	{
		api.GET("/health/detailed", r.healthHandler.Detailed)

		stocks := api.Group("/stocks")
		{
			stocks.GET("", r.stockHandler.List)
			stocks.POST("", r.stockHandler.Create)
			stocks.GET("/:id", r.stockHandler.Get)
			stocks.PUT("/:id", r.stockHandler.Update)
			stocks.PATCH("/:id/price", r.stockHandler.AdjustPrice)
			stocks.DELETE("/:id", r.stockHandler.Delete)
		}
	}

	r.engine.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
