package web

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/termcastio/termcast-server/internal/metrics"
	"github.com/termcastio/termcast-server/internal/session"
	"github.com/termcastio/termcast-server/internal/storage"
	"github.com/termcastio/termcast-server/pkg/config"
	"github.com/termcastio/termcast-server/pkg/middleware"
)

// NewRouter builds the browser-facing router: REST API, viewer
// WebSocket, optional Prometheus endpoint and static assets.
func NewRouter(cfg *config.Config, registry *session.Registry, history storage.History, hub *Hub, logger *zap.Logger) *gin.Engine {
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, logger)))
	}

	h := NewHandlers(cfg, registry, history, hub, logger)

	api := router.Group("/api")
	{
		api.GET("/status", h.Status)
		api.GET("/version", h.GetVersion)
		api.GET("/sessions", h.ListSessions)
		api.GET("/sessions/history", h.History)
		api.GET("/sessions/:name", h.GetSession)
		api.GET("/s/:name", hub.HandleSession)
	}

	if cfg.Metrics.Enabled {
		metrics.Register()
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	registerStatic(router, cfg.Server.WebRoot)

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	return c
}
