package web

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/termcastio/termcast-server/internal/session"
	"github.com/termcastio/termcast-server/internal/storage"
	"github.com/termcastio/termcast-server/pkg/config"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// Handlers aggregates the REST handlers of the viewer API
type Handlers struct {
	cfg      *config.Config
	registry *session.Registry
	history  storage.History
	hub      *Hub
	logger   *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(cfg *config.Config, registry *session.Registry, history storage.History, hub *Hub, logger *zap.Logger) *Handlers {
	return &Handlers{
		cfg:      cfg,
		registry: registry,
		history:  history,
		hub:      hub,
		logger:   logger.Named("handlers"),
	}
}

// Status handles the /api/status endpoint
func (h *Handlers) Status(c *gin.Context) {
	c.JSON(200, StatusResponse{
		Status:     "ok",
		Service:    "termcast-server",
		Version:    Version,
		APIVersion: CurrentAPIVersion,
		Sessions:   h.registry.Len(),
		Viewers:    h.hub.ClientCount(),
	})
}

// GetVersion handles the /api/version endpoint
func (h *Handlers) GetVersion(c *gin.Context) {
	c.JSON(200, gin.H{
		"version":     Version,
		"api_version": CurrentAPIVersion,
	})
}

// ListSessions handles the /api/sessions endpoint. Names are the only
// secret guarding a session, so listings are the operator's concern;
// the endpoint exists for dashboards on trusted deployments.
func (h *Handlers) ListSessions(c *gin.Context) {
	c.JSON(200, gin.H{"sessions": h.registry.List()})
}

// GetSession handles the /api/sessions/:name endpoint, used by the
// viewer page to probe a session before upgrading to WebSocket.
func (h *Handlers) GetSession(c *gin.Context) {
	sess, err := h.registry.Get(c.Param("name"))
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(404, gin.H{"error": "session not found"})
			return
		}
		h.logger.Error("Failed to look up session", zap.Error(err))
		c.JSON(500, gin.H{"error": "session lookup failed"})
		return
	}

	c.JSON(200, gin.H{
		"name":       sess.Name(),
		"created_at": sess.CreatedAt(),
		"shells":     sess.Shells(),
		"viewers":    sess.Viewers(),
	})
}

// History handles the /api/sessions/history endpoint: recently finished
// sessions, newest first. The limit query parameter caps the page size.
func (h *Handlers) History(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(400, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	recs, err := h.history.ListRecords(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list history records", zap.Error(err))
		c.JSON(500, gin.H{"error": "history unavailable"})
		return
	}
	if recs == nil {
		recs = []session.Record{}
	}
	c.JSON(200, gin.H{"records": recs})
}
