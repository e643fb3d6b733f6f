package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler exposes health and readiness endpoints
type SystemHandler struct {
	db        Pinger
	appName   string
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger, appName string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		appName:   appName,
		startedAt: time.Now(),
	}
}

// RegisterRoutes registers the health endpoints on the engine root
func (h *SystemHandler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/health", h.Health)
	engine.GET("/ready", h.Ready)
}

// Health reports liveness
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"app":    h.appName,
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Ready reports readiness, checking the database connection
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"reason": "database unreachable",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
