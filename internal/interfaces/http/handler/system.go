package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	version   string
	db        Pinger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(version string, db Pinger) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		version:   version,
		db:        db,
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/system")
	g.GET("/info", h.GetInfo)
	g.GET("/health", h.GetHealth)
}

// InfoResponse represents the system information response
type InfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetInfo returns basic service information
func (h *SystemHandler) GetInfo(c *gin.Context) {
	h.Success(c, InfoResponse{
		Name:      "Fiscal Cap Tracking API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// GetHealth reports readiness. The service is unhealthy when the database
// is unreachable.
func (h *SystemHandler) GetHealth(c *gin.Context) {
	resp := HealthResponse{Status: "ok", Database: "up"}

	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			resp.Status = "degraded"
			resp.Database = "down"
			c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(resp))
			return
		}
	}

	h.Success(c, resp)
}
