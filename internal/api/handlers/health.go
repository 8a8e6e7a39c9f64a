package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/wonny/mandacaru-broker/internal/api/response"
	"github.com/wonny/mandacaru-broker/internal/infra/database/postgres"
)

// DatabaseChecker reports database health
type DatabaseChecker interface {
	Health(ctx context.Context) *postgres.HealthStatus
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db        DatabaseChecker // nil with the memory driver
	redis     *redis.Client   // nil when caching is disabled
	startTime time.Time
	version   string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db DatabaseChecker, redisClient *redis.Client, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		redis:     redisClient,
		startTime: time.Now(),
		version:   version,
	}
}

// SimpleHealthResponse represents a simple health check response
type SimpleHealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadyResponse represents a readiness check response
type ReadyResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Message   string            `json:"message,omitempty"`
}

// DetailedHealthResponse represents detailed health information
type DetailedHealthResponse struct {
	Status        string                     `json:"status"`
	Version       string                     `json:"version"`
	UptimeSeconds int64                      `json:"uptime_seconds"`
	Timestamp     time.Time                  `json:"timestamp"`
	Components    map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health status of a component
type ComponentHealth struct {
	Status       string                 `json:"status"`
	ResponseTime string                 `json:"response_time"`
	Details      map[string]interface{} `json:"details,omitempty"`
	Message      string                 `json:"message,omitempty"`
}

// Health returns simple liveness check
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, SimpleHealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

// Ready returns readiness check with dependency checks
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()
	checks := make(map[string]string)
	allReady := true
	message := ""

	if h.db != nil {
		if h.db.Health(ctx).Status == postgres.StatusUnhealthy {
			checks["database"] = "error"
			allReady = false
			message = "Database connection failed"
		} else {
			checks["database"] = "ok"
		}
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "error"
			allReady = false
			if message == "" {
				message = "Redis connection failed"
			}
		} else {
			checks["redis"] = "ok"
		}
	}

	status := "ready"
	statusCode := http.StatusOK
	if !allReady {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, ReadyResponse{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
		Message:   message,
	})
}

// Detailed returns detailed system health information
// GET /api/health/detailed
func (h *HealthHandler) Detailed(c *gin.Context) {
	ctx := c.Request.Context()
	components := make(map[string]ComponentHealth)
	overall := postgres.StatusHealthy

	if h.db != nil {
		dbHealth := h.db.Health(ctx)
		components["database"] = ComponentHealth{
			Status:       dbHealth.Status,
			ResponseTime: dbHealth.ResponseTime,
			Message:      dbHealth.Error,
			Details: map[string]interface{}{
				"active_conns": dbHealth.ActiveConns,
				"idle_conns":   dbHealth.IdleConns,
				"total_conns":  dbHealth.TotalConns,
				"max_conns":    dbHealth.MaxConns,
			},
		}
		overall = worse(overall, dbHealth.Status)
	}

	if h.redis != nil {
		start := time.Now()
		component := ComponentHealth{Status: postgres.StatusHealthy}
		if err := h.redis.Ping(ctx).Err(); err != nil {
			component.Status = postgres.StatusUnhealthy
			component.Message = err.Error()
		}
		component.ResponseTime = time.Since(start).String()
		components["redis"] = component
		overall = worse(overall, component.Status)
	}

	response.Success(c, DetailedHealthResponse{
		Status:        overall,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Timestamp:     time.Now(),
		Components:    components,
	})
}

func worse(current, next string) string {
	if current == postgres.StatusUnhealthy || next == postgres.StatusUnhealthy {
		return postgres.StatusUnhealthy
	}
	if current == postgres.StatusDegraded || next == postgres.StatusDegraded {
		return postgres.StatusDegraded
	}
	return postgres.StatusHealthy
}
