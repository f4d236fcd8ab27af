package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	statusUp       = "up"
	statusDown     = "down"
	statusDisabled = "disabled"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db,omitempty"`
	Cache     string    `json:"cache,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	db          *sql.DB
	rdb         *redis.Client
}

// NewHealthHandler reports the service identity plus the reachability of the
// optional database and Redis backends. A nil backend is reported as disabled.
func NewHealthHandler(serviceName, version string, db *sql.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		rdb:         rdb,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
	defer cancel()

	dbStatus := statusDisabled
	if h.db != nil {
		dbStatus = statusUp
		if err := h.db.PingContext(pingCtx); err != nil {
			dbStatus = statusDown
		}
	}

	cacheStatus := statusDisabled
	if h.rdb != nil {
		cacheStatus = statusUp
		if err := h.rdb.Ping(pingCtx).Err(); err != nil {
			cacheStatus = statusDown
		}
	}

	// the cache is optional, so only the database decides overall health
	status, code := "healthy", http.StatusOK
	if dbStatus == statusDown {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        dbStatus,
		Cache:     cacheStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
