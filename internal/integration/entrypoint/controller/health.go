package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	redisHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker, redisHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		redisHealthChecker: redisHealthChecker,
	}
}

func connection(check func() bool) string {
	if check != nil && check() {
		return "connected"
	}
	return "disconnected"
}

// Check handles GET /health requests. Status is "degraded" when a dependency is down.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  connection(h.dbHealthChecker),
		Redis:     connection(h.redisHealthChecker),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if response.Database != "connected" || response.Redis != "connected" {
		response.Status = "degraded"
	}

	c.JSON(http.StatusOK, response)
}
