package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const serviceName = "foodiespot"

type HealthHandler struct {
	version string
}

func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
		"version": h.version,
	})
}
