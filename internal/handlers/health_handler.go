package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	feeSource string
}

func NewHealthHandler(feeSource string) *HealthHandler {
	return &HealthHandler{feeSource: feeSource}
}

// @Summary Health Check
// @Description Checks if the API is running
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"service":    "edufees-api",
		"version":    "1.0.0",
		"fee_source": h.feeSource,
	})
}
