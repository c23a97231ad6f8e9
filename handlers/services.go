package handlers

import (
	"net/http"

	"mechanicbook/services/catalog"
	"mechanicbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves the service catalogue.
type CatalogHandler struct {
	Source catalog.CatalogSource
}

func NewCatalogHandler(src catalog.CatalogSource) *CatalogHandler {
	return &CatalogHandler{Source: src}
}

// GetCatalogHandler handles GET /api/catalog.
func (h *CatalogHandler) GetCatalogHandler(c *gin.Context) {
	cat, err := h.Source.Catalog(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to load catalogue", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load services right now."})
		return
	}
	c.JSON(http.StatusOK, cat)
}

// HealthHandler reports the latest backend health snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.StoreOK {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": statusWord(status.StoreOK), "checks": status})
}

func statusWord(ok bool) string {
	if ok {
		return "ok"
	}
	return "degraded"
}
