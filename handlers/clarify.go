package handlers

import (
	"net/http"

	"mechanicbook/models"
	"mechanicbook/services/clarify"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ClarifyHandler struct {
	Service clarify.ClarifyService
}

func NewClarifyHandler(svc clarify.ClarifyService) *ClarifyHandler {
	return &ClarifyHandler{Service: svc}
}

// ClarifyQuestionsHandler handles POST /api/clarify.
func (h *ClarifyHandler) ClarifyQuestionsHandler(c *gin.Context) {
	var req models.ClarifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	resp, err := h.Service.Clarify(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Error("Clarify failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
