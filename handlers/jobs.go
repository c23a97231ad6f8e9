// File: mechanicbook/handlers/jobs.go
package handlers

import (
	"errors"
	"net/http"

	"mechanicbook/models"
	"mechanicbook/services/jobs"
	"mechanicbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JobsHandler accepts booking submissions from customers.
type JobsHandler struct {
	Service jobs.JobService
}

func NewJobsHandler(svc jobs.JobService) *JobsHandler {
	return &JobsHandler{Service: svc}
}

// SubmitJobHandler handles POST /api/jobs.
func (h *JobsHandler) SubmitJobHandler(c *gin.Context) {
	logger := getLogger(c)

	var payload models.JobPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid payload", err.Error())
		return
	}

	resp, err := h.Service.Submit(c.Request.Context(), payload)
	if err != nil {
		var pe *jobs.PayloadError
		if errors.As(err, &pe) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid payload", pe.Details...)
			return
		}
		logger.Error("Failed to submit job", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store booking request"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
