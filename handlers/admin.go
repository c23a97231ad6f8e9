// File: mechanicbook/handlers/admin.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"mechanicbook/models"
	"mechanicbook/services/jobs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes job management to the admin credential holder.
type AdminHandler struct {
	JobService jobs.JobService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(js jobs.JobService) *AdminHandler {
	return &AdminHandler{JobService: js}
}

// ListJobsHandler returns the newest jobs first. An optional ?limit caps the count.
func (ah *AdminHandler) ListJobsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := ah.JobService.List(c.Request.Context(), limit)
	if err != nil {
		getLogger(c).Error("Failed to fetch jobs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch jobs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": list})
}

// UpdateJobStatusHandler sets a job's status.
func (ah *AdminHandler) UpdateJobStatusHandler(c *gin.Context) {
	var req models.UpdateJobStatusRequest
	// A malformed body is treated like an empty one.
	_ = c.ShouldBindJSON(&req)

	job, err := ah.JobService.UpdateStatus(c.Request.Context(), req.ID, req.Status)
	switch {
	case err == nil:
		getLogger(c).Info("Job status changed by admin", zap.String("id", job.ID), zap.String("status", string(job.Status)))
		c.JSON(http.StatusOK, gin.H{"job": job})
	case errors.Is(err, jobs.ErrMissingFields), errors.Is(err, jobs.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, jobs.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	default:
		getLogger(c).Error("Failed to update job status", zap.String("id", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job"})
	}
}
