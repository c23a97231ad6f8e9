// File: mechanicbook/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Admin credential checked by middleware.AdminAuthMiddleware.
	AdminAPIKey     string
	AdminAPIKeyHash string

	// Customer endpoints
	GetCatalogHandler     gin.HandlerFunc
	VehicleLookupHandler  gin.HandlerFunc
	PostcodeLookupHandler gin.HandlerFunc
	ClarifyHandler        gin.HandlerFunc
	SubmitJobHandler      gin.HandlerFunc

	// Admin endpoints
	ListJobsHandler        gin.HandlerFunc
	UpdateJobStatusHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires handler methods into the bundle.
func NewHandlerBundle(cat *CatalogHandler, lookup *LookupHandler, clar *ClarifyHandler, jobs *JobsHandler, admin *AdminHandler) *HandlerBundle {
	return &HandlerBundle{
		GetCatalogHandler:      cat.GetCatalogHandler,
		VehicleLookupHandler:   lookup.VehicleLookupHandler,
		PostcodeLookupHandler:  lookup.PostcodeLookupHandler,
		ClarifyHandler:         clar.ClarifyQuestionsHandler,
		SubmitJobHandler:       jobs.SubmitJobHandler,
		ListJobsHandler:        admin.ListJobsHandler,
		UpdateJobStatusHandler: admin.UpdateJobStatusHandler,
		HealthHandler:          HealthHandler,
	}
}
