package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Manohar-jami/Job-Portal-Api/internal/dtos"
	"github.com/Manohar-jami/Job-Portal-Api/internal/response"
	"github.com/Manohar-jami/Job-Portal-Api/internal/services"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
}

func NewApplicationHandler(a *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{ApplicationService: a}
}

// Apply is the POST /jobs/:id/apply/ endpoint
func (h *ApplicationHandler) Apply(c *gin.Context) {
	caller, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	jobID, err := pathID(c, "id", "Job not found")
	if err != nil {
		response.Error(c, err)
		return
	}
	app, err := h.ApplicationService.Apply(c.Request.Context(), caller, jobID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// MyApplications is the GET /applications/me/ endpoint
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	caller, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	apps, err := h.ApplicationService.ListMine(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Applicants is the GET /jobs/:id/applicants/ endpoint
func (h *ApplicationHandler) Applicants(c *gin.Context) {
	caller, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	jobID, err := pathID(c, "id", "Job not found or not posted by you")
	if err != nil {
		response.Error(c, err)
		return
	}
	apps, err := h.ApplicationService.ListApplicants(c.Request.Context(), caller, jobID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// UpdateStatus is the PATCH /applications/:id/update/ endpoint
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	caller, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	appID, err := pathID(c, "id", "Application not found")
	if err != nil {
		response.Error(c, err)
		return
	}
	// An unreadable body leaves Status empty; the service rejects it after the
	// role and lookup checks.
	var req dtos.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Status = ""
	}
	app, err := h.ApplicationService.UpdateStatus(c.Request.Context(), caller, appID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
