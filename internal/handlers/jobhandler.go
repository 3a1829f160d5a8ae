package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Manohar-jami/Job-Portal-Api/internal/dtos"
	"github.com/Manohar-jami/Job-Portal-Api/internal/response"
	"github.com/Manohar-jami/Job-Portal-Api/internal/services"
)

type JobHandler struct {
	LLMService *services.LLMService
	JobService *services.JobService
}

// NewJobHandler creates the handler with dependencies. llm may be nil, in
// which case extraction answers 503.
func NewJobHandler(llm *services.LLMService, j *services.JobService) *JobHandler {
	return &JobHandler{
		LLMService: llm,
		JobService: j,
	}
}

// ListJobs is the GET /jobs/ endpoint
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.JobService.ListJobs(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// CreateJob is the POST /jobs/create/ endpoint
func (h *JobHandler) CreateJob(c *gin.Context) {
	caller, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	// Role is checked before the payload.
	if err := h.JobService.AuthorizePosting(caller); err != nil {
		response.Error(c, err)
		return
	}
	var req dtos.JobCreationRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	job, err := h.JobService.CreateJob(c.Request.Context(), caller, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// ParseJob is the POST /jobs/extract/ endpoint
func (h *JobHandler) ParseJob(c *gin.Context) {
	caller, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dtos.JobExtractionRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	draft, err := h.LLMService.ExtractJobDetails(c.Request.Context(), caller, req.RawText)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    draft,
	})
}
