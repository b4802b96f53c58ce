package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/talent-matrix/internal/dtos"
	"github.com/justsurfingit/talent-matrix/internal/services"
)

// JobSearcher runs a single LinkedIn query.
type JobSearcher interface {
	Search(ctx context.Context, opts services.SearchOptions) ([]services.JobListing, error)
}

type JobHandler struct {
	Search          JobSearcher
	JobService      *services.JobService
	DefaultLocation string
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(search JobSearcher, j *services.JobService, defaultLocation string) *JobHandler {
	return &JobHandler{
		Search:          search,
		JobService:      j,
		DefaultLocation: defaultLocation,
	}
}

// SearchJobs is the GET /jobs endpoint
func (h *JobHandler) SearchJobs(c *gin.Context) {
	var q dtos.JobSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Invalid query: "+err.Error())
		return
	}

	keyword := strings.TrimSpace(q.Query)
	if keyword == "" {
		keyword = services.DefaultRole
	}
	location := strings.TrimSpace(q.Location)
	if location == "" {
		location = h.DefaultLocation
	}

	opts := services.DefaultSearchOptions(keyword, location)
	override := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	override(&opts.ExperienceLevel, q.Level)
	override(&opts.JobType, q.JobType)
	override(&opts.RemoteFilter, q.Remote)
	override(&opts.DateSincePosted, q.Date)
	override(&opts.Salary, q.Salary)
	if q.Limit > 0 {
		opts.Limit = q.Limit
	}
	opts.Page = q.Page

	jobs, err := h.Search.Search(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// SaveAppliedJob is POST /applied-jobs
func (h *JobHandler) SaveAppliedJob(c *gin.Context) {
	var req dtos.AppliedJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	job, err := h.JobService.SaveAppliedJob(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Job saved successfully", "data": job})
}

func (h *JobHandler) ListAppliedJobs(c *gin.Context) {
	studentID, ok := idParam(c, "studentId")
	if !ok {
		return
	}
	jobs, err := h.JobService.ListAppliedJobs(studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) DeleteAppliedJob(c *gin.Context) {
	studentID, ok := idParam(c, "studentId")
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.JobService.DeleteAppliedJob(studentID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job removed"})
}
