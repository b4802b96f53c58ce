package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/talent-matrix/internal/dtos"
	"github.com/justsurfingit/talent-matrix/internal/services"
)

type CareerAnalyzer interface {
	Analyze(ctx context.Context, req *dtos.CareerAnalysisRequest) (*services.CareerResult, error)
}

type SkillExtractor interface {
	ExtractSkills(ctx context.Context, url string) (services.ExtractedSkillSet, string, error)
}

type CareerHandler struct {
	Analyzer CareerAnalyzer
	Resume   SkillExtractor
}

func NewCareerHandler(a CareerAnalyzer, r SkillExtractor) *CareerHandler {
	return &CareerHandler{Analyzer: a, Resume: r}
}

// AnalyzeCareer is POST /ai/analyze-career
func (h *CareerHandler) AnalyzeCareer(c *gin.Context) {
	var req dtos.CareerAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON format: " + err.Error(), "error_code": "invalid_request"})
		return
	}
	if strings.TrimSpace(req.ResumeURL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Resume URL is missing.", "error_code": "invalid_request"})
		return
	}

	res, err := h.Analyzer.Analyze(c.Request.Context(), &req)
	if err != nil {
		if kind := services.KindOf(err); kind != "" {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error(), "error_code": string(kind)})
			return
		}
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			slog.Error("career analysis failed", "error", err)
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	if res.NoJobs {
		c.JSON(http.StatusOK, gin.H{
			"success":          true,
			"analysis_id":      res.AnalysisID,
			"message":          "No jobs found.",
			"jobs_found_count": 0,
			"report":           []any{},
		})
		return
	}

	body := gin.H{
		"success":          true,
		"analysis_id":      res.AnalysisID,
		"user_summary":     res.Profile,
		"jobs_found_count": res.JobsFound,
		"analysis":         res.Report,
	}
	if res.Stats.Available() {
		body["coding_stats"] = res.Stats
	}
	c.JSON(http.StatusOK, body)
}

// ExtractResumeSkills is POST /resume/extract
func (h *CareerHandler) ExtractResumeSkills(c *gin.Context) {
	var req dtos.ResumeExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Resume URL is missing."})
		return
	}

	skills, text, err := h.Resume.ExtractSkills(c.Request.Context(), req.ResumeURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error(), "error_code": string(services.KindOf(err))})
		return
	}

	body := gin.H{"success": len(skills) > 0, "skills": skills}
	if len(skills) == 0 {
		body["message"] = "No skills section found. Add a \"Skills\" heading to your resume and try again."
	}
	if req.IncludeText {
		body["rawText"] = text
	}
	c.JSON(http.StatusOK, body)
}
