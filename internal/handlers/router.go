package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/talent-matrix/internal/config"
)

type Handlers struct {
	Students *StudentHandler
	Projects *ProjectHandler
	Jobs     *JobHandler
	Career   *CareerHandler
}

// NewRouter wires every route under /api.
func NewRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if cfg.AllowAllOrigins() || len(cfg.CORSAllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	{
		api.GET("/health", HealthCheck)

		// Students
		api.POST("/signup", h.Students.Signup)
		api.GET("/signup/:id", h.Students.GetProfile)
		api.PUT("/signup/:id", h.Students.UpdateProfile)
		api.GET("/students/:id/dashboard", h.Students.GetDashboard)
		api.POST("/students/:id/skills", h.Students.AddSkill)
		api.DELETE("/students/:id/skills/:skillId", h.Students.DeleteSkill)
		api.POST("/students/:id/skills/extracted", h.Students.ApplyExtractedSkills)
		api.PUT("/students/:id/semesters", h.Students.SetSemesterGrade)

		// Projects
		api.POST("/projects", h.Projects.CreateProject)
		api.GET("/projects/:studentId", h.Projects.ListProjects)
		api.DELETE("/projects/:studentId/:id", h.Projects.DeleteProject)

		// Jobs
		api.GET("/jobs", h.Jobs.SearchJobs)
		api.POST("/applied-jobs", h.Jobs.SaveAppliedJob)
		api.GET("/applied-jobs/:studentId", h.Jobs.ListAppliedJobs)
		api.DELETE("/applied-jobs/:studentId/:id", h.Jobs.DeleteAppliedJob)

		// Resume and career analysis
		api.POST("/resume/extract", h.Career.ExtractResumeSkills)
		api.POST("/ai/analyze-career", h.Career.AnalyzeCareer)
	}
	return r
}
