package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/talent-matrix/internal/dtos"
	"github.com/justsurfingit/talent-matrix/internal/services"
)

type ProjectHandler struct {
	Projects *services.ProjectService
}

func NewProjectHandler(p *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Projects: p}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dtos.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	project, err := h.Projects.CreateProject(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	studentID, ok := idParam(c, "studentId")
	if !ok {
		return
	}
	projects, err := h.Projects.ListProjects(studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	studentID, ok := idParam(c, "studentId")
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Projects.DeleteProject(studentID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}
