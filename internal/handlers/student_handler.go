package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/talent-matrix/internal/dtos"
	"github.com/justsurfingit/talent-matrix/internal/models"
	"github.com/justsurfingit/talent-matrix/internal/services"
)

type StudentHandler struct {
	Students  *services.StudentService
	Dashboard *services.DashboardService
}

func NewStudentHandler(s *services.StudentService, d *services.DashboardService) *StudentHandler {
	return &StudentHandler{Students: s, Dashboard: d}
}

type profileResponse struct {
	*models.Student
	CGPA string `json:"cgpa"`
}

// Signup is POST /signup
func (h *StudentHandler) Signup(c *gin.Context) {
	var req dtos.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	student, err := h.Students.Signup(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

// GetProfile is GET /signup/:id
func (h *StudentHandler) GetProfile(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	student, err := h.Students.GetStudent(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse{Student: student, CGPA: services.ComputeCGPA(student.Semesters)})
}

// UpdateProfile is PUT /signup/:id
func (h *StudentHandler) UpdateProfile(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dtos.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	student, err := h.Students.UpdateProfile(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse{Student: student, CGPA: services.ComputeCGPA(student.Semesters)})
}

func (h *StudentHandler) GetDashboard(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	d, err := h.Dashboard.Dashboard(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *StudentHandler) AddSkill(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dtos.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	skill, err := h.Students.AddSkill(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, skill)
}

func (h *StudentHandler) DeleteSkill(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	skillID, ok := idParam(c, "skillId")
	if !ok {
		return
	}
	if err := h.Students.DeleteSkill(id, skillID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Skill removed"})
}

func (h *StudentHandler) SetSemesterGrade(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dtos.SemesterGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	grade, err := h.Students.SetSemesterGrade(id, req.Semester, *req.Grade)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, grade)
}

// ApplyExtractedSkills merges skills found on a resume into the profile.
func (h *StudentHandler) ApplyExtractedSkills(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dtos.ApplyExtractedSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	added, err := h.Students.ApplyExtractedSkills(id, services.ExtractedSkillSet(req.Skills))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}
