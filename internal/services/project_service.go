package services

import (
	"fmt"
	"strings"

	"github.com/justsurfingit/talent-matrix/internal/dtos"
	"github.com/justsurfingit/talent-matrix/internal/models"
	"gorm.io/gorm"
)

// ProjectService stores manually entered projects.
type ProjectService struct {
	DB *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{DB: db}
}

func (s *ProjectService) CreateProject(req *dtos.ProjectRequest) (*models.Project, error) {
	var count int64
	if err := s.DB.Model(&models.Student{}).Where("id = ?", req.StudentID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("projects: looking up student: %w", err)
	}
	if count == 0 {
		return nil, ErrStudentNotFound
	}

	project := &models.Project{
		StudentID:   req.StudentID,
		Title:       strings.TrimSpace(req.Title),
		Link:        strings.TrimSpace(req.Link),
		Tags:        req.Tags,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.DB.Create(project).Error; err != nil {
		return nil, fmt.Errorf("projects: creating: %w", err)
	}
	return project, nil
}

// ListProjects returns the newest projects first.
func (s *ProjectService) ListProjects(studentID uint) ([]models.Project, error) {
	projects := []models.Project{}
	if err := s.DB.Where("student_id = ?", studentID).Order("created_at DESC, id DESC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("projects: listing: %w", err)
	}
	return projects, nil
}

// DeleteProject removes a project only when it belongs to studentID.
func (s *ProjectService) DeleteProject(studentID, id uint) error {
	res := s.DB.Where("student_id = ?", studentID).Delete(&models.Project{}, id)
	if res.Error != nil {
		return fmt.Errorf("projects: deleting %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
