package services

import (
	"fmt"
	"strings"

	"github.com/justsurfingit/talent-matrix/internal/dtos"
	"github.com/justsurfingit/talent-matrix/internal/models"
	"gorm.io/gorm"
)

// JobService keeps the jobs a student saved from search results.
type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{
		DB: db,
	}
}

func (s *JobService) SaveAppliedJob(req *dtos.AppliedJobRequest) (*models.AppliedJob, error) {
	var students int64
	if err := s.DB.Model(&models.Student{}).Where("id = ?", req.StudentID).Count(&students).Error; err != nil {
		return nil, fmt.Errorf("applied jobs: looking up student: %w", err)
	}
	if students == 0 {
		return nil, ErrStudentNotFound
	}

	jobURL := strings.TrimSpace(req.JobURL)
	// same posting saved twice is rejected, matching by URL
	var dup int64
	err := s.DB.Model(&models.AppliedJob{}).
		Where("student_id = ? AND job_url = ?", req.StudentID, jobURL).
		Count(&dup).Error
	if err != nil {
		return nil, fmt.Errorf("applied jobs: checking duplicate: %w", err)
	}
	if dup > 0 {
		return nil, ErrJobAlreadySaved
	}

	job := &models.AppliedJob{
		StudentID:   req.StudentID,
		JobTitle:    req.JobTitle,
		CompanyName: req.CompanyName,
		JobURL:      jobURL,
		Location:    req.Location,
		PostedDate:  req.PostedDate,
	}
	if err := s.DB.Create(job).Error; err != nil {
		return nil, fmt.Errorf("applied jobs: saving: %w", err)
	}
	return job, nil
}

func (s *JobService) ListAppliedJobs(studentID uint) ([]models.AppliedJob, error) {
	jobs := []models.AppliedJob{}
	if err := s.DB.Where("student_id = ?", studentID).Order("created_at DESC, id DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("applied jobs: listing: %w", err)
	}
	return jobs, nil
}

func (s *JobService) DeleteAppliedJob(studentID, id uint) error {
	res := s.DB.Where("student_id = ?", studentID).Delete(&models.AppliedJob{}, id)
	if res.Error != nil {
		return fmt.Errorf("applied jobs: deleting %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAppliedJobNotFound
	}
	return nil
}
