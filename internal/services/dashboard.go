package services

import (
	"context"

	"github.com/justsurfingit/talent-matrix/internal/models"
)

// Dashboard is everything the profile page shows in one response.
type Dashboard struct {
	Student     *models.Student     `json:"student"`
	CGPA        string              `json:"cgpa"`
	CodingStats CodingStats         `json:"coding_stats"`
	GitHubRepos []GitHubRepo        `json:"github_projects"`
	Projects    []models.Project    `json:"projects"`
	AppliedJobs []models.AppliedJob `json:"applied_jobs"`
}

type DashboardService struct {
	Students *StudentService
	Projects *ProjectService
	Jobs     *JobService
	Stats    *CodingStatsService
}

func NewDashboardService(students *StudentService, projects *ProjectService, jobs *JobService, stats *CodingStatsService) *DashboardService {
	return &DashboardService{Students: students, Projects: projects, Jobs: jobs, Stats: stats}
}

func (s *DashboardService) Dashboard(ctx context.Context, studentID uint) (*Dashboard, error) {
	student, err := s.Students.GetStudent(studentID)
	if err != nil {
		return nil, err
	}
	projects, err := s.Projects.ListProjects(studentID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.Jobs.ListAppliedJobs(studentID)
	if err != nil {
		return nil, err
	}

	stats, repos := s.Stats.Collect(ctx, student)
	return &Dashboard{
		Student:     student,
		CGPA:        ComputeCGPA(student.Semesters),
		CodingStats: stats,
		GitHubRepos: repos,
		Projects:    projects,
		AppliedJobs: jobs,
	}, nil
}
