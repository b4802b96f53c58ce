package services

import (
	"testing"

	"github.com/justsurfingit/talent-matrix/internal/dtos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppliedJobs(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	alice := seedStudent(t, db, "alice@example.com")

	req := &dtos.AppliedJobRequest{
		StudentID:   alice.ID,
		JobTitle:    "Backend Developer",
		CompanyName: "Acme",
		JobURL:      "https://in.linkedin.com/jobs/view/1",
		Location:    "Bengaluru",
		PostedDate:  "2026-10-01",
	}
	job, err := svc.SaveAppliedJob(req)
	require.NoError(t, err)
	assert.NotZero(t, job.ID)

	_, err = svc.SaveAppliedJob(req)
	assert.ErrorIs(t, err, ErrJobAlreadySaved)

	second := *req
	second.JobURL = "https://in.linkedin.com/jobs/view/2"
	_, err = svc.SaveAppliedJob(&second)
	require.NoError(t, err)

	jobs, err := svc.ListAppliedJobs(alice.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, second.JobURL, jobs[0].JobURL)

	assert.ErrorIs(t, svc.DeleteAppliedJob(alice.ID+1, job.ID), ErrAppliedJobNotFound)
	assert.NoError(t, svc.DeleteAppliedJob(alice.ID, job.ID))

	jobs, err = svc.ListAppliedJobs(alice.ID)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestSaveAppliedJobUnknownStudent(t *testing.T) {
	svc := NewJobService(newTestDB(t))
	_, err := svc.SaveAppliedJob(&dtos.AppliedJobRequest{StudentID: 5, JobTitle: "x", CompanyName: "y", JobURL: "https://x"})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestProjects(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	alice := seedStudent(t, db, "alice@example.com")

	first, err := svc.CreateProject(&dtos.ProjectRequest{StudentID: alice.ID, Title: "Chat app", Description: "Realtime chat"})
	require.NoError(t, err)
	_, err = svc.CreateProject(&dtos.ProjectRequest{StudentID: alice.ID, Title: "Compiler", Description: "Toy compiler", Tags: "Go"})
	require.NoError(t, err)

	projects, err := svc.ListProjects(alice.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Compiler", projects[0].Title)

	assert.ErrorIs(t, svc.DeleteProject(alice.ID+1, first.ID), ErrProjectNotFound)
	require.NoError(t, svc.DeleteProject(alice.ID, first.ID))
	assert.ErrorIs(t, svc.DeleteProject(alice.ID, first.ID), ErrProjectNotFound)

	_, err = svc.CreateProject(&dtos.ProjectRequest{StudentID: 99, Title: "x", Description: "y"})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}
