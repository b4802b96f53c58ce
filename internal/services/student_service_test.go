package services

import (
	"testing"

	"github.com/justsurfingit/talent-matrix/internal/dtos"
	"github.com/justsurfingit/talent-matrix/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignup(t *testing.T) {
	db := newTestDB(t)
	svc := NewStudentService(db)

	s, err := svc.Signup(&dtos.SignupRequest{FullName: " Alice ", Email: "Alice@Example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", s.Email)
	assert.Equal(t, "Alice", s.FullName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte("secret123")))

	_, err = svc.Signup(&dtos.SignupRequest{FullName: "Other", Email: "ALICE@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGetStudentNotFound(t *testing.T) {
	_, err := NewStudentService(newTestDB(t)).GetStudent(42)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestUpdateProfileIsPartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewStudentService(db)
	s := seedStudent(t, db, "alice@example.com")

	leetcode := "https://leetcode.com/u/alice/"
	updated, err := svc.UpdateProfile(s.ID, &dtos.ProfileUpdateRequest{LeetcodeURL: &leetcode})
	require.NoError(t, err)
	assert.Equal(t, leetcode, updated.LeetcodeURL)
	assert.Equal(t, "Alice Example", updated.FullName)

	_, err = svc.UpdateProfile(999, &dtos.ProfileUpdateRequest{LeetcodeURL: &leetcode})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestAddSkillRejectsCaseInsensitiveDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewStudentService(db)
	s := seedStudent(t, db, "alice@example.com")

	skill, err := svc.AddSkill(s.ID, &dtos.SkillRequest{Name: "Python", Level: "expert"})
	require.NoError(t, err)
	assert.Equal(t, models.LevelExpert, skill.Level)

	_, err = svc.AddSkill(s.ID, &dtos.SkillRequest{Name: "python", Level: "Beginner"})
	assert.ErrorIs(t, err, ErrDuplicateSkill)

	_, err = svc.AddSkill(s.ID, &dtos.SkillRequest{Name: "Go", Level: "Guru"})
	assert.ErrorIs(t, err, ErrInvalidSkillLevel)

	_, err = svc.AddSkill(s.ID, &dtos.SkillRequest{Name: "   ", Level: "Beginner"})
	assert.ErrorIs(t, err, ErrEmptySkillName)

	names, err := svc.SkillNames(s.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Python"}, names)
}

func TestDeleteSkill(t *testing.T) {
	db := newTestDB(t)
	svc := NewStudentService(db)
	alice := seedStudent(t, db, "alice@example.com")
	bob := seedStudent(t, db, "bob@example.com")

	skill, err := svc.AddSkill(alice.ID, &dtos.SkillRequest{Name: "SQL", Level: "Beginner"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteSkill(bob.ID, skill.ID), ErrSkillNotFound)
	assert.NoError(t, svc.DeleteSkill(alice.ID, skill.ID))
	assert.ErrorIs(t, svc.DeleteSkill(alice.ID, skill.ID), ErrSkillNotFound)
}

func TestApplyExtractedSkills(t *testing.T) {
	db := newTestDB(t)
	svc := NewStudentService(db)
	s := seedStudent(t, db, "alice@example.com")
	_, err := svc.AddSkill(s.ID, &dtos.SkillRequest{Name: "Python", Level: "Expert"})
	require.NoError(t, err)

	added, err := svc.ApplyExtractedSkills(s.ID, ExtractedSkillSet{
		"fundamental": {"Arrays", "python"},
		"advanced":    {"Graphs"},
		"languages":   {"Golang", "arrays"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	student, err := svc.GetStudent(s.ID)
	require.NoError(t, err)
	levels := map[string]string{}
	for _, sk := range student.Skills {
		levels[sk.Name] = sk.Level
	}
	assert.Equal(t, map[string]string{
		"Python": models.LevelExpert,
		"Graphs": models.LevelExpert,
		"Arrays": models.LevelBeginner,
		"Golang": models.LevelIntermediate,
	}, levels)
}

func TestSetSemesterGradeUpserts(t *testing.T) {
	db := newTestDB(t)
	svc := NewStudentService(db)
	s := seedStudent(t, db, "alice@example.com")

	_, err := svc.SetSemesterGrade(s.ID, "semester 1", 8)
	require.NoError(t, err)
	_, err = svc.SetSemesterGrade(s.ID, "2", 9)
	require.NoError(t, err)
	_, err = svc.SetSemesterGrade(s.ID, "Semester 1", 8.5)
	require.NoError(t, err)

	student, err := svc.GetStudent(s.ID)
	require.NoError(t, err)
	require.Len(t, student.Semesters, 2)
	assert.Equal(t, "8.75", ComputeCGPA(student.Semesters))

	_, err = svc.SetSemesterGrade(s.ID, "Semester 9", 7)
	assert.ErrorIs(t, err, ErrInvalidSemester)
	_, err = svc.SetSemesterGrade(s.ID, "Semester 3", 11)
	assert.ErrorIs(t, err, ErrInvalidGrade)
}

func TestComputeCGPA(t *testing.T) {
	assert.Equal(t, "N/A", ComputeCGPA(nil))
	assert.Equal(t, "7.67", ComputeCGPA([]models.SemesterGrade{{Grade: 7}, {Grade: 8}, {Grade: 8}}))
}

func TestNormalizeSemester(t *testing.T) {
	for in, want := range map[string]string{"3": "Semester 3", "SEMESTER 8": "Semester 8", " Semester 1 ": "Semester 1"} {
		got, ok := NormalizeSemester(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"0", "9", "Sem 1", ""} {
		_, ok := NormalizeSemester(in)
		assert.False(t, ok, in)
	}
}
