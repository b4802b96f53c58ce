package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/justsurfingit/talent-matrix/internal/dtos"
	"github.com/justsurfingit/talent-matrix/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Semesters lists the only accepted semester labels, in order.
var Semesters = []string{
	"Semester 1", "Semester 2", "Semester 3", "Semester 4",
	"Semester 5", "Semester 6", "Semester 7", "Semester 8",
}

type StudentService struct {
	DB *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{DB: db}
}

func (s *StudentService) Signup(req *dtos.SignupRequest) (*models.Student, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := s.DB.Model(&models.Student{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("students: checking email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("students: hashing password: %w", err)
	}

	student := &models.Student{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: string(hash),
		RollNumber:   req.RollNumber,
		MobileNumber: req.MobileNumber,
		Year:         req.Year,
		Semester:     req.Semester,
	}
	if err := s.DB.Create(student).Error; err != nil {
		return nil, fmt.Errorf("students: creating: %w", err)
	}
	return student, nil
}

// GetStudent loads a student with skills and semester grades.
func (s *StudentService) GetStudent(id uint) (*models.Student, error) {
	var student models.Student
	err := s.DB.Preload("Skills").Preload("Semesters").First(&student, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("students: loading %d: %w", id, err)
	}
	return &student, nil
}

func (s *StudentService) UpdateProfile(id uint, req *dtos.ProfileUpdateRequest) (*models.Student, error) {
	if err := s.ensureStudent(id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	set := func(column string, v *string) {
		if v != nil {
			updates[column] = strings.TrimSpace(*v)
		}
	}
	set("full_name", req.FullName)
	set("roll_number", req.RollNumber)
	set("mobile_number", req.MobileNumber)
	set("year", req.Year)
	set("semester", req.Semester)
	set("github_username", req.GithubUsername)
	set("linkedin_url", req.LinkedinURL)
	set("leetcode_url", req.LeetcodeURL)
	set("codeforces_url", req.CodeforcesURL)
	set("hackerrank_url", req.HackerrankURL)
	set("codechef_url", req.CodechefURL)
	set("resume_url", req.ResumeURL)
	set("profile_image_url", req.ProfileImageURL)

	if len(updates) > 0 {
		if err := s.DB.Model(&models.Student{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("students: updating %d: %w", id, err)
		}
	}
	return s.GetStudent(id)
}

// AddSkill declares a skill for the student. Names are compared without case.
func (s *StudentService) AddSkill(studentID uint, req *dtos.SkillRequest) (*models.Skill, error) {
	level, ok := NormalizeLevel(req.Level)
	if !ok {
		return nil, ErrInvalidSkillLevel
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptySkillName
	}

	existing, err := s.skillNameSet(studentID)
	if err != nil {
		return nil, err
	}
	if existing[strings.ToLower(name)] {
		return nil, ErrDuplicateSkill
	}

	skill := &models.Skill{StudentID: studentID, Name: name, Level: level, Tags: strings.TrimSpace(req.Tags)}
	if err := s.DB.Create(skill).Error; err != nil {
		return nil, fmt.Errorf("students: adding skill: %w", err)
	}
	return skill, nil
}

func (s *StudentService) DeleteSkill(studentID, skillID uint) error {
	res := s.DB.Where("student_id = ?", studentID).Delete(&models.Skill{}, skillID)
	if res.Error != nil {
		return fmt.Errorf("students: deleting skill %d: %w", skillID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

// ApplyExtractedSkills merges a scanned resume skill set into the profile and
// returns how many skills were added. Categories are applied in name order so
// the result does not depend on map iteration.
func (s *StudentService) ApplyExtractedSkills(studentID uint, set ExtractedSkillSet) (int, error) {
	existing, err := s.skillNameSet(studentID)
	if err != nil {
		return 0, err
	}

	categories := make([]string, 0, len(set))
	for c := range set {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var added []models.Skill
	for _, category := range categories {
		level := levelForCategory(category)
		for _, name := range set[category] {
			name = strings.TrimSpace(name)
			key := strings.ToLower(name)
			if name == "" || existing[key] {
				continue
			}
			existing[key] = true
			added = append(added, models.Skill{StudentID: studentID, Name: name, Level: level, Tags: category})
		}
	}

	if len(added) == 0 {
		return 0, nil
	}
	if err := s.DB.Create(&added).Error; err != nil {
		return 0, fmt.Errorf("students: applying extracted skills: %w", err)
	}
	return len(added), nil
}

// SkillNames returns the declared skill names of a student.
func (s *StudentService) SkillNames(studentID uint) ([]string, error) {
	if err := s.ensureStudent(studentID); err != nil {
		return nil, err
	}
	var names []string
	err := s.DB.Model(&models.Skill{}).Where("student_id = ?", studentID).Order("id").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("students: listing skills: %w", err)
	}
	return names, nil
}

// SetSemesterGrade inserts or replaces the grade of one semester.
func (s *StudentService) SetSemesterGrade(studentID uint, semester string, grade float64) (*models.SemesterGrade, error) {
	label, ok := NormalizeSemester(semester)
	if !ok {
		return nil, ErrInvalidSemester
	}
	if math.IsNaN(grade) || grade < 0 || grade > 10 {
		return nil, ErrInvalidGrade
	}
	if err := s.ensureStudent(studentID); err != nil {
		return nil, err
	}

	row := &models.SemesterGrade{StudentID: studentID, Semester: label, Grade: grade}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "semester"}},
		DoUpdates: clause.AssignmentColumns([]string{"grade", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return nil, fmt.Errorf("students: saving %s grade: %w", label, err)
	}
	return row, nil
}

// ComputeCGPA averages the semester grades, formatted with two decimals.
// It returns "N/A" when there is nothing to average.
func ComputeCGPA(grades []models.SemesterGrade) string {
	if len(grades) == 0 {
		return "N/A"
	}
	var sum float64
	for _, g := range grades {
		sum += g.Grade
	}
	return strconv.FormatFloat(sum/float64(len(grades)), 'f', 2, 64)
}

// NormalizeLevel maps a level to its canonical spelling.
func NormalizeLevel(level string) (string, bool) {
	for _, l := range []string{models.LevelBeginner, models.LevelIntermediate, models.LevelExpert} {
		if strings.EqualFold(strings.TrimSpace(level), l) {
			return l, true
		}
	}
	return "", false
}

// NormalizeSemester accepts "Semester N" in any case, or a bare "N".
func NormalizeSemester(semester string) (string, bool) {
	s := strings.TrimSpace(semester)
	if n, err := strconv.Atoi(s); err == nil {
		s = "Semester " + strconv.Itoa(n)
	}
	for _, label := range Semesters {
		if strings.EqualFold(s, label) {
			return label, true
		}
	}
	return "", false
}

func levelForCategory(category string) string {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "fundamental") || strings.Contains(c, "basic"):
		return models.LevelBeginner
	case strings.Contains(c, "advanced") || strings.Contains(c, "expert"):
		return models.LevelExpert
	default:
		return models.LevelIntermediate
	}
}

func (s *StudentService) skillNameSet(studentID uint) (map[string]bool, error) {
	names, err := s.SkillNames(studentID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set, nil
}

func (s *StudentService) ensureStudent(id uint) error {
	var count int64
	if err := s.DB.Model(&models.Student{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("students: looking up %d: %w", id, err)
	}
	if count == 0 {
		return ErrStudentNotFound
	}
	return nil
}
