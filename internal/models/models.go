package models

import (
	"time"

	"gorm.io/gorm"
)

// Skill levels a student can declare.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelExpert       = "Expert"
)

type Student struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FullName     string `gorm:"not null" json:"full_name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	RollNumber   string `json:"roll_number"`
	MobileNumber string `json:"mobile_number"`
	Year         string `json:"year"`
	Semester     string `json:"semester"`

	// External profile links
	GithubUsername string `json:"github_username"`
	LinkedinURL    string `json:"linkedin_url"`
	LeetcodeURL    string `json:"leetcode_url"`
	CodeforcesURL  string `json:"codeforces_url"`
	HackerrankURL  string `json:"hackerrank_url"`
	CodechefURL    string `json:"codechef_url"`

	ResumeURL       string `json:"resume_url"`
	ProfileImageURL string `json:"profile_image_url"`

	// Associations: GORM needs Preload() to fill these
	Skills      []Skill         `json:"skills,omitempty"`
	Semesters   []SemesterGrade `json:"semesters,omitempty"`
	Projects    []Project       `json:"projects,omitempty"`
	AppliedJobs []AppliedJob    `json:"applied_jobs,omitempty"`
}

// Skill is unique per student by case-insensitive name. The check happens in
// the service before insert, not in the schema.
type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	StudentID uint   `gorm:"index;not null" json:"student_id"`
	Name      string `gorm:"not null" json:"name"`
	Level     string `gorm:"not null" json:"level"`
	Tags      string `json:"tags"`
}

type SemesterGrade struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UpdatedAt time.Time `json:"updated_at"`

	StudentID uint    `gorm:"uniqueIndex:idx_student_semester;not null" json:"student_id"`
	Semester  string  `gorm:"uniqueIndex:idx_student_semester;not null" json:"semester"`
	Grade     float64 `json:"grade"`
}

type Project struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	StudentID   uint   `gorm:"index;not null" json:"student_id"`
	Title       string `gorm:"not null" json:"title"`
	Link        string `json:"link"`
	Tags        string `json:"tags"`
	Description string `gorm:"type:text" json:"description"`
}

// AppliedJob is a saved job posting. Rows are never updated after creation.
type AppliedJob struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	StudentID   uint   `gorm:"index;not null" json:"student_id"`
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
	JobURL      string `gorm:"not null" json:"job_url"`
	Location    string `json:"location"`
	PostedDate  string `json:"posted_date"`
}
