package dtos

type SignupRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`

	RollNumber   string `json:"roll_number"`
	MobileNumber string `json:"mobile_number"`
	Year         string `json:"year"`
	Semester     string `json:"semester"`
}

// ProfileUpdateRequest is a partial update: nil fields are left untouched.
type ProfileUpdateRequest struct {
	FullName        *string `json:"full_name"`
	RollNumber      *string `json:"roll_number"`
	MobileNumber    *string `json:"mobile_number"`
	Year            *string `json:"year"`
	Semester        *string `json:"semester"`
	GithubUsername  *string `json:"github_username"`
	LinkedinURL     *string `json:"linkedin_url"`
	LeetcodeURL     *string `json:"leetcode_url"`
	CodeforcesURL   *string `json:"codeforces_url"`
	HackerrankURL   *string `json:"hackerrank_url"`
	CodechefURL     *string `json:"codechef_url"`
	ResumeURL       *string `json:"resume_url"`
	ProfileImageURL *string `json:"profile_image_url"`
}

type SkillRequest struct {
	Name  string `json:"name" binding:"required"`
	Level string `json:"level" binding:"required"`
	Tags  string `json:"tags"`
}

type SemesterGradeRequest struct {
	Semester string   `json:"semester" binding:"required"`
	Grade    *float64 `json:"grade" binding:"required"`
}

type ApplyExtractedSkillsRequest struct {
	Skills map[string][]string `json:"skills" binding:"required"`
}

type ProjectRequest struct {
	StudentID   uint   `json:"studentId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Link        string `json:"link"`
	Tags        string `json:"tags"`
	Description string `json:"description" binding:"required"`
}
