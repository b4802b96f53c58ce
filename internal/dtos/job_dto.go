package dtos

type AppliedJobRequest struct {
	StudentID   uint   `json:"student_id" binding:"required"`
	JobTitle    string `json:"job_title" binding:"required"`
	CompanyName string `json:"company_name" binding:"required"`
	JobURL      string `json:"job_url" binding:"required,url"`

	// Optional Fields
	Location   string `json:"location"`
	PostedDate string `json:"posted_date"`
}

// JobSearchQuery binds GET /jobs query parameters. Empty fields fall back
// to the service defaults.
type JobSearchQuery struct {
	Query    string `form:"query"`
	Location string `form:"location"`
	Level    string `form:"level"`
	JobType  string `form:"jobType"`
	Remote   string `form:"remote"`
	Date     string `form:"date"`
	Salary   string `form:"salary"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Page     int    `form:"page" binding:"omitempty,min=0"`
}
