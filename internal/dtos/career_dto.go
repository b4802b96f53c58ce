package dtos

type CareerAnalysisRequest struct {
	Username  string `json:"username"`
	ResumeURL string `json:"resumeUrl"`
	Location  string `json:"location"`
	StudentID uint   `json:"studentId"`
}

type ResumeExtractRequest struct {
	ResumeURL   string `json:"resumeUrl" binding:"required"`
	IncludeText bool   `json:"includeText"`
}
