package models

// AnalyzeResumeRequest represents the skill-extraction request
// @Description Resume analysis request with extracted text and resume id
type AnalyzeResumeRequest struct {
	ResumeText string `json:"resumeText" binding:"required" example:"John Doe\nSoftware Engineer with 5 years of Go experience..."`
	ResumeID   string `json:"resumeId" binding:"required" example:"f3b9c2de-1a77-4f0e-9b1e-8f2d4c6a0b53"`
}

// AnalyzeResumeResponse represents the skill-extraction response
// @Description Extracted skills and count
type AnalyzeResumeResponse struct {
	Success bool    `json:"success" example:"true"`
	Skills  []Skill `json:"skills"`
	Count   int     `json:"count" example:"12"`
}

// GenerateRoadmapRequest represents the roadmap-generation request.
// Generation always works from the caller's stored skills.
// @Description Roadmap generation options
type GenerateRoadmapRequest struct {
	TargetRole   string `json:"targetRole,omitempty" example:"Software Engineer"`
	CurrentLevel string `json:"currentLevel,omitempty" example:"Intermediate"`
}

// GenerateRoadmapResponse represents the roadmap-generation response
// @Description Generated roadmap with its ordered steps
type GenerateRoadmapResponse struct {
	Success bool     `json:"success" example:"true"`
	Roadmap *Roadmap `json:"roadmap"`
}

// UploadResumeResponse represents the response of the full upload pipeline
// @Description Result of uploading and analyzing a resume
type UploadResumeResponse struct {
	ResumeID string  `json:"resumeId" example:"f3b9c2de-1a77-4f0e-9b1e-8f2d4c6a0b53"`
	FileURL  string  `json:"fileUrl" example:"https://storage.googleapis.com/bucket/resumes/user/1700000000000.pdf"`
	Skills   []Skill `json:"skills"`
	Count    int     `json:"count" example:"12"`
	Message  string  `json:"message,omitempty" example:"Resume analyzed successfully"`
}

// ResumeListResponse represents a user's uploaded resumes
// @Description List of uploaded resumes, newest first
type ResumeListResponse struct {
	Resumes []Resume `json:"resumes"`
	Total   int      `json:"total" example:"2"`
}

// SkillListResponse represents a user's extracted skills
// @Description List of extracted skills
type SkillListResponse struct {
	Skills []Skill `json:"skills"`
	Total  int     `json:"total" example:"12"`
}

// DeleteResumeResponse represents the result of deleting a resume
// @Description Resume deletion confirmation
type DeleteResumeResponse struct {
	Message string `json:"message" example:"Resume deleted successfully"`
}

// RoadmapResponse represents the roadmap view payload
// @Description Latest roadmap for the user
type RoadmapResponse struct {
	Roadmap *Roadmap `json:"roadmap"`
	Message string   `json:"message,omitempty"`
}

// ErrorResponse represents an API error response
// @Description Standard error response
type ErrorResponse struct {
	Error    string `json:"error" example:"Invalid request body"`
	Code     int    `json:"code" example:"400"`
	Details  string `json:"details,omitempty" example:"resumeText is required"`
	Redirect string `json:"redirect,omitempty" example:"/upload"`
}

// HealthResponse represents health check response
// @Description Server health status
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Version   string `json:"version" example:"1.0.0"`
	Timestamp string `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}
