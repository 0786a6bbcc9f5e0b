package models

import "time"

// Resume represents one uploaded resume document
// @Description Uploaded resume record
type Resume struct {
	ID         string    `json:"id" firestore:"-" example:"f3b9c2de-1a77-4f0e-9b1e-8f2d4c6a0b53"`
	UserID     string    `json:"user_id" firestore:"user_id"`
	FileName   string    `json:"file_name" firestore:"file_name" example:"resume.pdf"`
	FileURL    string    `json:"file_url" firestore:"file_url" example:"https://storage.googleapis.com/bucket/resumes/user/1700000000000.pdf"`
	Analyzed   bool      `json:"analyzed" firestore:"analyzed"`
	UploadDate time.Time `json:"upload_date" firestore:"upload_date"`
	CreatedAt  time.Time `json:"created_at" firestore:"created_at"`
}

// Skill categories returned by the extraction model
const (
	CategoryTechnical      = "Technical"
	CategorySoftSkills     = "Soft Skills"
	CategoryTools          = "Tools"
	CategoryLanguages      = "Languages"
	CategoryCertifications = "Certifications"
)

// Proficiency levels returned by the extraction model
const (
	ProficiencyBeginner     = "Beginner"
	ProficiencyIntermediate = "Intermediate"
	ProficiencyAdvanced     = "Advanced"
	ProficiencyExpert       = "Expert"
)

// SkillCategories lists every accepted skill category
var SkillCategories = []string{
	CategoryTechnical,
	CategorySoftSkills,
	CategoryTools,
	CategoryLanguages,
	CategoryCertifications,
}

// ProficiencyLevels lists every accepted proficiency level
var ProficiencyLevels = []string{
	ProficiencyBeginner,
	ProficiencyIntermediate,
	ProficiencyAdvanced,
	ProficiencyExpert,
}

// Skill represents one extracted competency
// @Description Skill extracted from a resume
type Skill struct {
	ID          string    `json:"id,omitempty" firestore:"-"`
	UserID      string    `json:"user_id,omitempty" firestore:"user_id"`
	ResumeID    string    `json:"resume_id,omitempty" firestore:"resume_id"`
	SkillName   string    `json:"skill_name" firestore:"skill_name" example:"Go"`
	Category    string    `json:"category" firestore:"category" example:"Technical"`
	Proficiency string    `json:"proficiency_level" firestore:"proficiency_level" example:"Advanced"`
	ExtractedAt time.Time `json:"extracted_at,omitempty" firestore:"extracted_at"`
}

// ValidSkillCategory reports whether category is one of the fixed enum values
func ValidSkillCategory(category string) bool {
	for _, c := range SkillCategories {
		if category == c {
			return true
		}
	}
	return false
}

// ValidProficiency reports whether level is one of the fixed enum values
func ValidProficiency(level string) bool {
	for _, p := range ProficiencyLevels {
		if level == p {
			return true
		}
	}
	return false
}
