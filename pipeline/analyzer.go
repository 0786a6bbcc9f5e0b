package pipeline

import (
	"context"
	"log"
	"strings"

	"github.com/careerai/backend/models"
)

// SkillModel is the AI backend that turns resume text into skills
type SkillModel interface {
	ExtractSkills(ctx context.Context, resumeText string) ([]models.Skill, error)
}

// SkillStore persists extracted skills and marks the resume analyzed as
// one logical unit.
type SkillStore interface {
	SaveExtractedSkills(ctx context.Context, resumeID string, skills []models.Skill) error
}

// ResumeReader loads resume records, nil when none exists
type ResumeReader interface {
	GetResume(ctx context.Context, resumeID string) (*models.Resume, error)
}

// Analysis is the result of a successful resume analysis
type Analysis struct {
	Skills []models.Skill
	Count  int
}

// Analyzer implements the skill-extraction service: one structured model
// call, schema validation, then persistence. A successful return means the
// skills are stored and the resume is flagged analyzed.
type Analyzer struct {
	model   SkillModel
	store   SkillStore
	resumes ResumeReader
}

// NewAnalyzer creates a new resume analyzer
func NewAnalyzer(model SkillModel, store SkillStore, resumes ResumeReader) *Analyzer {
	return &Analyzer{
		model:   model,
		store:   store,
		resumes: resumes,
	}
}

// AnalyzeResume extracts, validates, and persists skills for a resume.
// Empty resume text is an input error, not a zero-skill success; a model
// response with zero skills is valid.
func (a *Analyzer) AnalyzeResume(ctx context.Context, userID, resumeID, resumeText string) (*Analysis, error) {
	if strings.TrimSpace(resumeText) == "" || resumeID == "" {
		return nil, &ValidationError{Message: "Resume text and resumeId are required"}
	}

	resume, err := a.resumes.GetResume(ctx, resumeID)
	if err != nil {
		return nil, &UpstreamServiceError{
			Service: "database",
			Message: "Failed to load resume",
			Err:     err,
		}
	}
	// A resume owned by someone else gets the same answer as a missing one
	if resume == nil || resume.UserID != userID {
		return nil, &ValidationError{Message: "Resume not found"}
	}

	skills, err := a.model.ExtractSkills(ctx, resumeText)
	if err != nil {
		return nil, &UpstreamServiceError{
			Service: "ai-gateway",
			Message: "AI analysis failed",
			Err:     err,
		}
	}

	if err := ValidateSkills(skills); err != nil {
		return nil, err
	}

	for i := range skills {
		skills[i].UserID = userID
	}

	if err := a.store.SaveExtractedSkills(ctx, resumeID, skills); err != nil {
		return nil, &UpstreamServiceError{
			Service: "database",
			Message: "Failed to save extracted skills",
			Err:     err,
		}
	}

	log.Printf("[Analyzer] Extracted %d skills for resume %s", len(skills), resumeID)

	return &Analysis{
		Skills: skills,
		Count:  len(skills),
	}, nil
}
